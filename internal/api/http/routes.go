package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/solar-yield-simulation/internal/locations"
	"github.com/i474232898/solar-yield-simulation/internal/solar"
	"github.com/i474232898/solar-yield-simulation/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *solar.Service, registry *locations.Registry) {
	v1 := app.Group("/api/v1")

	v1.Get("/solar/predicted", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		yields, err := service.PredictedYields(c.UserContext(), loc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate predicted yields")
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"count":    len(yields),
			"yields":   yields,
		})
	})

	v1.Get("/solar/actual", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		yields, err := service.ActualYields(c.UserContext(), loc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate actual yields")
		}

		return c.JSON(fiber.Map{
			"location": loc,
			"count":    len(yields),
			"yields":   yields,
		})
	})

	v1.Get("/solar/live/latest", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := service.LatestSnapshot(loc)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no live yield data for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch live yield data")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/solar/live/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := service.SnapshotRange(req.Location, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no live yield history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch live yield history")
		}

		return c.JSON(fiber.Map{
			"location":  req.Location,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"locations": registry.All(),
		})
	})
}

// locationQuery holds the query parameter identifying a location.
type locationQuery struct {
	Location string `validate:"required"`
}

func parseLocationQuery(c *fiber.Ctx) (string, error) {
	q := locationQuery{Location: c.Query("location")}

	if err := validate.Struct(q); err != nil {
		return "", err
	}

	return q.Location, nil
}

// historyQuery holds query parameters for the live history endpoint.
type historyQuery struct {
	Location string
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
