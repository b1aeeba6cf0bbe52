package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/travel-genie/internal/store"
	"github.com/i474232898/travel-genie/internal/travel"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *travel.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/plan", func(c *fiber.Ctx) error {
		trip, err := parseTripQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		plan := service.Plan(c.UserContext(), trip)
		return c.JSON(plan)
	})

	v1.Get("/plan/:domain", func(c *fiber.Ctx) error {
		domain, ok := travel.ParseDomain(c.Params("domain"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown domain "+c.Params("domain"))
		}

		trip, err := parseTripQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.RunDomain(c.UserContext(), trip, domain)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"trip_id": trip.ID,
			"domain":  domain,
			"result":  result,
		})
	})

	v1.Get("/plans/latest", func(c *fiber.Ctx) error {
		route, err := parseRouteQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		plan, err := service.GetLatest(route.Source, route.Destination)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no plan for requested route")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch plan")
		}

		return c.JSON(plan)
	})

	v1.Get("/plans/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		plans, err := service.GetRange(req.Route.Source, req.Route.Destination, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no plans for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch plan history")
		}

		return c.JSON(fiber.Map{
			"source":      req.Route.Source,
			"destination": req.Route.Destination,
			"from":        req.From,
			"to":          req.To,
			"plans":       plans,
		})
	})
}

// routeQuery holds query parameters for identifying a route.
type routeQuery struct {
	Source      string `validate:"required"`
	Destination string `validate:"required"`
}

func parseRouteQuery(c *fiber.Ctx) (routeQuery, error) {
	var q routeQuery

	q.Source = c.Query("source")
	q.Destination = c.Query("destination")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// tripQuery holds query parameters for planning a trip.
type tripQuery struct {
	Route routeQuery
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"required,datetime=2006-01-02"`
}

func parseTripQuery(c *fiber.Ctx) (travel.TripContext, error) {
	route, err := parseRouteQuery(c)
	if err != nil {
		return travel.TripContext{}, err
	}
	q := tripQuery{Route: route, Start: c.Query("start"), End: c.Query("end")}
	if err := validate.Struct(q); err != nil {
		return travel.TripContext{}, err
	}
	return travel.ParseTrip(q.Route.Source, q.Route.Destination, q.Start, q.End)
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Route routeQuery
	From  time.Time `validate:"required"`
	To    time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	route, err := parseRouteQuery(c)
	if err != nil {
		return err
	}
	h.Route = route

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
