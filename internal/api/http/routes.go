package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mausamlabs/mausam/internal/session"
	"github.com/mausamlabs/mausam/internal/store"
	"github.com/mausamlabs/mausam/internal/weather"
)

var validate = validator.New()

const sessionHeader = "X-Session-ID"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, favorites *store.FavoritesStore, sessions *session.Tracker) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		req, err := parseSearchQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		id, gen := sessions.Begin(c.Get(sessionHeader))
		c.Set(sessionHeader, id)

		rec, err := service.Search(c.Context(), req.Query)
		if err != nil {
			if errors.Is(err, weather.ErrLocationNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		// A newer search under this session wins; this response is stale.
		if !sessions.IsCurrent(id, gen) {
			return fiber.NewError(fiber.StatusConflict, "superseded by a newer request")
		}

		return c.JSON(rec)
	})

	v1.Get("/weather/coords", func(c *fiber.Ctx) error {
		req, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		id, gen := sessions.Begin(c.Get(sessionHeader))
		c.Set(sessionHeader, id)

		rec, err := service.SearchByCoordinates(c.Context(), req.Lat, req.Lon)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		if !sessions.IsCurrent(id, gen) {
			return fiber.NewError(fiber.StatusConflict, "superseded by a newer request")
		}

		return c.JSON(rec)
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"favorites": favorites.List()})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req favoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		matched := service.Resolve(req.Name)
		if matched == nil {
			return fiber.NewError(fiber.StatusNotFound, "unknown location")
		}

		fav := store.Favorite{
			Name:    matched.Name,
			Region:  matched.Region,
			Country: matched.Country,
		}
		if rec, err := service.Search(c.Context(), matched.Name); err == nil {
			fav.TempC = rec.Current.TempC
			fav.Condition = rec.Current.Condition.Text
			fav.UpdatedAt = time.Now()
		}

		if err := favorites.Put(fav); err != nil {
			if errors.Is(err, store.ErrLimitReached) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save favorite")
		}

		return c.Status(fiber.StatusCreated).JSON(fav)
	})

	v1.Delete("/favorites/:name", func(c *fiber.Ctx) error {
		if err := favorites.Remove(c.Params("name")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "unknown favorite")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// searchQuery holds query parameters for the text-search endpoint.
type searchQuery struct {
	Query string `validate:"required,min=2"`
}

func parseSearchQuery(c *fiber.Ctx) (searchQuery, error) {
	q := searchQuery{Query: c.Query("q")}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// coordsQuery holds query parameters for the coordinate endpoint.
type coordsQuery struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	var err error
	if q.Lat, err = parseFloat(lat); err != nil {
		return q, errors.New("invalid lat value")
	}
	if q.Lon, err = parseFloat(lon); err != nil {
		return q, errors.New("invalid lon value")
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// favoriteRequest is the body for adding a favorite.
type favoriteRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}
