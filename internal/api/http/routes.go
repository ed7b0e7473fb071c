package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-prediction/internal/forecast"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *forecast.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/models", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"models":      forecast.Catalog,
			"recommended": forecast.Recommended,
		})
	})

	v1.Post("/predictions", func(c *fiber.Ctx) error {
		var req predictRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		matrix, err := forecast.BuildMatrix(req.Rows)
		if err != nil {
			return mapDomainError(err)
		}

		outcomes, err := service.Predict(c.Context(), req.Models, matrix)
		if err != nil {
			return mapDomainError(err)
		}

		return c.JSON(fiber.Map{
			"state":    forecast.StateResults,
			"outcomes": outcomes,
		})
	})

	v1.Post("/predictions/city", func(c *fiber.Ctx) error {
		var req cityPredictRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		outcomes, loc, err := service.PredictForCity(c.Context(), req.City, req.Models)
		if err != nil {
			return mapDomainError(err)
		}

		return c.JSON(fiber.Map{
			"state":    forecast.StateResults,
			"location": loc,
			"outcomes": outcomes,
		})
	})

	v1.Get("/predictions", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 20)
		return c.JSON(fiber.Map{
			"snapshots": service.Recent(limit),
		})
	})

	v1.Get("/predictions/latest", func(c *fiber.Ctx) error {
		return c.JSON(service.Latest())
	})

	v1.Delete("/predictions/latest", func(c *fiber.Ctx) error {
		service.Reset()
		return c.JSON(forecast.Snapshot{State: forecast.StateNoResult})
	})
}

// predictRequest is the manual-entry form submission: the raw observation
// rows plus the selected model ids. Selection and row contents are validated
// by the pipeline itself.
type predictRequest struct {
	Models []string          `json:"models"`
	Rows   []forecast.RawRow `json:"rows" validate:"required"`
}

// cityPredictRequest asks for a prediction from fetched history.
type cityPredictRequest struct {
	City   string   `json:"city" validate:"required"`
	Models []string `json:"models"`
}

// mapDomainError translates pipeline errors into HTTP errors. Validation
// failures are the caller's fault; transport failures are an upstream
// problem.
func mapDomainError(err error) error {
	var verr *forecast.ValidationError
	if errors.As(err, &verr) {
		if verr.Code == forecast.CodeLocationNotFound {
			return fiber.NewError(fiber.StatusNotFound, verr.Message)
		}
		return fiber.NewError(fiber.StatusBadRequest, verr.Message)
	}

	var terr *forecast.TransportError
	if errors.As(err, &terr) {
		return fiber.NewError(fiber.StatusBadGateway, terr.Message)
	}

	return fiber.NewError(fiber.StatusInternalServerError, "prediction request failed")
}
