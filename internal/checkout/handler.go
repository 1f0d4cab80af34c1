package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mehkova/storefront-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.processOrder)
	app.Post("/api/v1/checkout/validate", h.validateForm)
}

func (h *Handler) validateForm(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if errs := h.service.ValidateForm(c.Context(), userID, *form); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": errs})
	}
	return c.JSON(fiber.Map{"valid": true})
}

func (h *Handler) processOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	orderID, fieldErrs, err := h.service.ProcessOrder(c.Context(), userID, *form)
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fieldErrs})
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrDeclined):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrCheckoutInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "An unexpected error occurred"})
		}
	}

	return c.JSON(fiber.Map{"orderID": orderID})
}
