package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/trangvt/claria/internal/services"
	"gorm.io/gorm"
)

type cartItemInput struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
}

func (handler *Handler) GetCart(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(handler.cart.Get(patient.ID))
}

func (handler *Handler) AddCartItem(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := cartItemInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	medicalService, err := handler.repositories.Services.FindByID(input.ServiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError(c, fiber.StatusNotFound, "service not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load service")
	}

	cart, err := handler.cart.AddItem(patient.ID, services.CartItemFromService(medicalService, input.Quantity))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update cart")
	}
	return c.JSON(cart)
}

func (handler *Handler) UpdateCartItem(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := cartItemInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	cart, err := handler.cart.UpdateQuantity(patient.ID, c.Params("serviceID"), input.Quantity)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update cart")
	}
	return c.JSON(cart)
}

func (handler *Handler) RemoveCartItem(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := handler.cart.RemoveItem(patient.ID, c.Params("serviceID"))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update cart")
	}
	return c.JSON(cart)
}

func (handler *Handler) ClearCart(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := handler.cart.Clear(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear cart")
	}
	return c.JSON(cart)
}

func (handler *Handler) ValidateCart(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cart := handler.cart.Get(patient.ID)
	return c.JSON(services.ValidateCart(cart))
}
