package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trangvt/claria/internal/models"
	"github.com/trangvt/claria/internal/services"
	"gorm.io/gorm"
)

// Checkout turns the current cart into a pending order and returns the signed
// payment redirect URL.
func (handler *Handler) Checkout(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cart := handler.cart.Get(patient.ID)
	validation := services.ValidateCart(cart)
	if !validation.IsValid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "cart cannot be checked out",
			"errors":  validation.Errors,
		})
	}

	now := handler.now()
	order := models.Order{
		ID:        uuid.NewString(),
		PatientID: patient.ID,
		TxnRef:    strings.ReplaceAll(uuid.NewString(), "-", "")[:20],
		Amount:    cart.Total,
		OrderInfo: services.CartOrderInfo(cart),
		Items:     orderItemsFromCart(cart),
		Status:    models.OrderPending,
		CreatedAt: now,
	}

	paymentURL, err := handler.gateway.BuildPaymentURL(order, c.IP(), now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build payment URL")
	}

	if err := handler.repositories.Orders.Create(&order); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create order")
	}

	return c.JSON(fiber.Map{
		"order_id":    order.ID,
		"txn_ref":     order.TxnRef,
		"amount":      order.Amount,
		"payment_url": paymentURL,
	})
}

// PaymentReturn handles the gateway redirect after payment. The signature is
// verified before any order state changes; the cart is only cleared on an
// approved transaction.
func (handler *Handler) PaymentReturn(c *fiber.Ctx) error {
	query, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payment return")
	}

	result, err := handler.gateway.VerifyReturn(query)
	if errors.Is(err, services.ErrInvalidSignature) {
		return apiError(c, fiber.StatusBadRequest, "payment signature mismatch")
	}
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payment return")
	}

	order, err := handler.repositories.Orders.FindByTxnRef(result.TxnRef)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError(c, fiber.StatusNotFound, "order not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load order")
	}
	if result.Amount != order.Amount {
		return apiError(c, fiber.StatusBadRequest, fmt.Sprintf("payment amount mismatch for order %s", order.ID))
	}

	status := models.OrderFailed
	var paidAt *time.Time
	if result.Success {
		status = models.OrderPaid
		now := handler.now()
		paidAt = &now
	}
	if err := handler.repositories.Orders.MarkOutcome(order.TxnRef, status, result.ResponseCode, result.BankCode, result.TransactionNo, paidAt); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to record payment outcome")
	}

	if result.Success {
		if _, err := handler.cart.Clear(order.PatientID); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to clear cart")
		}
	}

	return c.JSON(fiber.Map{
		"order_id": order.ID,
		"status":   status,
		"result":   result,
	})
}

func (handler *Handler) ListOrders(c *fiber.Ctx) error {
	patient, ok := currentPatient(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	orders, err := handler.repositories.Orders.ListByPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func orderItemsFromCart(cart services.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ServiceID:   line.ServiceID,
			ServiceName: line.ServiceName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}
	return items
}
