package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Get("", handler.ListPeriods)
	periods.Post("", handler.LogPeriod)
	periods.Put("/:id", handler.UpdatePeriod)
	periods.Delete("/:id", handler.DeletePeriod)

	cycle := api.Group("/cycle", handler.AuthRequired)
	cycle.Get("/overview", handler.CycleOverview)
	cycle.Get("/calendar", handler.CalendarMonth)

	api.Get("/services", handler.ListServices)

	cart := api.Group("/cart", handler.AuthRequired)
	cart.Get("", handler.GetCart)
	cart.Post("/items", handler.AddCartItem)
	cart.Put("/items/:serviceID", handler.UpdateCartItem)
	cart.Delete("/items/:serviceID", handler.RemoveCartItem)
	cart.Delete("", handler.ClearCart)
	cart.Get("/validate", handler.ValidateCart)

	payments := api.Group("/payments")
	payments.Post("/checkout", handler.AuthRequired, handler.Checkout)
	payments.Get("/return", handler.PaymentReturn)
	payments.Get("/orders", handler.AuthRequired, handler.ListOrders)

	appointments := api.Group("/appointments", handler.AuthRequired)
	appointments.Get("", handler.ListAppointments)
	appointments.Post("", handler.BookAppointment)
	appointments.Post("/:id/cancel", handler.CancelAppointment)

	api.Get("/dashboard", handler.AuthRequired, handler.Dashboard)
	api.Get("/export/periods", handler.AuthRequired, handler.ExportPeriods)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
