package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopnow/internal/models"
	"shopnow/internal/repositories"
	"shopnow/internal/services"
)

// InvoiceHandler handles HTTP requests for pickup orders.
type InvoiceHandler struct {
	service *services.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
	}
}

// RegisterRoutes registers the invoice routes with the Fiber app.
func (h *InvoiceHandler) RegisterRoutes(router fiber.Router) {
	invoiceRoutes := router.Group("/invoices")
	invoiceRoutes.Post("/", h.HandleCreateInvoice)
	invoiceRoutes.Get("/", h.HandleListInvoices)
	// Token routes before :id so "token" is not captured as an id.
	invoiceRoutes.Get("/token/:token", h.HandleGetInvoiceByToken)
	invoiceRoutes.Put("/token/:token/collect", h.HandleCollect)
	invoiceRoutes.Get("/:id", h.HandleGetInvoiceByID)
	invoiceRoutes.Put("/:id/status", h.HandleUpdateStatus)
}

// CreateInvoiceRequest is the invoice creation body. Identifiers are never
// accepted from the client; line items carry the catalog snapshot the
// storefront displayed at order time.
type CreateInvoiceRequest struct {
	CustomerDetails models.CustomerDetails `json:"customerDetails"`
	Items           []models.InvoiceItem   `json:"items"`
	Total           float64                `json:"total"`
}

// HandleCreateInvoice creates a new pickup order.
func (h *InvoiceHandler) HandleCreateInvoice(c *fiber.Ctx) error {
	var req CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	invoice, err := h.service.CreateInvoice(services.CreateInvoiceInput{
		CustomerDetails: req.CustomerDetails,
		Items:           req.Items,
		Total:           req.Total,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"invoice": invoice,
		"message": "Invoice created successfully",
	})
}

// HandleListInvoices lists invoices with optional filters and pagination.
func (h *InvoiceHandler) HandleListInvoices(c *fiber.Ctx) error {
	filter := repositories.InvoiceFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		Token:         c.Query("token"),
		InvoiceNumber: c.Query("invoiceNumber"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 20),
	}

	invoices, total, err := h.service.ListInvoices(filter)
	if err != nil {
		return respondError(c, err)
	}

	filter = filter.Normalize()
	return c.JSON(fiber.Map{
		"invoices":    invoices,
		"totalPages":  totalPages(total, filter.Limit),
		"currentPage": filter.Page,
		"total":       total,
	})
}

// HandleGetInvoiceByID retrieves a single invoice.
func (h *InvoiceHandler) HandleGetInvoiceByID(c *fiber.Ctx) error {
	invoice, err := h.service.GetInvoiceByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// HandleGetInvoiceByToken retrieves a single invoice by its pickup token.
func (h *InvoiceHandler) HandleGetInvoiceByToken(c *fiber.Ctx) error {
	invoice, err := h.service.GetInvoiceByToken(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// UpdateStatusRequest carries the optional lifecycle fields to set.
type UpdateStatusRequest struct {
	Status        *models.InvoiceStatus `json:"status"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
}

// HandleUpdateStatus transitions an invoice's status and/or payment status.
func (h *InvoiceHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	invoice, err := h.service.UpdateStatus(c.Params("id"), req.Status, req.PaymentStatus)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"invoice": invoice,
		"message": "Invoice status updated successfully",
	})
}

// HandleCollect is the self-service pickup confirmation by token.
func (h *InvoiceHandler) HandleCollect(c *fiber.Ctx) error {
	invoice, err := h.service.Collect(c.Params("token"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"invoice": invoice,
		"message": "Package collected successfully",
	})
}
