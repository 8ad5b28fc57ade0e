package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shopnow/internal/models"
	"shopnow/internal/services"
)

// UserHandler handles HTTP requests for customers.
type UserHandler struct {
	userService    *services.UserService
	invoiceService *services.InvoiceService
	validate       *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, invoiceService *services.InvoiceService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		invoiceService: invoiceService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/:email/orders", h.HandleOrderHistory)
}

// HandleCreateUser registers a new customer. A duplicate email is a
// conflict, not a second record.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(user); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.userService.CreateUser(&user); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleOrderHistory returns the invoices placed with the customer's email,
// newest first.
func (h *UserHandler) HandleOrderHistory(c *fiber.Ctx) error {
	invoices, err := h.invoiceService.OrderHistory(c.Params("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}
