package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"shopnow/internal/apperrors"
	"shopnow/internal/models"
	"shopnow/internal/repositories"
	"shopnow/pkg/rabbitmq"
)

// invoiceNumberPrefix is the human-readable prefix on every invoice number.
const invoiceNumberPrefix = "SN"

// maxIdentifierAttempts bounds the regeneration loop for colliding invoice
// numbers or tokens. The token space has 900000 values, so hitting this
// bound means identifier-space pressure rather than bad luck.
const maxIdentifierAttempts = 5

// CreateInvoiceInput is the validated payload for invoice creation.
// InvoiceNumber and Token are never part of it; they are generated here.
type CreateInvoiceInput struct {
	CustomerDetails models.CustomerDetails
	Items           []models.InvoiceItem
	Total           float64
}

// InvoiceService handles business logic related to invoices: identifier
// generation, creation with stock decrement, and the status lifecycle.
type InvoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	mqClient    *rabbitmq.Client
}

// NewInvoiceService creates a new InvoiceService. mqClient may be nil, in
// which case lifecycle events are not published.
func NewInvoiceService(invoiceRepo repositories.InvoiceRepository, mqClient *rabbitmq.Client) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		mqClient:    mqClient,
	}
}

// generateIdentifiers produces a candidate invoice number and pickup token.
// The number is effectively unique (millisecond timestamp plus a random
// suffix); the token is drawn from [100000, 999999] and collides at scale,
// which is why the store's unique indexes back the generation loop.
func generateIdentifiers() (invoiceNumber, token string) {
	invoiceNumber = fmt.Sprintf("%s%d%d", invoiceNumberPrefix, time.Now().UnixMilli(), rand.Intn(1000))
	token = strconv.Itoa(rand.Intn(900000) + 100000)
	return invoiceNumber, token
}

// validateCreate checks the four independently required creation fields.
func validateCreate(in CreateInvoiceInput) error {
	var missing []string
	if in.CustomerDetails.Name == "" {
		missing = append(missing, "customerDetails.name")
	}
	if in.CustomerDetails.Phone == "" {
		missing = append(missing, "customerDetails.phone")
	}
	if len(in.Items) == 0 {
		missing = append(missing, "items")
	}
	if in.Total == 0 {
		missing = append(missing, "total")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// CreateInvoice validates the input, assigns a unique invoice number and
// pickup token, and persists the invoice together with the stock decrements.
//
// A candidate pair is pre-checked against existing invoices as a fast path,
// but the store's unique indexes are the real guard: a concurrent creation
// that wins the race surfaces as a conflict on write, and the pair is
// regenerated. After maxIdentifierAttempts the loop gives up with
// ErrIdentifierExhausted.
func (s *InvoiceService) CreateInvoice(in CreateInvoiceInput) (*models.Invoice, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxIdentifierAttempts; attempt++ {
		invoiceNumber, token := generateIdentifiers()

		exists, err := s.invoiceRepo.ExistsByNumberOrToken(invoiceNumber, token)
		if err != nil {
			return nil, fmt.Errorf("failed to check identifier uniqueness: %w", err)
		}
		if exists {
			continue
		}

		invoice := &models.Invoice{
			InvoiceNumber:   invoiceNumber,
			Token:           token,
			CustomerDetails: in.CustomerDetails,
			Items:           in.Items,
			Total:           in.Total,
			Status:          models.StatusPending,
			PaymentMethod:   models.DefaultPaymentMethod,
			PaymentStatus:   models.PaymentPending,
		}

		err = s.invoiceRepo.Create(invoice)
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost the race to a concurrent creation; regenerate.
			continue
		}
		if err != nil {
			return nil, err
		}

		s.publish("invoice.created", invoice)
		return invoice, nil
	}

	return nil, fmt.Errorf("%w: no unique invoice number/token pair after %d attempts",
		apperrors.ErrIdentifierExhausted, maxIdentifierAttempts)
}

// ListInvoices returns the matching page of invoices and the total count.
func (s *InvoiceService) ListInvoices(filter repositories.InvoiceFilter) ([]models.Invoice, int64, error) {
	return s.invoiceRepo.List(filter)
}

// GetInvoiceByID retrieves a single invoice by its ID.
func (s *InvoiceService) GetInvoiceByID(id string) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(id)
}

// GetInvoiceByToken retrieves a single invoice by its pickup token.
func (s *InvoiceService) GetInvoiceByToken(token string) (*models.Invoice, error) {
	return s.invoiceRepo.GetByToken(token)
}

// UpdateStatus sets the invoice's status and/or payment status. Any known
// status may overwrite any other; there is deliberately no transition graph.
// Entering the collected status also stamps collectedAt.
func (s *InvoiceService) UpdateStatus(id string, status *models.InvoiceStatus, paymentStatus *models.PaymentStatus) (*models.Invoice, error) {
	if status == nil && paymentStatus == nil {
		return nil, fmt.Errorf("%w: status or paymentStatus is required", apperrors.ErrValidation)
	}
	if status != nil && !models.ValidStatus(*status) {
		return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, *status)
	}
	if paymentStatus != nil && !models.ValidPaymentStatus(*paymentStatus) {
		return nil, fmt.Errorf("%w: invalid paymentStatus %q", apperrors.ErrValidation, *paymentStatus)
	}

	update := repositories.StatusUpdate{
		Status:        status,
		PaymentStatus: paymentStatus,
	}
	if status != nil && *status == models.StatusCollected {
		now := time.Now()
		update.CollectedAt = &now
	}

	invoice, err := s.invoiceRepo.UpdateStatus(id, update)
	if err != nil {
		return nil, err
	}
	s.publish("invoice.status_changed", invoice)
	return invoice, nil
}

// Collect is the customer-facing pickup confirmation: one update sets
// status=collected, paymentStatus=paid and collectedAt, so no intermediate
// state is ever observable.
func (s *InvoiceService) Collect(token string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.CollectByToken(token, time.Now())
	if err != nil {
		return nil, err
	}
	s.publish("invoice.collected", invoice)
	return invoice, nil
}

// OrderHistory returns all invoices placed with the given customer email,
// newest first.
func (s *InvoiceService) OrderHistory(email string) ([]models.Invoice, error) {
	return s.invoiceRepo.ListByCustomerEmail(email)
}

// publish sends an invoice lifecycle event, best effort. Event delivery is
// never allowed to fail the request that triggered it.
func (s *InvoiceService) publish(event string, invoice *models.Invoice) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(event, invoice); err != nil {
		log.Printf("Warning: failed to publish %s for invoice %s: %v", event, invoice.ID, err)
	}
}
