package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopnow/internal/apperrors"
	"shopnow/internal/models"
)

// MemoryInvoiceRepository is an in-memory implementation of
// InvoiceRepository. It enforces the same invoice-number and token
// uniqueness the database indexes do, so service-level retry behaviour can
// be exercised without a database.
type MemoryInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]models.Invoice
	numbers  map[string]struct{}
	tokens   map[string]struct{}

	// products, when set, receives the stock decrements of Create.
	products *MemoryProductRepository
}

// NewMemoryInvoiceRepository creates a new instance of
// MemoryInvoiceRepository. products may be nil.
func NewMemoryInvoiceRepository(products *MemoryProductRepository) *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{
		invoices: make(map[string]models.Invoice),
		numbers:  make(map[string]struct{}),
		tokens:   make(map[string]struct{}),
		products: products,
	}
}

// Create persists the invoice, rejecting duplicate identifiers with
// apperrors.ErrConflict, then applies the stock decrements.
func (r *MemoryInvoiceRepository) Create(invoice *models.Invoice) error {
	r.mu.Lock()
	if _, taken := r.numbers[invoice.InvoiceNumber]; taken {
		r.mu.Unlock()
		return fmt.Errorf("%w: invoice number or token already in use", apperrors.ErrConflict)
	}
	if _, taken := r.tokens[invoice.Token]; taken {
		r.mu.Unlock()
		return fmt.Errorf("%w: invoice number or token already in use", apperrors.ErrConflict)
	}

	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now()
	}
	r.invoices[invoice.ID] = *invoice
	r.numbers[invoice.InvoiceNumber] = struct{}{}
	r.tokens[invoice.Token] = struct{}{}
	r.mu.Unlock()

	if r.products != nil {
		for _, item := range invoice.Items {
			r.products.AdjustStock(item.ProductID, -item.Quantity)
		}
	}
	return nil
}

// ExistsByNumberOrToken reports whether either identifier is already taken.
func (r *MemoryInvoiceRepository) ExistsByNumberOrToken(invoiceNumber, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.numbers[invoiceNumber]; ok {
		return true, nil
	}
	_, ok := r.tokens[token]
	return ok, nil
}

func matchesInvoice(inv models.Invoice, filter InvoiceFilter) bool {
	if filter.Status != "" && string(inv.Status) != filter.Status {
		return false
	}
	if filter.PaymentStatus != "" && string(inv.PaymentStatus) != filter.PaymentStatus {
		return false
	}
	if filter.Token != "" && inv.Token != filter.Token {
		return false
	}
	if filter.InvoiceNumber != "" && inv.InvoiceNumber != filter.InvoiceNumber {
		return false
	}
	return true
}

func sortNewestFirst(invoices []models.Invoice) {
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
}

// List returns the requested page of matching invoices, newest first.
func (r *MemoryInvoiceRepository) List(filter InvoiceFilter) ([]models.Invoice, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter = filter.Normalize()
	matched := make([]models.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if matchesInvoice(inv, filter) {
			matched = append(matched, inv)
		}
	}
	sortNewestFirst(matched)

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []models.Invoice{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetByID returns an invoice by its ID.
func (r *MemoryInvoiceRepository) GetByID(id string) (*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, id)
	}
	return &invoice, nil
}

// GetByToken returns an invoice by its pickup token.
func (r *MemoryInvoiceRepository) GetByToken(token string) (*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inv := range r.invoices {
		if inv.Token == token {
			return &inv, nil
		}
	}
	return nil, fmt.Errorf("%w: invoice with token %s", apperrors.ErrNotFound, token)
}

// UpdateStatus sets the lifecycle fields carried by the update.
func (r *MemoryInvoiceRepository) UpdateStatus(id string, update StatusUpdate) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, id)
	}
	if update.Status != nil {
		invoice.Status = *update.Status
	}
	if update.PaymentStatus != nil {
		invoice.PaymentStatus = *update.PaymentStatus
	}
	if update.CollectedAt != nil {
		t := *update.CollectedAt
		invoice.CollectedAt = &t
	}
	r.invoices[id] = invoice
	return &invoice, nil
}

// CollectByToken marks the invoice as collected and paid in one step.
func (r *MemoryInvoiceRepository) CollectByToken(token string, at time.Time) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, inv := range r.invoices {
		if inv.Token == token {
			inv.Status = models.StatusCollected
			inv.PaymentStatus = models.PaymentPaid
			t := at
			inv.CollectedAt = &t
			r.invoices[id] = inv
			return &inv, nil
		}
	}
	return nil, fmt.Errorf("%w: invoice with token %s", apperrors.ErrNotFound, token)
}

// ListByCustomerEmail returns the order history for a customer email,
// newest first.
func (r *MemoryInvoiceRepository) ListByCustomerEmail(email string) ([]models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Invoice
	for _, inv := range r.invoices {
		if inv.CustomerDetails.Email == email {
			matched = append(matched, inv)
		}
	}
	sortNewestFirst(matched)
	return matched, nil
}

// CountAll returns the total number of invoices.
func (r *MemoryInvoiceRepository) CountAll() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.invoices)), nil
}

// CountByStatus returns the number of invoices in the given status.
func (r *MemoryInvoiceRepository) CountByStatus(status models.InvoiceStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, inv := range r.invoices {
		if inv.Status == status {
			count++
		}
	}
	return count, nil
}

// SumTotalByStatus returns the sum of invoice totals in the given status.
func (r *MemoryInvoiceRepository) SumTotalByStatus(status models.InvoiceStatus) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum float64
	for _, inv := range r.invoices {
		if inv.Status == status {
			sum += inv.Total
		}
	}
	return sum, nil
}

// CountCreatedSince returns the number of invoices created at or after t.
func (r *MemoryInvoiceRepository) CountCreatedSince(t time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, inv := range r.invoices {
		if !inv.CreatedAt.Before(t) {
			count++
		}
	}
	return count, nil
}
