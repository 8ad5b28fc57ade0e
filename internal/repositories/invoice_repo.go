package repositories

import (
	"time"

	"shopnow/internal/models"
)

// InvoiceFilter narrows and pages an invoice listing. String fields are
// equality filters and are ignored when empty.
type InvoiceFilter struct {
	Status        string
	PaymentStatus string
	Token         string
	InvoiceNumber string
	Page          int
	Limit         int
}

// Normalize returns the filter with page and limit clamped to usable values.
func (f InvoiceFilter) Normalize() InvoiceFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	return f
}

// StatusUpdate carries the mutable lifecycle fields of an invoice; nil
// fields are left untouched.
type StatusUpdate struct {
	Status        *models.InvoiceStatus
	PaymentStatus *models.PaymentStatus
	CollectedAt   *time.Time
}

// InvoiceRepository defines the interface for invoice data access.
//
// Create persists the invoice and applies the stock decrement for each line
// item as relative adjustments, all within one transaction. It returns
// apperrors.ErrConflict when the invoice number or token collides with an
// existing invoice, which callers use as the retry trigger for identifier
// generation.
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	ExistsByNumberOrToken(invoiceNumber, token string) (bool, error)
	List(filter InvoiceFilter) ([]models.Invoice, int64, error)
	GetByID(id string) (*models.Invoice, error)
	GetByToken(token string) (*models.Invoice, error)
	UpdateStatus(id string, update StatusUpdate) (*models.Invoice, error)
	CollectByToken(token string, at time.Time) (*models.Invoice, error)
	ListByCustomerEmail(email string) ([]models.Invoice, error)

	// Aggregate reads for the dashboard.
	CountAll() (int64, error)
	CountByStatus(status models.InvoiceStatus) (int64, error)
	SumTotalByStatus(status models.InvoiceStatus) (float64, error)
	CountCreatedSince(t time.Time) (int64, error)
}
