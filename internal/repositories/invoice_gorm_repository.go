package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopnow/internal/apperrors"
	"shopnow/internal/models"
)

// GORMInvoiceRepository is a GORM implementation of InvoiceRepository.
// The invoices table carries unique indexes on invoice_number and token;
// those indexes, not the caller's pre-check, are what guarantee uniqueness
// under concurrent creation.
type GORMInvoiceRepository struct {
	db *gorm.DB
}

// NewGORMInvoiceRepository creates a new instance of GORMInvoiceRepository.
func NewGORMInvoiceRepository(db *gorm.DB) *GORMInvoiceRepository {
	return &GORMInvoiceRepository{
		db: db,
	}
}

// Create persists the invoice and decrements each referenced product's stock
// by the ordered quantity, all in one transaction. Decrements are relative
// adjustments and carry no floor check, so stock may go negative.
func (r *GORMInvoiceRepository) Create(invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		for _, item := range invoice.Items {
			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: invoice number or token already in use", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// ExistsByNumberOrToken reports whether any invoice already carries the given
// invoice number or token.
func (r *GORMInvoiceRepository) ExistsByNumberOrToken(invoiceNumber, token string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).
		Where("invoice_number = ? OR token = ?", invoiceNumber, token).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check invoice identifiers: %w", err)
	}
	return count > 0, nil
}

// invoiceScope applies the filter's equality conditions to a query.
func invoiceScope(filter InvoiceFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.PaymentStatus != "" {
			db = db.Where("payment_status = ?", filter.PaymentStatus)
		}
		if filter.Token != "" {
			db = db.Where("token = ?", filter.Token)
		}
		if filter.InvoiceNumber != "" {
			db = db.Where("invoice_number = ?", filter.InvoiceNumber)
		}
		return db
	}
}

// List returns the requested page of matching invoices, newest first, along
// with the total match count.
func (r *GORMInvoiceRepository) List(filter InvoiceFilter) ([]models.Invoice, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.db.Model(&models.Invoice{}).Scopes(invoiceScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	var invoices []models.Invoice
	err := r.db.Preload("Items").
		Scopes(invoiceScope(filter)).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, total, nil
}

// GetByID retrieves a single invoice with its items.
func (r *GORMInvoiceRepository) GetByID(id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get invoice %s: %w", id, err)
	}
	return &invoice, nil
}

// GetByToken retrieves a single invoice by its pickup token.
func (r *GORMInvoiceRepository) GetByToken(token string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Preload("Items").First(&invoice, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice with token %s", apperrors.ErrNotFound, token)
		}
		return nil, fmt.Errorf("failed to get invoice by token %s: %w", token, err)
	}
	return &invoice, nil
}

// UpdateStatus sets the lifecycle fields carried by the update and returns
// the refreshed invoice.
func (r *GORMInvoiceRepository) UpdateStatus(id string, update StatusUpdate) (*models.Invoice, error) {
	values := map[string]any{}
	if update.Status != nil {
		values["status"] = *update.Status
	}
	if update.PaymentStatus != nil {
		values["payment_status"] = *update.PaymentStatus
	}
	if update.CollectedAt != nil {
		values["collected_at"] = *update.CollectedAt
	}
	if len(values) == 0 {
		return r.GetByID(id)
	}

	res := r.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update invoice %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, id)
	}
	return r.GetByID(id)
}

// CollectByToken marks the invoice as collected and paid in one update, so a
// reader never observes the invoice collected but unpaid.
func (r *GORMInvoiceRepository) CollectByToken(token string, at time.Time) (*models.Invoice, error) {
	res := r.db.Model(&models.Invoice{}).Where("token = ?", token).Updates(map[string]any{
		"status":         models.StatusCollected,
		"payment_status": models.PaymentPaid,
		"collected_at":   at,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to collect invoice by token %s: %w", token, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: invoice with token %s", apperrors.ErrNotFound, token)
	}
	return r.GetByToken(token)
}

// ListByCustomerEmail returns the order history for a customer email,
// newest first.
func (r *GORMInvoiceRepository) ListByCustomerEmail(email string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Preload("Items").
		Where("customer_email = ?", email).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for %s: %w", email, err)
	}
	return invoices, nil
}

// CountAll returns the total number of invoices.
func (r *GORMInvoiceRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Invoice{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of invoices in the given status.
func (r *GORMInvoiceRepository) CountByStatus(status models.InvoiceStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices with status %s: %w", status, err)
	}
	return count, nil
}

// SumTotalByStatus returns the sum of invoice totals in the given status,
// zero when none match.
func (r *GORMInvoiceRepository) SumTotalByStatus(status models.InvoiceStatus) (float64, error) {
	var sum float64
	err := r.db.Model(&models.Invoice{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum invoice totals for status %s: %w", status, err)
	}
	return sum, nil
}

// CountCreatedSince returns the number of invoices created at or after t.
func (r *GORMInvoiceRepository) CountCreatedSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).Where("created_at >= ?", t).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices created since %s: %w", t, err)
	}
	return count, nil
}
