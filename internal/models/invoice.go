package models

import "time"

// InvoiceStatus is the pickup lifecycle of an invoice.
type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "pending"
	StatusReady     InvoiceStatus = "ready"
	StatusCollected InvoiceStatus = "collected"
	StatusCancelled InvoiceStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known invoice statuses.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case StatusPending, StatusReady, StatusCollected, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks whether the order has been paid for at pickup.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid
}

// DefaultPaymentMethod is assigned to every new invoice; payment is
// settled in person when the order is collected.
const DefaultPaymentMethod = "Cash on Delivery"

// CustomerDetails is embedded in the invoice so past orders keep the
// contact information they were placed with.
type CustomerDetails struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"required,max=50"`
	Email string `json:"email" gorm:"index" validate:"omitempty,email"`
}

// InvoiceItem is a line item snapshot taken at order time. Later catalog
// edits never alter what an existing invoice shows.
type InvoiceItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	InvoiceID string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Image     string  `json:"image"`
}

// Invoice represents an in-store pickup order. InvoiceNumber and Token are
// generated server-side and are each unique across all invoices; Token is
// the 6-digit code customers present at the counter.
type Invoice struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	InvoiceNumber   string          `json:"invoiceNumber" gorm:"uniqueIndex;type:varchar(40)"`
	Token           string          `json:"token" gorm:"uniqueIndex;type:varchar(6)"`
	CustomerDetails CustomerDetails `json:"customerDetails" gorm:"embedded;embeddedPrefix:customer_"`
	Items           []InvoiceItem   `json:"items" gorm:"foreignKey:InvoiceID"`
	Total           float64         `json:"total"`
	Status          InvoiceStatus   `json:"status" gorm:"index;type:varchar(20);default:pending"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);default:pending"`
	CreatedAt       time.Time       `json:"createdAt"`
	CollectedAt     *time.Time      `json:"collectedAt"`
}
