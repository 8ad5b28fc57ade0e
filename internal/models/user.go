package models

import "time"

// User represents a registered customer. Email is the natural key; the
// store's unique index rejects a second registration with the same email.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" validate:"required,max=200"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required,max=50"`
	CreatedAt time.Time `json:"createdAt"`
}
