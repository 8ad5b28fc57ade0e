package repositories

import "shopnow/internal/models"

// UserRepository defines the interface for customer data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
}
