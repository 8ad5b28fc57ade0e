package services

import (
	"shopnow/internal/models"
	"shopnow/internal/repositories"
)

// UserService handles business logic related to customers.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser registers a new customer. A duplicate email surfaces as a
// conflict from the repository's unique index; no second record is created.
func (s *UserService) CreateUser(user *models.User) error {
	return s.userRepo.Create(user)
}

// GetUserByEmail retrieves a customer by email.
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.userRepo.GetByEmail(email)
}
