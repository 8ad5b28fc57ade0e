package services_test

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shopnow/internal/apperrors"
	"shopnow/internal/models"
	"shopnow/internal/repositories"
	"shopnow/internal/services"
)

// MockInvoiceRepository is a mock implementation of repositories.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(invoice *models.Invoice) error {
	args := m.Called(invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ExistsByNumberOrToken(invoiceNumber, token string) (bool, error) {
	args := m.Called(invoiceNumber, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) List(filter repositories.InvoiceFilter) ([]models.Invoice, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) GetByID(id string) (*models.Invoice, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByToken(token string) (*models.Invoice, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(id string, update repositories.StatusUpdate) (*models.Invoice, error) {
	args := m.Called(id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CollectByToken(token string, at time.Time) (*models.Invoice, error) {
	args := m.Called(token, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListByCustomerEmail(email string) ([]models.Invoice, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByStatus(status models.InvoiceStatus) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SumTotalByStatus(status models.InvoiceStatus) (float64, error) {
	args := m.Called(status)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockInvoiceRepository) CountCreatedSince(t time.Time) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

func validInput() services.CreateInvoiceInput {
	return services.CreateInvoiceInput{
		CustomerDetails: models.CustomerDetails{
			Name:  "Jordan Lee",
			Phone: "555-0100",
			Email: "jordan@example.com",
		},
		Items: []models.InvoiceItem{
			{ProductID: "prod-1", Name: "Coffee Maker", Price: 79.99, Quantity: 2},
		},
		Total: 159.98,
	}
}

func TestInvoiceService_CreateInvoice_RequiredFields(t *testing.T) {
	mockRepo := new(MockInvoiceRepository)
	service := services.NewInvoiceService(mockRepo, nil)

	// Each required field is independently sufficient to reject the request.
	cases := map[string]func(*services.CreateInvoiceInput){
		"missing name":  func(in *services.CreateInvoiceInput) { in.CustomerDetails.Name = "" },
		"missing phone": func(in *services.CreateInvoiceInput) { in.CustomerDetails.Phone = "" },
		"missing items": func(in *services.CreateInvoiceInput) { in.Items = nil },
		"missing total": func(in *services.CreateInvoiceInput) { in.Total = 0 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			invoice, err := service.CreateInvoice(in)
			assert.Nil(t, invoice)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	// No repository call may happen for an invalid request.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestInvoiceService_CreateInvoice_Success(t *testing.T) {
	mockRepo := new(MockInvoiceRepository)
	service := services.NewInvoiceService(mockRepo, nil)

	mockRepo.On("ExistsByNumberOrToken", mock.Anything, mock.Anything).Return(false, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Invoice")).Return(nil).Once()

	invoice, err := service.CreateInvoice(validInput())

	require.NoError(t, err)
	require.NotNil(t, invoice)
	assert.Equal(t, models.StatusPending, invoice.Status)
	assert.Equal(t, models.PaymentPending, invoice.PaymentStatus)
	assert.Equal(t, models.DefaultPaymentMethod, invoice.PaymentMethod)
	assert.Nil(t, invoice.CollectedAt)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "SN"))
	assert.Regexp(t, regexp.MustCompile(`^[1-9]\d{5}$`), invoice.Token)
	mockRepo.AssertExpectations(t)
}

func TestInvoiceService_CreateInvoice_RetriesOnConflict(t *testing.T) {
	mockRepo := new(MockInvoiceRepository)
	service := services.NewInvoiceService(mockRepo, nil)

	conflict := fmt.Errorf("%w: invoice number or token already in use", apperrors.ErrConflict)

	mockRepo.On("ExistsByNumberOrToken", mock.Anything, mock.Anything).Return(false, nil).Times(3)
	mockRepo.On("Create", mock.AnythingOfType("*models.Invoice")).Return(conflict).Twice()
	mockRepo.On("Create", mock.AnythingOfType("*models.Invoice")).Return(nil).Once()

	invoice, err := service.CreateInvoice(validInput())

	require.NoError(t, err)
	require.NotNil(t, invoice)
	mockRepo.AssertExpectations(t)
}

func TestInvoiceService_CreateInvoice_IdentifierExhaustion(t *testing.T) {
	mockRepo := new(MockInvoiceRepository)
	service := services.NewInvoiceService(mockRepo, nil)

	conflict := fmt.Errorf("%w: invoice number or token already in use", apperrors.ErrConflict)

	mockRepo.On("ExistsByNumberOrToken", mock.Anything, mock.Anything).Return(false, nil).Times(5)
	mockRepo.On("Create", mock.AnythingOfType("*models.Invoice")).Return(conflict).Times(5)

	invoice, err := service.CreateInvoice(validInput())

	assert.Nil(t, invoice)
	assert.ErrorIs(t, err, apperrors.ErrIdentifierExhausted)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertExpectations(t)
}

// Simulates the key regression for identifier generation: many parallel
// creations against a store that enforces the unique indexes must never
// yield two invoices sharing an invoice number or token.
func TestInvoiceService_CreateInvoice_ConcurrentUniqueness(t *testing.T) {
	repo := repositories.NewMemoryInvoiceRepository(nil)
	service := services.NewInvoiceService(repo, nil)

	const parallel = 50
	var wg sync.WaitGroup
	errs := make([]error, parallel)
	invoices := make([]*models.Invoice, parallel)

	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			invoices[i], errs[i] = service.CreateInvoice(validInput())
		}(i)
	}
	wg.Wait()

	numbers := map[string]bool{}
	tokens := map[string]bool{}
	for i := 0; i < parallel; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, invoices[i])
		assert.False(t, numbers[invoices[i].InvoiceNumber], "duplicate invoice number %s", invoices[i].InvoiceNumber)
		assert.False(t, tokens[invoices[i].Token], "duplicate token %s", invoices[i].Token)
		numbers[invoices[i].InvoiceNumber] = true
		tokens[invoices[i].Token] = true
	}

	count, err := repo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, int64(parallel), count)
}

func TestInvoiceService_UpdateStatus_Lifecycle(t *testing.T) {
	repo := repositories.NewMemoryInvoiceRepository(nil)
	service := services.NewInvoiceService(repo, nil)

	created, err := service.CreateInvoice(validInput())
	require.NoError(t, err)
	require.Nil(t, created.CollectedAt)

	ready := models.StatusReady
	invoice, err := service.UpdateStatus(created.ID, &ready, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, invoice.Status)
	assert.Nil(t, invoice.CollectedAt, "only the collected status stamps collectedAt")

	collected := models.StatusCollected
	invoice, err = service.UpdateStatus(created.ID, &collected, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCollected, invoice.Status)
	require.NotNil(t, invoice.CollectedAt)
	assert.False(t, invoice.CollectedAt.Before(created.CreatedAt))
	stamped := *invoice.CollectedAt

	// Transitions are deliberately unrestricted; moving away from collected
	// succeeds and leaves the earlier collectedAt untouched.
	pending := models.StatusPending
	invoice, err = service.UpdateStatus(created.ID, &pending, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, invoice.Status)
	require.NotNil(t, invoice.CollectedAt)
	assert.Equal(t, stamped, *invoice.CollectedAt)
}

func TestInvoiceService_UpdateStatus_Validation(t *testing.T) {
	mockRepo := new(MockInvoiceRepository)
	service := services.NewInvoiceService(mockRepo, nil)

	bogus := models.InvoiceStatus("shipped")
	_, err := service.UpdateStatus("inv-1", &bogus, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	badPayment := models.PaymentStatus("refunded")
	_, err = service.UpdateStatus("inv-1", nil, &badPayment)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = service.UpdateStatus("inv-1", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestInvoiceService_Collect(t *testing.T) {
	repo := repositories.NewMemoryInvoiceRepository(nil)
	service := services.NewInvoiceService(repo, nil)

	created, err := service.CreateInvoice(validInput())
	require.NoError(t, err)

	invoice, err := service.Collect(created.Token)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCollected, invoice.Status)
	assert.Equal(t, models.PaymentPaid, invoice.PaymentStatus)
	require.NotNil(t, invoice.CollectedAt)
	assert.False(t, invoice.CollectedAt.Before(created.CreatedAt))

	_, err = service.Collect("000000")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
