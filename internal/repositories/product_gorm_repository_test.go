package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shopnow/internal/apperrors"
	"shopnow/internal/models"
	"shopnow/internal/repositories"
)

// newTestDB opens an isolated in-memory SQLite database with GORM's error
// translation enabled, matching the production configuration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Invoice{}, &models.InvoiceItem{}, &models.User{}))
	return db
}

func seedCatalog(t *testing.T, repo *repositories.GORMProductRepository) {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	products := []models.Product{
		{Name: "Wireless Headphones", Price: 99.99, Category: "electronics", Image: "https://example.com/h.jpg", Description: "Noise cancelling headphones", Stock: 50, CreatedAt: base},
		{Name: "Coffee Maker", Price: 79.99, Category: "home", Image: "https://example.com/c.jpg", Description: "Automatic drip coffee maker", Stock: 25, CreatedAt: base.Add(time.Minute)},
		{Name: "Running Shoes", Price: 129.99, Category: "fashion", Image: "https://example.com/s.jpg", Description: "Cushioned running shoes", Stock: 40, CreatedAt: base.Add(2 * time.Minute)},
		{Name: "Espresso Grinder", Price: 59.99, Category: "home", Image: "https://example.com/g.jpg", Description: "Burr grinder for coffee beans", Stock: 15, CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
}

func TestGORMProductRepository_List_CategoryFilter(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedCatalog(t, repo)

	products, total, err := repo.List(repositories.ProductFilter{Category: "home"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range products {
		assert.Equal(t, "home", p.Category)
	}

	// "all" disables the filter.
	_, total, err = repo.List(repositories.ProductFilter{Category: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestGORMProductRepository_List_Search(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedCatalog(t, repo)

	// Case-insensitive, matches name OR description.
	products, total, err := repo.List(repositories.ProductFilter{Search: "COFFEE"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	names := []string{products[0].Name, products[1].Name}
	assert.Contains(t, names, "Coffee Maker")          // name match
	assert.Contains(t, names, "Espresso Grinder")      // description match
	assert.NotContains(t, names, "Wireless Headphones")
}

func TestGORMProductRepository_List_Pagination(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedCatalog(t, repo)

	page1, total, err := repo.List(repositories.ProductFilter{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, page1, 3)
	// Newest first.
	assert.Equal(t, "Espresso Grinder", page1[0].Name)

	page2, _, err := repo.List(repositories.ProductFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "Wireless Headphones", page2[0].Name)
}

func TestGORMProductRepository_GetByID_NotFound(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	product, err := repo.GetByID("no-such-id")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGORMProductRepository_Delete(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedCatalog(t, repo)

	products, _, err := repo.List(repositories.ProductFilter{})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(products[0].ID))
	_, err = repo.GetByID(products[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(products[0].ID), apperrors.ErrNotFound)
}

func TestGORMProductRepository_Categories(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedCatalog(t, repo)

	categories, err := repo.Categories()

	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "fashion", "home"}, categories)
}

func TestGORMProductRepository_ReplaceAll(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedCatalog(t, repo)

	replacement := []models.Product{
		{Name: "Desk Lamp", Price: 19.99, Category: "home", Image: "https://example.com/l.jpg", Description: "LED desk lamp", Stock: 10},
	}
	require.NoError(t, repo.ReplaceAll(replacement))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	products, _, err := repo.List(repositories.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Desk Lamp", products[0].Name)
	assert.NotEmpty(t, products[0].ID)
}
