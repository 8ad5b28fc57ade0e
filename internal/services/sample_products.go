package services

import "shopnow/internal/models"

// SampleProducts returns the fixed development sample set used by the seed
// endpoint and the startup auto-seed.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Wireless Headphones",
			Price:       99.99,
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop&crop=center",
			Description: "High-quality wireless headphones with noise cancellation",
			Rating:      4.5,
			Stock:       50,
		},
		{
			Name:        "Smart Watch",
			Price:       249.99,
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=300&fit=crop&crop=center",
			Description: "Advanced smartwatch with health monitoring features",
			Rating:      4.3,
			Stock:       30,
		},
		{
			Name:        "Coffee Maker",
			Price:       79.99,
			Category:    "home",
			Image:       "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=300&h=300&fit=crop&crop=center",
			Description: "Automatic drip coffee maker with programmable timer",
			Rating:      4.7,
			Stock:       25,
		},
		{
			Name:        "Running Shoes",
			Price:       129.99,
			Category:    "fashion",
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=300&h=300&fit=crop&crop=center",
			Description: "Comfortable running shoes with advanced cushioning",
			Rating:      4.4,
			Stock:       40,
		},
		{
			Name:        "Laptop Stand",
			Price:       45.99,
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=300&h=300&fit=crop&crop=center",
			Description: "Ergonomic adjustable laptop stand for better posture",
			Rating:      4.2,
			Stock:       60,
		},
		{
			Name:        "Organic Cotton T-Shirt",
			Price:       29.99,
			Category:    "fashion",
			Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300&h=300&fit=crop&crop=center",
			Description: "Soft organic cotton t-shirt in various colors",
			Rating:      4.6,
			Stock:       100,
		},
	}
}
