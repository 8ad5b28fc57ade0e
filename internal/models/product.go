package models

import "time"

// Product represents a catalog item available for pickup orders.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,max=200"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Category    string    `json:"category" gorm:"index" validate:"required,max=100"`
	Image       string    `json:"image" validate:"required,url"`
	Description string    `json:"description" validate:"required,max=1000"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=5"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

// Apply copies the non-nil fields onto the product.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Rating != nil {
		p.Rating = *u.Rating
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
}
