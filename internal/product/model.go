package product

import "time"

type Product struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Description   *string `json:"description,omitempty"`
	Offer         *string `json:"offer,omitempty"`
	Brand         *string `json:"brand,omitempty"`
	CategoryID    *uint   `json:"category_id,omitempty"`
	SubcategoryID *uint   `json:"subcategory_id,omitempty"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     time.Time
}

type Color struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	HexCode *string `json:"hex_code,omitempty"`
}
