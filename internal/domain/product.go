package domain

import "time"

// Product models a catalog entry. Deactivation is soft: IsActive flips to
// false, the row stays.
type Product struct {
	ID                 string
	SKU                string
	Name               string
	Category           string
	SubCategory        string
	Description        string
	NormalPrice        float64
	DealPrice          float64
	DiscountPercentage float64
	Rating             float64
	ImageResources     []string
	FreeShipping       bool
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Banner is a storefront banner image.
type Banner struct {
	ID             string
	Name           string
	ImageResources []string
	CreatedAt      time.Time
}
