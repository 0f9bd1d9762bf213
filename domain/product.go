package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     sku             TEXT UNIQUE,
//     product_name    TEXT NOT NULL,
//     description     TEXT,
//     category_id     BIGINT,
//     product_category TEXT,
//     is_green_tag    BOOLEAN DEFAULT FALSE,
//     co2_saved_grams BIGINT DEFAULT 0,
//     price           NUMERIC NOT NULL,
//     sale_price      NUMERIC,
//     stock           BIGINT NOT NULL DEFAULT 0,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU             string    `gorm:"column:sku;uniqueIndex" json:"sku"`
	ProductName     string    `gorm:"column:product_name;type:text;not null" json:"product_name"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	CategoryID      uint64    `gorm:"column:category_id;default:0" json:"category_id"`
	ProductCategory string    `gorm:"column:product_category;type:text" json:"product_category"`
	IsGreenTag      bool      `gorm:"column:is_green_tag;default:false" json:"is_green_tag"`
	CO2SavedGrams   int64     `gorm:"column:co2_saved_grams;default:0" json:"co2_saved_grams"`
	Price           float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	SalePrice       float64   `gorm:"column:sale_price;type:numeric" json:"sale_price"`
	Stock           int64     `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the price the customer actually pays.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}

// ProductWithRating carries the review aggregate alongside the product row.
// The average is computed from reviews after the page is fetched, see
// business/catalog.
type ProductWithRating struct {
	Product
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}
