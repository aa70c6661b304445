package entity

import "time"

// ProductSummary is the projection of amazong_products used by search, lookup and paging.
type ProductSummary struct {
	ProductID int64   `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Category  string  `db:"category" json:"category"`
}

// ProductWithImage is a product whose image column is not null.
type ProductWithImage struct {
	ProductSummary
	Image string `db:"image" json:"image"`
}

// ShoppingItem is a shopping_list row returned by text search.
type ShoppingItem struct {
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	Category string  `db:"category" json:"category"`
}

// ShoppingItemName is the single-column projection used for shopping_list paging.
type ShoppingItemName struct {
	Name string `db:"name" json:"name"`
}

// ShoppingItemAdded is a shopping_list row that falls inside a date window.
type ShoppingItemAdded struct {
	Name      string    `db:"name" json:"name"`
	DateAdded time.Time `db:"date_added" json:"date_added"`
}

// CategoryTotal is SUM(price) for one shopping_list category.
type CategoryTotal struct {
	Category string  `db:"category" json:"category"`
	Total    float64 `db:"total" json:"total"`
}

// VideoViewCount is the number of views of one video in one region.
type VideoViewCount struct {
	VideoName string `db:"video_name" json:"video_name"`
	Region    string `db:"region" json:"region"`
	Views     int64  `db:"views" json:"views"`
}
