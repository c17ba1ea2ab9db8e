package models

// Category is a top-level expense classification. Rows owned by
// SharedUserID are visible to everyone.
type Category struct {
	Base
	UserID   int64  `gorm:"not null;uniqueIndex:idx_category_user_name" json:"user_id"`
	Category string `gorm:"column:category;not null;uniqueIndex:idx_category_user_name" json:"category"`
}

func (Category) TableName() string { return "category" }

// Product is a subcategory nested under a category.
type Product struct {
	Base
	UserID   int64  `gorm:"not null;index" json:"user_id"`
	Category string `gorm:"not null;index" json:"category"`
	Product  string `gorm:"column:product;not null" json:"product"`
}

func (Product) TableName() string { return "product" }
