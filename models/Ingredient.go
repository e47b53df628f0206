package models

// Ingredient is a catalog entry shared by every recipe that references it.
// Rows are created lazily the first time a recipe mentions a new name and
// are kept even when no recipe references them anymore.
type Ingredient struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}
