package models

// Recipe is a stored recipe together with the ingredients it references.
// Optional columns are pointers so a cleared field round-trips as NULL.
// The recipe_ingredient join table holds one row per (recipe, ingredient)
// pair and carries no other attributes.
type Recipe struct {
	ID           uint    `gorm:"primaryKey"`
	Title        string  `gorm:"not null"`
	Description  *string `gorm:"type:text"`
	Instructions *string `gorm:"type:text"`
	Rating       *float64
	Ingredients  []Ingredient `gorm:"many2many:recipe_ingredient"`
}
