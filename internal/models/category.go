package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryType partitions categories into the two transaction kinds.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

// Category represents a transaction category.
//
// A category with a nil UserID is a shared system category that is
// visible to every user.
type Category struct {
	DefaultModel
	UserID *uuid.UUID `gorm:"uniqueIndex:category_user_name"`
	Name   string     `gorm:"uniqueIndex:category_user_name"`
	Type   CategoryType
	Hidden bool
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// CategoryByID resolves a category that is either owned by the user or shared.
func CategoryByID(id uuid.UUID, owner uuid.UUID) (Category, error) {
	var category Category
	err := DB.
		Where("id = ?", id).
		Where("user_id = ? OR user_id IS NULL", owner).
		First(&category).Error
	if err != nil {
		return Category{}, err
	}

	return category, nil
}

// CategoriesFor returns all categories visible to the user.
func CategoriesFor(owner uuid.UUID) ([]Category, error) {
	var categories []Category
	err := DB.
		Where("user_id = ? OR user_id IS NULL", owner).
		Order("name ASC").
		Find(&categories).Error

	return categories, err
}

// Returns all categories on this instance for export
func (Category) Export() (json.RawMessage, error) {
	var categories []Category
	err := DB.Unscoped().Where(&Category{}).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&categories)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
