package models

import (
	"time"

	"gorm.io/gorm"
)

type ForumPost struct {
	gorm.Model
	AuthorID uint   `json:"authorID" gorm:"not null;index"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID"`
	PostType string `json:"postType" gorm:"type:varchar(10);not null"` // offering, seeking
	Title    string `json:"title" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text;not null"`

	City string `json:"city"`
	Area string `json:"area"`

	BudgetMin float64 `json:"budgetMin"`
	BudgetMax float64 `json:"budgetMax"`

	PropertyType string     `json:"propertyType" gorm:"type:varchar(20)"` // room, flat, apartment
	MoveInDate   *time.Time `json:"moveInDate"`

	Comments []ForumComment `json:"comments" gorm:"foreignKey:PostID"`

	IsActive bool `json:"isActive" gorm:"default:true;index"`
}

type ForumComment struct {
	gorm.Model
	PostID  uint   `json:"postID" gorm:"not null;index"`
	UserID  uint   `json:"userID" gorm:"not null"`
	User    User   `json:"user" gorm:"foreignKey:UserID"`
	Comment string `json:"comment" gorm:"type:text;not null"`
}
