package models

import "gorm.io/gorm"

// PropertyReview is a plain comment thread on a listing.
type PropertyReview struct {
	gorm.Model
	PropertyID uint     `json:"propertyID" gorm:"not null;index"`
	Property   Property `json:"-" gorm:"foreignKey:PropertyID"`
	ReviewerID uint     `json:"reviewerID" gorm:"not null;index"`
	Reviewer   User     `json:"reviewer" gorm:"foreignKey:ReviewerID"`
	Comment    string   `json:"comment" gorm:"type:text;not null"`
}
