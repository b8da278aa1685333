package models

import "gorm.io/gorm"

// UserReview is a 1-5 star rating between a landlord and a tenant.
// One rating per (reviewer, reviewed) pair; later submissions update in place.
type UserReview struct {
	gorm.Model
	ReviewedUserID uint `json:"reviewedUserID" gorm:"not null;index;uniqueIndex:idx_user_reviews_pair"`
	ReviewedUser   User `json:"-" gorm:"foreignKey:ReviewedUserID"`
	ReviewerID     uint `json:"reviewerID" gorm:"not null;index;uniqueIndex:idx_user_reviews_pair"`
	Reviewer       User `json:"reviewer" gorm:"foreignKey:ReviewerID"`

	RelatedPropertyID *uint     `json:"relatedPropertyID"`
	RelatedProperty   *Property `json:"relatedProperty,omitempty" gorm:"foreignKey:RelatedPropertyID"`

	Rating       int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string `json:"comment" gorm:"type:text"`
	ReviewerRole string `json:"reviewerRole" gorm:"type:varchar(10);not null"` // landlord, tenant
}
