package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name           string `json:"name"`
	Email          string `json:"email" gorm:"uniqueIndex"`
	Password       string `json:"password,omitempty"`
	Role           string `json:"role" gorm:"type:varchar(20);index"` // admin, landlord, tenant
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture"`
	Gender         string `json:"gender"` // male, female, other
	Occupation     string `json:"occupation"`
	DateOfBirth    string `json:"dateOfBirth"`
	Bio            string `json:"bio" gorm:"type:text"`

	// Denormalized aggregate over UserReview, recomputed on every rating write
	AverageRating float64 `json:"averageRating" gorm:"default:0"`
	TotalRatings  int     `json:"totalRatings" gorm:"default:0"`

	// Tenant features: property ids stored as JSON arrays
	Wishlist         datatypes.JSON `json:"wishlist"`
	ViewedProperties datatypes.JSON `json:"viewedProperties"`

	// Moderation
	IsSuspended    bool       `json:"isSuspended" gorm:"default:false;index"`
	SuspendedUntil *time.Time `json:"suspendedUntil"`
}

// MarshalJSON strips the password hash and renders the JSON id arrays
// as real arrays instead of raw bytes.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Password         string `json:"password,omitempty"`
		Wishlist         []uint `json:"wishlist"`
		ViewedProperties []uint `json:"viewedProperties"`
		*Alias
	}{
		Wishlist:         []uint{},
		ViewedProperties: []uint{},
		Alias:            (*Alias)(u),
	}

	if u.Wishlist != nil {
		var ids []uint
		if err := json.Unmarshal(u.Wishlist, &ids); err == nil {
			aux.Wishlist = ids
		}
	}

	if u.ViewedProperties != nil {
		var ids []uint
		if err := json.Unmarshal(u.ViewedProperties, &ids); err == nil {
			aux.ViewedProperties = ids
		}
	}

	return json.Marshal(aux)
}
