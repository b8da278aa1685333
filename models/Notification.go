package models

import "gorm.io/gorm"

// Notification rows are written by the queue worker, never directly by
// request handlers.
type Notification struct {
	gorm.Model
	RecipientID uint  `json:"recipientID" gorm:"not null;index"`
	Recipient   User  `json:"-" gorm:"foreignKey:RecipientID"`
	SenderID    *uint `json:"senderID"`
	Sender      *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`

	Type    string `json:"type" gorm:"type:varchar(40);not null"`
	Title   string `json:"title" gorm:"not null"`
	Message string `json:"message" gorm:"type:text;not null"`

	RelatedPropertyID *uint `json:"relatedPropertyID"`
	RelatedBookingID  *uint `json:"relatedBookingID"`

	IsRead      bool `json:"isRead" gorm:"default:false;index"`
	IsEmailSent bool `json:"isEmailSent" gorm:"default:false"`
}
