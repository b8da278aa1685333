package models

import "gorm.io/gorm"

type Report struct {
	gorm.Model
	ReporterID uint `json:"reporterID" gorm:"not null;index"`
	Reporter   User `json:"reporter" gorm:"foreignKey:ReporterID"`

	ReportedItem uint   `json:"reportedItem" gorm:"not null"`
	ItemType     string `json:"itemType" gorm:"type:varchar(20);not null"` // user, property, forumPost

	// spam, fraud, inappropriate_content, harassment, fake_listing, other
	Reason      string `json:"reason" gorm:"type:varchar(30);default:'other'"`
	Description string `json:"description" gorm:"type:text"`

	Status string `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, under_review, resolved, dismissed

	ReviewedByID *uint  `json:"reviewedByID"`
	ReviewedBy   *User  `json:"reviewedBy,omitempty" gorm:"foreignKey:ReviewedByID"`
	AdminNotes   string `json:"adminNotes" gorm:"type:text"`
	ActionTaken  string `json:"actionTaken"`
}
