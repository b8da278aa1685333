package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking states. Transitions are one-directional: a booking never returns
// to pending once it leaves it.
const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
)

const (
	BookingTypeVisit = "visit"
	BookingTypeRoom  = "booking"
)

const (
	PropertyStatusActive = "active"
	PropertyStatusLeft   = "left"
)

type Booking struct {
	gorm.Model
	PropertyID uint     `json:"propertyID" gorm:"not null;index"`
	Property   Property `json:"property" gorm:"foreignKey:PropertyID"`
	TenantID   uint     `json:"tenantID" gorm:"not null;index"`
	Tenant     User     `json:"tenant" gorm:"foreignKey:TenantID"`
	LandlordID uint     `json:"landlordID" gorm:"not null;index"`
	Landlord   User     `json:"landlord" gorm:"foreignKey:LandlordID"`

	BookingType string `json:"bookingType" gorm:"type:varchar(10);not null"` // visit, booking

	// Visit fields
	ProposedDate      *time.Time `json:"proposedDate"`
	ApprovedVisitTime string     `json:"approvedVisitTime"`

	// Room-booking fields
	MoveInDate    *time.Time `json:"moveInDate"`
	LeaseDuration int        `json:"leaseDuration"`

	Status string `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	// Set once a room booking goes active: active while the tenant occupies
	// the room, left after leave-property.
	PropertyStatus string `json:"propertyStatus" gorm:"type:varchar(10)"`

	TenantNotes     string `json:"tenantNotes"`
	LandlordNotes   string `json:"landlordNotes"`
	RejectionReason string `json:"rejectionReason"`
}
