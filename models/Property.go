package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	LandlordID uint   `json:"landlordID" gorm:"not null;index"`
	Landlord   User   `json:"landlord" gorm:"foreignKey:LandlordID;references:ID"`
	Title      string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	PropertyType string `json:"propertyType" gorm:"type:varchar(20)"` // room, flat, apartment

	// Location
	Street         string `json:"street"`
	City           string `json:"city" gorm:"index"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	Country        string `json:"country" gorm:"default:'USA'"`
	GoogleMapsLink string `json:"googleMapsLink"`

	// Pricing
	Rent            float64 `json:"rent"`
	SecurityDeposit float64 `json:"securityDeposit" gorm:"default:0"`

	// Occupancy counters, mutated only by the booking workflow
	TotalRooms     int `json:"totalRooms"`
	AvailableRooms int `json:"availableRooms"`

	Amenities datatypes.JSON `json:"amenities"`
	Images    datatypes.JSON `json:"images"`

	// Occupants. Single source of truth; the display list landlords see is
	// projected from here at read time, never stored twice.
	Tenants []User `json:"-" gorm:"many2many:property_tenants;"`

	AvailableFrom *time.Time `json:"availableFrom"`
	IsAvailable   bool       `json:"isAvailable" gorm:"default:true"`

	// Review aggregates
	AverageRating float64 `json:"averageRating" gorm:"default:0"`
	TotalReviews  int     `json:"totalReviews" gorm:"default:0"`

	// Admin verification
	VerificationStatus string `json:"verificationStatus" gorm:"type:varchar(20);default:'pending';index"` // pending, approved, rejected
	IsPublished        bool   `json:"isPublished" gorm:"default:false;index"`
	RejectionReason    string `json:"rejectionReason"`

	ViewCount int `json:"viewCount" gorm:"default:0"`
}

// TenantInfo is the occupant summary shown on a listing.
type TenantInfo struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Occupation string `json:"occupation"`
}

// CurrentTenants projects display info from the loaded Tenants association.
func (p *Property) CurrentTenants() []TenantInfo {
	infos := make([]TenantInfo, 0, len(p.Tenants))
	for _, t := range p.Tenants {
		gender := t.Gender
		if gender == "" {
			gender = "Not specified"
		}
		occupation := t.Occupation
		if occupation == "" {
			occupation = "Not specified"
		}
		infos = append(infos, TenantInfo{ID: t.ID, Name: t.Name, Gender: gender, Occupation: occupation})
	}
	return infos
}

// MarshalJSON renders the JSON columns as arrays, exposes tenant ids plus the
// projected display list, and trims the landlord to avoid circular output.
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Amenities      []string     `json:"amenities"`
		Images         []string     `json:"images"`
		Tenants        []uint       `json:"tenants"`
		CurrentTenants []TenantInfo `json:"currentTenants"`
		Landlord       *User        `json:"landlord,omitempty"`
		*Alias
	}{
		Amenities:      []string{},
		Images:         []string{},
		Tenants:        []uint{},
		CurrentTenants: p.CurrentTenants(),
		Alias:          (*Alias)(p),
	}

	if p.Amenities != nil {
		var amenities []string
		if err := json.Unmarshal(p.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	if p.Images != nil {
		var images []string
		if err := json.Unmarshal(p.Images, &images); err == nil {
			aux.Images = images
		}
	}

	for _, t := range p.Tenants {
		aux.Tenants = append(aux.Tenants, t.ID)
	}

	if p.Landlord.ID > 0 {
		landlordCopy := p.Landlord
		aux.Landlord = &landlordCopy
	}

	return json.Marshal(aux)
}
