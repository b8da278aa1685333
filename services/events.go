package services

import "time"

// Notification event types carried on the queue.
const (
	EventBookingRequested           = "booking_requested"
	EventBookingAccepted            = "booking_accepted"
	EventBookingRejected            = "booking_rejected"
	EventWishlistPriceChanged       = "wishlist_price_changed"
	EventWishlistAvailabilityChange = "wishlist_availability_changed"
)

// NotificationEvent is the payload published on the notifications queue.
// It carries enough information for the worker to write the notification
// row and render the email without reading back through the API.
type NotificationEvent struct {
	Type string `json:"type"`

	RecipientID    uint   `json:"recipientID"`
	RecipientEmail string `json:"recipientEmail"`
	SenderID       uint   `json:"senderID,omitempty"`

	PropertyID    uint   `json:"propertyID,omitempty"`
	PropertyTitle string `json:"propertyTitle,omitempty"`
	BookingID     uint   `json:"bookingID,omitempty"`
	BookingType   string `json:"bookingType,omitempty"`

	ActorName  string `json:"actorName,omitempty"`
	ActorEmail string `json:"actorEmail,omitempty"`

	RequestedDate *time.Time `json:"requestedDate,omitempty"`

	OldRent     float64 `json:"oldRent,omitempty"`
	NewRent     float64 `json:"newRent,omitempty"`
	IsAvailable bool    `json:"isAvailable,omitempty"`
}
