package routes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/services"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type CreateBookingInput struct {
	PropertyID    uint       `json:"propertyId" validate:"required"`
	BookingType   string     `json:"bookingType" validate:"required,oneof=visit booking"`
	ProposedDate  *time.Time `json:"proposedDate"`
	MoveInDate    *time.Time `json:"moveInDate"`
	LeaseDuration int        `json:"leaseDuration"`
	TenantNotes   string     `json:"tenantNotes"`
}

type AcceptBookingInput struct {
	ApprovedVisitTime string `json:"approvedVisitTime"`
}

type RejectBookingInput struct {
	RejectionReason string `json:"rejectionReason"`
}

// Transition guards. Handlers map these to 400s; keeping them pure keeps the
// state machine testable without a database.
var (
	errNotPending       = errors.New("booking is not pending")
	errNoRooms          = errors.New("no rooms available")
	errMissingVisitTime = errors.New("visit time required")
	errNotActive        = errors.New("no active booking")
)

// acceptVisit approves a pending visit at the landlord-chosen time.
// Visits stop at approved; they never touch room counters.
func acceptVisit(b *models.Booking, visitTime string) error {
	if b.Status != models.BookingStatusPending {
		return errNotPending
	}
	if strings.TrimSpace(visitTime) == "" {
		return errMissingVisitTime
	}
	b.ApprovedVisitTime = visitTime
	b.Status = models.BookingStatusApproved
	return nil
}

// acceptRoomBooking moves a pending room booking straight to active and
// claims a room on the property.
func acceptRoomBooking(b *models.Booking, p *models.Property) error {
	if b.Status != models.BookingStatusPending {
		return errNotPending
	}
	if p.AvailableRooms <= 0 {
		return errNoRooms
	}
	p.AvailableRooms--
	if p.AvailableRooms == 0 {
		p.IsAvailable = false
	}
	b.Status = models.BookingStatusActive
	b.PropertyStatus = models.PropertyStatusActive
	return nil
}

func rejectPending(b *models.Booking, reason string) error {
	if b.Status != models.BookingStatusPending {
		return errNotPending
	}
	b.Status = models.BookingStatusRejected
	b.RejectionReason = reason
	return nil
}

func cancelPending(b *models.Booking) error {
	if b.Status != models.BookingStatusPending {
		return errNotPending
	}
	b.Status = models.BookingStatusCancelled
	return nil
}

// leaveProperty releases the room held by an active booking. The counter is
// clamped so repeated releases can never exceed totalRooms.
func leaveProperty(b *models.Booking, p *models.Property) error {
	if b.Status != models.BookingStatusActive || b.PropertyStatus != models.PropertyStatusActive {
		return errNotActive
	}
	if p.AvailableRooms < p.TotalRooms {
		p.AvailableRooms++
	}
	if p.AvailableRooms > 0 {
		p.IsAvailable = true
	}
	b.Status = models.BookingStatusCompleted
	b.PropertyStatus = models.PropertyStatusLeft
	return nil
}

// CreateBookingRequest creates a pending visit or room-booking request.
func CreateBookingRequest(ctx iris.Context) {
	tenant := utils.CurrentUser(ctx)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Landlord").First(&property, input.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Property not found"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if !property.IsAvailable || property.AvailableRooms <= 0 {
		utils.CreateBadRequest(ctx, "Property is not available")
		return
	}

	if input.BookingType == models.BookingTypeRoom {
		// Friendly pre-check; the partial unique index is the real guard.
		var count int64
		storage.DB.Model(&models.Booking{}).
			Where("tenant_id = ? AND booking_type = ? AND status IN ?",
				tenant.ID, models.BookingTypeRoom,
				[]string{models.BookingStatusPending, models.BookingStatusApproved, models.BookingStatusActive}).
			Count(&count)
		if count > 0 {
			utils.CreateBadRequest(ctx, "You already have an active booking. A tenant can only be in one property at a time.")
			return
		}
	}

	booking := models.Booking{
		PropertyID:  property.ID,
		TenantID:    tenant.ID,
		LandlordID:  property.LandlordID,
		BookingType: input.BookingType,
		Status:      models.BookingStatusPending,
		TenantNotes: input.TenantNotes,
	}
	if input.BookingType == models.BookingTypeVisit {
		booking.ProposedDate = input.ProposedDate
	} else {
		booking.MoveInDate = input.MoveInDate
		booking.LeaseDuration = input.LeaseDuration
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		if strings.Contains(err.Error(), "idx_bookings_single_active") {
			utils.CreateBadRequest(ctx, "You already have an active booking. A tenant can only be in one property at a time.")
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	// Fire-and-forget: a broker outage never fails the request.
	requested := booking.MoveInDate
	if booking.BookingType == models.BookingTypeVisit {
		requested = booking.ProposedDate
	}
	_ = services.PublishNotification(context.Background(), services.NotificationEvent{
		Type:           services.EventBookingRequested,
		RecipientID:    property.LandlordID,
		RecipientEmail: property.Landlord.Email,
		SenderID:       tenant.ID,
		PropertyID:     property.ID,
		PropertyTitle:  property.Title,
		BookingID:      booking.ID,
		BookingType:    booking.BookingType,
		ActorName:      tenant.Name,
		ActorEmail:     tenant.Email,
		RequestedDate:  requested,
	})

	message := "Booking request created successfully"
	if booking.BookingType == models.BookingTypeVisit {
		message = "Visit request created successfully"
	}

	storage.DB.Preload("Property").Preload("Tenant").Preload("Landlord").First(&booking, booking.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": message, "booking": &booking})
}

// AcceptBooking approves a visit or activates a room booking. Room bookings
// mutate the property inside the same transaction as the booking save, with
// the property row locked, so the counter and the booking status can never
// drift apart.
func AcceptBooking(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)
	bookingID := ctx.Params().GetUintDefault("id", 0)

	// Body is optional for room bookings.
	var input AcceptBookingInput
	_ = ctx.ReadJSON(&input)

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND landlord_id = ?", bookingID, landlord.ID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Booking not found"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if booking.BookingType == models.BookingTypeVisit {
		if err := acceptVisit(&booking, input.ApprovedVisitTime); err != nil {
			if errors.Is(err, errMissingVisitTime) {
				utils.CreateBadRequest(ctx, "Please select a visit time between 9am-5pm")
				return
			}
			utils.CreateBadRequest(ctx, "Booking is not pending")
			return
		}
		if err := storage.DB.Save(&booking).Error; err != nil {
			utils.CreateInternalServerError(ctx, err)
			return
		}
	} else {
		txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
			// Re-read under lock so a concurrent accept of the same booking
			// sees the status the first one committed, not the stale
			// pre-transaction copy.
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&booking, booking.ID).Error; err != nil {
				return err
			}

			var property models.Property
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&property, booking.PropertyID).Error; err != nil {
				return err
			}

			if err := acceptRoomBooking(&booking, &property); err != nil {
				return err
			}

			var tenant models.User
			if err := tx.First(&tenant, booking.TenantID).Error; err != nil {
				return err
			}
			if err := tx.Model(&property).Association("Tenants").Append(&tenant); err != nil {
				return err
			}

			if err := tx.Save(&property).Error; err != nil {
				return err
			}
			return tx.Save(&booking).Error
		})
		if txErr != nil {
			switch {
			case errors.Is(txErr, errNotPending):
				utils.CreateBadRequest(ctx, "Booking is not pending")
			case errors.Is(txErr, errNoRooms):
				utils.CreateBadRequest(ctx, "No rooms available")
			default:
				utils.CreateInternalServerError(ctx, txErr)
			}
			return
		}
	}

	var property models.Property
	storage.DB.First(&property, booking.PropertyID)
	_ = services.PublishNotification(context.Background(), services.NotificationEvent{
		Type:          services.EventBookingAccepted,
		RecipientID:   booking.TenantID,
		SenderID:      landlord.ID,
		PropertyID:    booking.PropertyID,
		PropertyTitle: property.Title,
		BookingID:     booking.ID,
		BookingType:   booking.BookingType,
		ActorName:     landlord.Name,
	})

	message := "Booking request accepted successfully"
	if booking.BookingType == models.BookingTypeVisit {
		message = "Visit request accepted successfully"
	}

	storage.DB.Preload("Property.Tenants").Preload("Tenant").Preload("Landlord").First(&booking, booking.ID)
	ctx.JSON(iris.Map{"message": message, "booking": &booking})
}

// RejectBooking declines a pending request.
func RejectBooking(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var input RejectBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		input = RejectBookingInput{}
	}

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND landlord_id = ?", bookingID, landlord.ID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Booking not found"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if err := rejectPending(&booking, input.RejectionReason); err != nil {
		utils.CreateBadRequest(ctx, "Booking is not pending")
		return
	}

	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	var property models.Property
	storage.DB.First(&property, booking.PropertyID)
	_ = services.PublishNotification(context.Background(), services.NotificationEvent{
		Type:          services.EventBookingRejected,
		RecipientID:   booking.TenantID,
		SenderID:      landlord.ID,
		PropertyID:    booking.PropertyID,
		PropertyTitle: property.Title,
		BookingID:     booking.ID,
		BookingType:   booking.BookingType,
	})

	storage.DB.Preload("Property").Preload("Tenant").Preload("Landlord").First(&booking, booking.ID)
	ctx.JSON(iris.Map{"message": "Booking request rejected", "booking": &booking})
}

// CancelBooking lets a tenant withdraw their own pending request.
func CancelBooking(ctx iris.Context) {
	tenant := utils.CurrentUser(ctx)
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND tenant_id = ?", bookingID, tenant.ID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Booking not found"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if err := cancelPending(&booking); err != nil {
		utils.CreateBadRequest(ctx, "Only pending bookings can be cancelled")
		return
	}

	if err := storage.DB.Save(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	storage.DB.Preload("Property").Preload("Landlord").First(&booking, booking.ID)
	ctx.JSON(iris.Map{"message": "Booking cancelled successfully", "booking": &booking})
}

// LeaveProperty completes the tenant's active room booking and frees the room,
// in one transaction with the property row locked.
func LeaveProperty(ctx iris.Context) {
	tenant := utils.CurrentUser(ctx)

	var booking models.Booking
	if err := storage.DB.Where("tenant_id = ? AND booking_type = ? AND status = ? AND property_status = ?",
		tenant.ID, models.BookingTypeRoom, models.BookingStatusActive, models.PropertyStatusActive).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "No active booking found"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		// Same re-read-under-lock as accept: a second leave racing the first
		// must see completed/left, not its stale pre-transaction copy.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, booking.ID).Error; err != nil {
			return err
		}

		var property models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, booking.PropertyID).Error; err != nil {
			return err
		}

		if err := leaveProperty(&booking, &property); err != nil {
			return err
		}

		if err := tx.Model(&property).Association("Tenants").Delete(&models.User{Model: gorm.Model{ID: tenant.ID}}); err != nil {
			return err
		}

		if err := tx.Save(&property).Error; err != nil {
			return err
		}
		return tx.Save(&booking).Error
	})
	if txErr != nil {
		if errors.Is(txErr, errNotActive) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "No active booking found"})
			return
		}
		utils.CreateInternalServerError(ctx, txErr)
		return
	}

	ctx.JSON(iris.Map{"message": "You have successfully left the property", "booking": &booking})
}

// GetMyBookings lists the tenant's own requests, newest first.
func GetMyBookings(ctx iris.Context) {
	tenant := utils.CurrentUser(ctx)

	var bookings []models.Booking
	if err := storage.DB.Preload("Property").Preload("Landlord").
		Where("tenant_id = ?", tenant.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"bookings": bookings})
}

// GetMyCurrentProperty returns the tenant's active room booking, if any.
func GetMyCurrentProperty(ctx iris.Context) {
	tenant := utils.CurrentUser(ctx)

	var booking models.Booking
	err := storage.DB.Preload("Property.Tenants").Preload("Landlord").
		Where("tenant_id = ? AND booking_type = ? AND status = ? AND property_status = ?",
			tenant.ID, models.BookingTypeRoom, models.BookingStatusActive, models.PropertyStatusActive).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(iris.Map{"booking": nil})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"booking": &booking})
}

// GetLandlordBookings lists requests across a landlord's properties, with
// optional status / bookingType filters.
func GetLandlordBookings(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)

	query := storage.DB.Preload("Property").Preload("Tenant").
		Where("landlord_id = ?", landlord.ID)
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if bookingType := ctx.URLParam("bookingType"); bookingType != "" {
		query = query.Where("booking_type = ?", bookingType)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"bookings": bookings})
}

// GetPropertyBookings lists requests for one of the landlord's properties.
func GetPropertyBookings(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)
	propertyID := ctx.Params().GetUintDefault("propertyId", 0)

	var property models.Property
	if err := storage.DB.Where("id = ? AND landlord_id = ?", propertyID, landlord.ID).
		First(&property).Error; err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Property not found"})
		return
	}

	var bookings []models.Booking
	if err := storage.DB.Preload("Tenant").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"bookings": bookings})
}
