package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/services"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type CreatePropertyInput struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	PropertyType    string     `json:"propertyType" validate:"required,oneof=room flat apartment"`
	Street          string     `json:"street" validate:"required"`
	City            string     `json:"city" validate:"required"`
	State           string     `json:"state"`
	ZipCode         string     `json:"zipCode"`
	Country         string     `json:"country"`
	GoogleMapsLink  string     `json:"googleMapsLink"`
	Rent            float64    `json:"rent" validate:"required,gt=0"`
	SecurityDeposit float64    `json:"securityDeposit"`
	TotalRooms      int        `json:"totalRooms" validate:"required,gt=0"`
	AvailableRooms  *int       `json:"availableRooms"`
	Amenities       []string   `json:"amenities"`
	Images          []string   `json:"images"`
	AvailableFrom   *time.Time `json:"availableFrom"`
}

type UpdatePropertyInput struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	PropertyType    *string    `json:"propertyType"`
	Street          *string    `json:"street"`
	City            *string    `json:"city"`
	State           *string    `json:"state"`
	ZipCode         *string    `json:"zipCode"`
	GoogleMapsLink  *string    `json:"googleMapsLink"`
	Rent            *float64   `json:"rent"`
	SecurityDeposit *float64   `json:"securityDeposit"`
	TotalRooms      *int       `json:"totalRooms"`
	AvailableRooms  *int       `json:"availableRooms"`
	Amenities       []string   `json:"amenities"`
	Images          []string   `json:"images"`
	AvailableFrom   *time.Time `json:"availableFrom"`
	IsAvailable     *bool      `json:"isAvailable"`
}

// GetProperties is the public search endpoint. Only published, approved
// listings are visible.
func GetProperties(ctx iris.Context) {
	query := storage.DB.Preload("Landlord").
		Where("is_published = ? AND verification_status = ?", true, "approved")

	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if state := ctx.URLParam("state"); state != "" {
		query = query.Where("LOWER(state) LIKE ?", "%"+strings.ToLower(state)+"%")
	}
	if propertyType := ctx.URLParam("propertyType"); propertyType != "" {
		query = query.Where("property_type = ?", propertyType)
	}
	if maxRent, err := ctx.URLParamFloat64("maxRent"); err == nil && maxRent > 0 {
		query = query.Where("rent <= ?", maxRent)
	}
	if minRent, err := ctx.URLParamFloat64("minRent"); err == nil && minRent > 0 {
		query = query.Where("rent >= ?", minRent)
	}
	if ctx.URLParam("available") == "true" {
		query = query.Where("is_available = ?", true)
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"properties": properties})
}

// GetPropertyByID returns one listing. Unpublished properties are only
// visible to their landlord and to admins. Views by tenants are counted
// and remembered for the landlord's view history.
func GetPropertyByID(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	propertyID := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	if err := storage.DB.Preload("Landlord").Preload("Tenants").
		First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if !property.IsPublished && property.LandlordID != user.ID && user.Role != "admin" {
		utils.CreateNotFound(ctx)
		return
	}

	if user.Role == "tenant" {
		storage.DB.Model(&property).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
		property.ViewCount++

		viewed := idsFromJSON(user.ViewedProperties)
		if !containsID(viewed, property.ID) {
			viewed = append(viewed, property.ID)
			storage.DB.Model(user).Update("viewed_properties", jsonFromIDs(viewed))
		}
	}

	ctx.JSON(iris.Map{"property": &property})
}

// CreateProperty registers a new listing. It goes live only after an admin
// approves it.
func CreateProperty(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)

	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	availableRooms := input.TotalRooms
	if input.AvailableRooms != nil {
		availableRooms = clampRooms(*input.AvailableRooms, input.TotalRooms)
	}

	property := models.Property{
		LandlordID:         landlord.ID,
		Title:              input.Title,
		Description:        input.Description,
		PropertyType:       input.PropertyType,
		Street:             input.Street,
		City:               input.City,
		State:              input.State,
		ZipCode:            input.ZipCode,
		Country:            input.Country,
		GoogleMapsLink:     input.GoogleMapsLink,
		Rent:               input.Rent,
		SecurityDeposit:    input.SecurityDeposit,
		TotalRooms:         input.TotalRooms,
		AvailableRooms:     availableRooms,
		Amenities:          jsonFromStrings(input.Amenities),
		Images:             uploadPropertyImages(input.Images, landlord.ID),
		AvailableFrom:      input.AvailableFrom,
		IsAvailable:        availableRooms > 0,
		VerificationStatus: "pending",
		IsPublished:        false,
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"message":  "Property created successfully and is pending admin approval",
		"property": &property,
	})
}

// UpdateProperty edits a listing owned by the caller. Rent and availability
// changes fan out to tenants who wishlisted the property.
func UpdateProperty(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)
	propertyID := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	if err := storage.DB.Where("id = ? AND landlord_id = ?", propertyID, landlord.ID).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	oldRent := property.Rent
	wasAvailable := property.IsAvailable

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.PropertyType != nil {
		property.PropertyType = *input.PropertyType
	}
	if input.Street != nil {
		property.Street = *input.Street
	}
	if input.City != nil {
		property.City = *input.City
	}
	if input.State != nil {
		property.State = *input.State
	}
	if input.ZipCode != nil {
		property.ZipCode = *input.ZipCode
	}
	if input.GoogleMapsLink != nil {
		property.GoogleMapsLink = *input.GoogleMapsLink
	}
	if input.Rent != nil && *input.Rent > 0 {
		property.Rent = *input.Rent
	}
	if input.SecurityDeposit != nil {
		property.SecurityDeposit = *input.SecurityDeposit
	}
	if input.TotalRooms != nil && *input.TotalRooms > 0 {
		property.TotalRooms = *input.TotalRooms
	}
	if input.AvailableRooms != nil {
		property.AvailableRooms = *input.AvailableRooms
	}
	if input.Amenities != nil {
		property.Amenities = jsonFromStrings(input.Amenities)
	}
	if input.Images != nil {
		property.Images = uploadPropertyImages(input.Images, landlord.ID)
	}
	if input.AvailableFrom != nil {
		property.AvailableFrom = input.AvailableFrom
	}

	property.AvailableRooms = clampRooms(property.AvailableRooms, property.TotalRooms)
	property.IsAvailable = property.AvailableRooms > 0
	if input.IsAvailable != nil && !*input.IsAvailable {
		property.IsAvailable = false
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if property.Rent != oldRent {
		notifyWishlisters(&property, services.NotificationEvent{
			Type:    services.EventWishlistPriceChanged,
			OldRent: oldRent,
			NewRent: property.Rent,
		})
	}
	if property.IsAvailable != wasAvailable {
		notifyWishlisters(&property, services.NotificationEvent{
			Type:        services.EventWishlistAvailabilityChange,
			IsAvailable: property.IsAvailable,
		})
	}

	ctx.JSON(iris.Map{"message": "Property updated successfully", "property": &property})
}

// DeleteProperty removes a vacant listing owned by the caller.
func DeleteProperty(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)
	propertyID := ctx.Params().GetUintDefault("id", 0)

	var property models.Property
	if err := storage.DB.Preload("Tenants").
		Where("id = ? AND landlord_id = ?", propertyID, landlord.ID).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if len(property.Tenants) > 0 {
		utils.CreateBadRequest(ctx, "Cannot delete a property with active tenants")
		return
	}

	if err := storage.DB.Delete(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	deletePropertyImages(&property)

	ctx.JSON(iris.Map{"message": "Property deleted successfully"})
}

// GetPropertyHistory lists the properties the tenant has lived in and left.
func GetPropertyHistory(ctx iris.Context) {
	tenant := utils.CurrentUser(ctx)

	var bookings []models.Booking
	if err := storage.DB.Preload("Property").Preload("Landlord").
		Where("tenant_id = ? AND booking_type = ? AND status = ?",
			tenant.ID, models.BookingTypeRoom, models.BookingStatusCompleted).
		Order("updated_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"history": bookings})
}

// notifyWishlisters publishes one event per tenant holding the property on
// their wishlist, carrying the recipient's email for the worker.
func notifyWishlisters(property *models.Property, ev services.NotificationEvent) {
	var users []models.User
	if err := storage.DB.
		Where("wishlist @> ?", idContainsClause(property.ID)).
		Find(&users).Error; err != nil {
		return
	}

	ev.PropertyID = property.ID
	ev.PropertyTitle = property.Title
	sender := property.LandlordID
	ev.SenderID = sender
	for i := range users {
		ev.RecipientID = users[i].ID
		ev.RecipientEmail = users[i].Email
		_ = services.PublishNotification(context.Background(), ev)
	}
}

// uploadPropertyImages pushes base64 payloads to the image store and keeps
// URLs as-is so re-submitting an unchanged list is safe.
func uploadPropertyImages(images []string, landlordID uint) datatypes.JSON {
	urls := make([]string, 0, len(images))
	for i, img := range images {
		if strings.HasPrefix(img, "http") {
			urls = append(urls, img)
			continue
		}
		publicID := fmt.Sprintf("property/%d/%d_%d", landlordID, time.Now().UnixNano(), i)
		if url := storage.UploadBase64Image(img, publicID); url != "" {
			urls = append(urls, url)
		}
	}
	return jsonFromStrings(urls)
}

// deletePropertyImages removes stored images after a listing is deleted.
// Best effort; orphaned images are not worth failing the request over.
func deletePropertyImages(property *models.Property) {
	var images []string
	if property.Images == nil {
		return
	}
	if err := json.Unmarshal(property.Images, &images); err != nil {
		return
	}
	for _, url := range images {
		storage.DeleteImage(url)
	}
}

func clampRooms(available, total int) int {
	if available < 0 {
		return 0
	}
	if available > total {
		return total
	}
	return available
}
