package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

// GetLandlordProfile returns the caller's profile.
func GetLandlordProfile(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	ctx.JSON(iris.Map{"user": user})
}

// UpdateLandlordProfile edits the caller's profile fields.
func UpdateLandlordProfile(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updates := applyProfileUpdate(user, &input)
	if len(updates) > 0 {
		if err := storage.DB.Model(user).Updates(updates).Error; err != nil {
			utils.CreateInternalServerError(ctx, err)
			return
		}
	}

	ctx.JSON(iris.Map{"message": "Profile updated successfully", "user": user})
}

// GetLandlordProperties lists every listing the caller owns, regardless of
// verification status.
func GetLandlordProperties(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)

	var properties []models.Property
	if err := storage.DB.Preload("Tenants").
		Where("landlord_id = ?", landlord.ID).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"properties": properties})
}

// GetPropertiesByLandlord lists another landlord's published listings.
func GetPropertiesByLandlord(ctx iris.Context) {
	userID := ctx.Params().GetUintDefault("userId", 0)

	user, err := findUserByID(userID)
	if err != nil || user.Role != "landlord" {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "Landlord not found"})
		return
	}

	var properties []models.Property
	if err := storage.DB.
		Where("landlord_id = ? AND is_published = ?", user.ID, true).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"landlord": user, "properties": properties})
}

// GetLandlordStats aggregates listing counts and total views for the caller.
func GetLandlordStats(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)

	var total, published, pending int64
	storage.DB.Model(&models.Property{}).Where("landlord_id = ?", landlord.ID).Count(&total)
	storage.DB.Model(&models.Property{}).
		Where("landlord_id = ? AND is_published = ?", landlord.ID, true).Count(&published)
	storage.DB.Model(&models.Property{}).
		Where("landlord_id = ? AND verification_status = ?", landlord.ID, "pending").Count(&pending)

	var totalViews int64
	storage.DB.Model(&models.Property{}).
		Where("landlord_id = ?", landlord.ID).
		Select("COALESCE(SUM(view_count), 0)").Scan(&totalViews)

	var activeBookings int64
	storage.DB.Model(&models.Booking{}).
		Where("landlord_id = ? AND status = ?", landlord.ID, models.BookingStatusActive).
		Count(&activeBookings)

	ctx.JSON(iris.Map{"stats": iris.Map{
		"totalProperties":      total,
		"publishedProperties":  published,
		"pendingVerifications": pending,
		"totalViews":           totalViews,
		"activeBookings":       activeBookings,
	}})
}

// GetLandlordViewHistory lists the tenants who viewed the caller's listings.
func GetLandlordViewHistory(ctx iris.Context) {
	landlord := utils.CurrentUser(ctx)

	var properties []models.Property
	if err := storage.DB.Select("id", "title").
		Where("landlord_id = ?", landlord.ID).
		Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	history := make([]iris.Map, 0, len(properties))
	for i := range properties {
		var viewers []models.User
		storage.DB.Select("id", "name", "email", "profile_picture").
			Where("viewed_properties @> ?", idContainsClause(properties[i].ID)).
			Find(&viewers)

		summaries := make([]iris.Map, 0, len(viewers))
		for j := range viewers {
			summaries = append(summaries, iris.Map{
				"id":             viewers[j].ID,
				"name":           viewers[j].Name,
				"email":          viewers[j].Email,
				"profilePicture": viewers[j].ProfilePicture,
			})
		}

		history = append(history, iris.Map{
			"propertyId": properties[i].ID,
			"title":      properties[i].Title,
			"viewers":    summaries,
		})
	}

	ctx.JSON(iris.Map{"viewHistory": history})
}
