package routes

import (
	"errors"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type SuspendUserInput struct {
	SuspendedUntil *time.Time `json:"suspendedUntil"`
	Reason         string     `json:"reason"`
}

type RejectPropertyInput struct {
	RejectionReason string `json:"rejectionReason" validate:"required"`
}

type ResolveReportInput struct {
	Status      string `json:"status" validate:"required,oneof=pending under_review resolved dismissed"`
	AdminNotes  string `json:"adminNotes"`
	ActionTaken string `json:"actionTaken"`
}

// GetDashboardStats aggregates the platform counters for the admin overview.
func GetDashboardStats(ctx iris.Context) {
	var totalUsers, landlords, tenants int64
	storage.DB.Model(&models.User{}).Count(&totalUsers)
	storage.DB.Model(&models.User{}).Where("role = ?", "landlord").Count(&landlords)
	storage.DB.Model(&models.User{}).Where("role = ?", "tenant").Count(&tenants)

	var totalProperties, pendingProperties int64
	storage.DB.Model(&models.Property{}).Count(&totalProperties)
	storage.DB.Model(&models.Property{}).
		Where("verification_status = ?", "pending").Count(&pendingProperties)

	var pendingReports int64
	storage.DB.Model(&models.Report{}).Where("status = ?", "pending").Count(&pendingReports)

	var activeBookings int64
	storage.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusActive).Count(&activeBookings)

	ctx.JSON(iris.Map{"stats": iris.Map{
		"totalUsers":        totalUsers,
		"totalLandlords":    landlords,
		"totalTenants":      tenants,
		"totalProperties":   totalProperties,
		"pendingProperties": pendingProperties,
		"pendingReports":    pendingReports,
		"activeBookings":    activeBookings,
	}})
}

// GetAllUsers lists every account, optionally filtered by role.
func GetAllUsers(ctx iris.Context) {
	query := storage.DB.Order("created_at DESC")
	if role := ctx.URLParam("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}
	for i := range users {
		users[i].Password = ""
	}

	ctx.JSON(iris.Map{"users": users})
}

// GetUserByID returns one account.
func GetUserByID(ctx iris.Context) {
	userID := ctx.Params().GetUintDefault("userId", 0)

	user, err := findUserByID(userID)
	if err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "User not found"})
		return
	}

	user.Password = ""
	ctx.JSON(iris.Map{"user": user})
}

// SuspendUser blocks an account, optionally until a given date.
func SuspendUser(ctx iris.Context) {
	userID := ctx.Params().GetUintDefault("userId", 0)

	var input SuspendUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		input = SuspendUserInput{}
	}

	user, err := findUserByID(userID)
	if err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "User not found"})
		return
	}

	if user.Role == "admin" {
		utils.CreateBadRequest(ctx, "Admin accounts cannot be suspended")
		return
	}

	updates := map[string]interface{}{
		"is_suspended":    true,
		"suspended_until": input.SuspendedUntil,
	}
	if err := storage.DB.Model(user).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "User suspended successfully"})
}

// UnsuspendUser lifts a suspension.
func UnsuspendUser(ctx iris.Context) {
	userID := ctx.Params().GetUintDefault("userId", 0)

	user, err := findUserByID(userID)
	if err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "User not found"})
		return
	}

	updates := map[string]interface{}{
		"is_suspended":    false,
		"suspended_until": nil,
	}
	if err := storage.DB.Model(user).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "User unsuspended successfully"})
}

// DeleteUser removes an account. Owned rows are left in place.
func DeleteUser(ctx iris.Context) {
	userID := ctx.Params().GetUintDefault("userId", 0)

	user, err := findUserByID(userID)
	if err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "User not found"})
		return
	}

	if user.Role == "admin" {
		utils.CreateBadRequest(ctx, "Admin accounts cannot be deleted")
		return
	}

	if err := storage.DB.Delete(user).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "User deleted successfully"})
}

// GetAllProperties lists every listing with its landlord.
func GetAllProperties(ctx iris.Context) {
	query := storage.DB.Preload("Landlord").Order("created_at DESC")
	if status := ctx.URLParam("verificationStatus"); status != "" {
		query = query.Where("verification_status = ?", status)
	}

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"properties": properties})
}

// GetPendingProperties lists listings awaiting verification.
func GetPendingProperties(ctx iris.Context) {
	var properties []models.Property
	if err := storage.DB.Preload("Landlord").
		Where("verification_status = ?", "pending").
		Order("created_at ASC").
		Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"properties": properties})
}

// ApproveProperty verifies and publishes a listing.
func ApproveProperty(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("propertyId", 0)

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	updates := map[string]interface{}{
		"verification_status": "approved",
		"is_published":        true,
		"rejection_reason":    "",
	}
	if err := storage.DB.Model(&property).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "Property approved and published"})
}

// RejectProperty declines a listing with a reason for the landlord.
func RejectProperty(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("propertyId", 0)

	var input RejectPropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	updates := map[string]interface{}{
		"verification_status": "rejected",
		"is_published":        false,
		"rejection_reason":    input.RejectionReason,
	}
	if err := storage.DB.Model(&property).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "Property rejected"})
}

// AdminDeleteProperty removes a listing regardless of ownership.
func AdminDeleteProperty(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("propertyId", 0)

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if err := storage.DB.Delete(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	deletePropertyImages(&property)

	ctx.JSON(iris.Map{"message": "Property deleted successfully"})
}

// GetReports lists reports, optionally filtered by status.
func GetReports(ctx iris.Context) {
	query := storage.DB.Preload("Reporter").Preload("ReviewedBy").
		Order("created_at DESC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"reports": reports})
}

// ResolveReport updates a report's status and stamps the reviewing admin.
func ResolveReport(ctx iris.Context) {
	admin := utils.CurrentUser(ctx)
	reportID := ctx.Params().GetUintDefault("reportId", 0)

	var input ResolveReportInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var report models.Report
	if err := storage.DB.First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	report.Status = input.Status
	report.AdminNotes = input.AdminNotes
	report.ActionTaken = input.ActionTaken
	report.ReviewedByID = &admin.ID

	if err := storage.DB.Save(&report).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "Report updated successfully", "report": &report})
}

// UpdateAdminProfile edits the admin's own profile fields.
func UpdateAdminProfile(ctx iris.Context) {
	admin := utils.CurrentUser(ctx)

	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updates := applyProfileUpdate(admin, &input)
	if len(updates) > 0 {
		if err := storage.DB.Model(admin).Updates(updates).Error; err != nil {
			utils.CreateInternalServerError(ctx, err)
			return
		}
	}

	ctx.JSON(iris.Map{"message": "Profile updated successfully", "user": admin})
}
