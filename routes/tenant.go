package routes

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type UpdateProfileInput struct {
	Name           *string    `json:"name"`
	Phone          *string    `json:"phone"`
	Gender         *string    `json:"gender"`
	Occupation     *string    `json:"occupation"`
	DateOfBirth    *string    `json:"dateOfBirth"`
	Bio            *string    `json:"bio"`
	ProfilePicture *string    `json:"profilePicture"`
}

type WishlistInput struct {
	PropertyID uint `json:"propertyId" validate:"required"`
}

// GetTenantProfile returns the caller's profile.
func GetTenantProfile(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	ctx.JSON(iris.Map{"user": user})
}

// UpdateTenantProfile edits the caller's profile fields.
func UpdateTenantProfile(ctx iris.Context) {
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

// GetWishlist returns the tenant's wishlisted properties with their landlords.
func GetWishlist(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	ids := idsFromJSON(user.Wishlist)
	properties := []models.Property{}
	if len(ids) > 0 {
		if err := storage.DB.Preload("Landlord").
			Where("id IN ?", ids).
			Find(&properties).Error; err != nil {
			utils.CreateInternalServerError(ctx, err)
			return
		}
	}

	ctx.JSON(iris.Map{"wishlist": properties})
}

// AddToWishlist adds a property to the tenant's wishlist.
func AddToWishlist(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input WishlistInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, input.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Property not found"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ids := idsFromJSON(user.Wishlist)
	if containsID(ids, property.ID) {
		utils.CreateBadRequest(ctx, "Property is already in your wishlist")
		return
	}

	ids = append(ids, property.ID)
	if err := storage.DB.Model(user).Update("wishlist", jsonFromIDs(ids)).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "Property added to wishlist"})
}

// RemoveFromWishlist removes a property from the tenant's wishlist.
func RemoveFromWishlist(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	propertyID := ctx.Params().GetUintDefault("propertyId", 0)

	ids := idsFromJSON(user.Wishlist)
	filtered := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != propertyID {
			filtered = append(filtered, id)
		}
	}

	if err := storage.DB.Model(user).Update("wishlist", jsonFromIDs(filtered)).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "Property removed from wishlist"})
}

// GetViewedProperties returns the tenant's browsing history.
func GetViewedProperties(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	ids := idsFromJSON(user.ViewedProperties)
	properties := []models.Property{}
	if len(ids) > 0 {
		if err := storage.DB.Preload("Landlord").
			Where("id IN ?", ids).
			Find(&properties).Error; err != nil {
			utils.CreateInternalServerError(ctx, err)
			return
		}
	}

	ctx.JSON(iris.Map{"viewedProperties": properties})
}

// GetPublicUserProfile exposes the fields any authenticated user may see
// about another user.
func GetPublicUserProfile(ctx iris.Context) {
	userID := ctx.Params().GetUintDefault("userId", 0)

	user, err := findUserByID(userID)
	if err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "User not found"})
		return
	}

	ctx.JSON(iris.Map{"user": iris.Map{
		"id":             user.ID,
		"name":           user.Name,
		"role":           user.Role,
		"profilePicture": user.ProfilePicture,
		"occupation":     user.Occupation,
		"bio":            user.Bio,
		"averageRating":  user.AverageRating,
		"totalRatings":   user.TotalRatings,
		"memberSince":    user.CreatedAt,
	}})
}

// applyProfileUpdate mutates the in-memory user for the response and returns
// the changed columns. Handlers persist only these columns: the loaded user
// has its password hash cleared, so a full-row save would wipe it.
func applyProfileUpdate(user *models.User, input *UpdateProfileInput) map[string]interface{} {
	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
		updates["name"] = user.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
		updates["phone"] = user.Phone
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
		updates["gender"] = user.Gender
	}
	if input.Occupation != nil {
		user.Occupation = *input.Occupation
		updates["occupation"] = user.Occupation
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = *input.DateOfBirth
		updates["date_of_birth"] = user.DateOfBirth
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
		updates["bio"] = user.Bio
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
		updates["profile_picture"] = user.ProfilePicture
	}
	return updates
}

func idsFromJSON(raw datatypes.JSON) []uint {
	if raw == nil {
		return []uint{}
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return []uint{}
	}
	return ids
}

func jsonFromIDs(ids []uint) datatypes.JSON {
	raw, _ := json.Marshal(ids)
	return datatypes.JSON(raw)
}

func jsonFromStrings(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

// idContainsClause builds the jsonb containment argument for matching an id
// inside a stored id array.
func idContainsClause(id uint) string {
	return fmt.Sprintf("[%d]", id)
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
