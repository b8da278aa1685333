package routes

import (
	"errors"
	"math"
	"strings"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type PropertyReviewInput struct {
	PropertyID uint   `json:"propertyId" validate:"required"`
	Comment    string `json:"comment" validate:"required"`
}

type UserReviewInput struct {
	UserID            uint   `json:"userId" validate:"required"`
	Rating            int    `json:"rating" validate:"required,min=1,max=5"`
	Comment           string `json:"comment"`
	RelatedPropertyID *uint  `json:"relatedPropertyId"`
}

// reviewRoleAllowed enforces the cross-role rule: landlords rate tenants and
// tenants rate landlords, never peers.
func reviewRoleAllowed(reviewerRole, targetRole string) bool {
	switch reviewerRole {
	case "landlord":
		return targetRole == "tenant"
	case "tenant":
		return targetRole == "landlord"
	}
	return false
}

// recomputeRating averages a full set of ratings, rounded to one decimal.
func recomputeRating(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10, len(ratings)
}

// CreatePropertyReview adds a comment on a property.
func CreatePropertyReview(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input PropertyReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if strings.TrimSpace(input.Comment) == "" {
		utils.CreateBadRequest(ctx, "Comment cannot be empty")
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

	review := models.PropertyReview{
		PropertyID: property.ID,
		ReviewerID: user.ID,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	storage.DB.Model(&property).UpdateColumn("total_reviews", gorm.Expr("total_reviews + 1"))

	storage.DB.Preload("Reviewer").First(&review, review.ID)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Review added successfully", "review": &review})
}

// GetPropertyReviews lists a property's comments, newest first.
func GetPropertyReviews(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("propertyId", 0)

	var reviews []models.PropertyReview
	if err := storage.DB.Preload("Reviewer").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"reviews": reviews})
}

// RateUser upserts the caller's rating of another user and recomputes the
// target's aggregates from the full review set.
func RateUser(ctx iris.Context) {
	reviewer := utils.CurrentUser(ctx)

	var input UserReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.UserID == reviewer.ID {
		utils.CreateBadRequest(ctx, "You cannot rate yourself")
		return
	}

	target, err := findUserByID(input.UserID)
	if err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "User not found"})
		return
	}

	if !reviewRoleAllowed(reviewer.Role, target.Role) {
		utils.CreateBadRequest(ctx, "Landlords can only rate tenants and tenants can only rate landlords")
		return
	}

	var review models.UserReview
	result := storage.DB.
		Where("reviewed_user_id = ? AND reviewer_id = ?", target.ID, reviewer.ID).
		Limit(1).Find(&review)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx, result.Error)
		return
	}

	review.ReviewedUserID = target.ID
	review.ReviewerID = reviewer.ID
	review.Rating = input.Rating
	review.Comment = input.Comment
	review.RelatedPropertyID = input.RelatedPropertyID
	review.ReviewerRole = reviewer.Role

	if err := storage.DB.Save(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if err := refreshUserRating(target.ID); err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	message := "Rating submitted successfully"
	if result.RowsAffected > 0 {
		message = "Rating updated successfully"
	}
	ctx.JSON(iris.Map{"message": message, "review": &review})
}

// GetUserRatings lists the reviews received by a user, plus the aggregates.
func GetUserRatings(ctx iris.Context) {
	userID := ctx.Params().GetUintDefault("userId", 0)

	user, err := findUserByID(userID)
	if err != nil {
		ctx.StatusCode(iris.StatusNotFound)
		ctx.JSON(iris.Map{"message": "User not found"})
		return
	}

	var reviews []models.UserReview
	if err := storage.DB.Preload("Reviewer").
		Where("reviewed_user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"averageRating": user.AverageRating,
		"totalRatings":  user.TotalRatings,
		"reviews":       reviews,
	})
}

// GetMyRatingOfUser returns the caller's own review of another user.
func GetMyRatingOfUser(ctx iris.Context) {
	reviewer := utils.CurrentUser(ctx)
	userID := ctx.Params().GetUintDefault("userId", 0)

	var review models.UserReview
	err := storage.DB.
		Where("reviewed_user_id = ? AND reviewer_id = ?", userID, reviewer.ID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "You have not rated this user"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"review": &review})
}

// refreshUserRating reloads every rating for the user and stores the average.
func refreshUserRating(userID uint) error {
	var ratings []int
	if err := storage.DB.Model(&models.UserReview{}).
		Where("reviewed_user_id = ?", userID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}

	avg, count := recomputeRating(ratings)
	return storage.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"average_rating": avg,
			"total_ratings":  count,
		}).Error
}
