package routes

import (
	"errors"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type CreateForumPostInput struct {
	PostType     string     `json:"postType" validate:"required,oneof=offering seeking"`
	Title        string     `json:"title" validate:"required"`
	Content      string     `json:"content" validate:"required"`
	City         string     `json:"city"`
	Area         string     `json:"area"`
	BudgetMin    float64    `json:"budgetMin"`
	BudgetMax    float64    `json:"budgetMax"`
	PropertyType string     `json:"propertyType"`
	MoveInDate   *time.Time `json:"moveInDate"`
}

type ForumCommentInput struct {
	Content string `json:"content" validate:"required"`
}

// GetForumPosts lists active posts, newest first, with optional filters.
func GetForumPosts(ctx iris.Context) {
	query := storage.DB.Preload("Author").Preload("Comments.User").
		Where("is_active = ?", true)

	if postType := ctx.URLParam("postType"); postType != "" {
		query = query.Where("post_type = ?", postType)
	}
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}

	var posts []models.ForumPost
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"posts": posts})
}

// CreateForumPost publishes a roommate offering or seeking post.
func CreateForumPost(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input CreateForumPostInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	post := models.ForumPost{
		AuthorID:     user.ID,
		PostType:     input.PostType,
		Title:        input.Title,
		Content:      input.Content,
		City:         input.City,
		Area:         input.Area,
		BudgetMin:    input.BudgetMin,
		BudgetMax:    input.BudgetMax,
		PropertyType: input.PropertyType,
		MoveInDate:   input.MoveInDate,
		IsActive:     true,
	}
	if err := storage.DB.Create(&post).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	storage.DB.Preload("Author").First(&post, post.ID)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Post created successfully", "post": &post})
}

// DeleteForumPost removes a post. Only the author or an admin may delete.
func DeleteForumPost(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	postID := ctx.Params().GetUintDefault("id", 0)

	var post models.ForumPost
	if err := storage.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Post not found"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if post.AuthorID != user.ID && user.Role != "admin" {
		utils.CreateForbidden(ctx, "You can only delete your own posts")
		return
	}

	if err := storage.DB.Delete(&post).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "Post deleted successfully"})
}

// AddForumComment appends a comment to an active post.
func AddForumComment(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	postID := ctx.Params().GetUintDefault("id", 0)

	var input ForumCommentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if strings.TrimSpace(input.Content) == "" {
		utils.CreateBadRequest(ctx, "Comment cannot be empty")
		return
	}

	var post models.ForumPost
	if err := storage.DB.Where("id = ? AND is_active = ?", postID, true).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.StatusCode(iris.StatusNotFound)
			ctx.JSON(iris.Map{"message": "Post not found"})
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	comment := models.ForumComment{
		PostID:  post.ID,
		UserID:  user.ID,
		Comment: strings.TrimSpace(input.Content),
	}
	if err := storage.DB.Create(&comment).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	storage.DB.Preload("User").First(&comment, comment.ID)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Comment added successfully", "comment": &comment})
}
