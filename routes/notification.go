package routes

import (
	"errors"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var notifications []models.Notification
	if err := storage.DB.Preload("Sender").
		Where("recipient_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"notifications": notifications})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(ctx iris.Context) {
	user := utils.CurrentUser(ctx)
	notificationID := ctx.Params().GetUintDefault("id", 0)

	var notification models.Notification
	if err := storage.DB.
		Where("id = ? AND recipient_id = ?", notificationID, user.ID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if err := storage.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "Notification marked as read"})
}

// GetUnreadCount returns the caller's unread notification count.
func GetUnreadCount(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var count int64
	if err := storage.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", user.ID, false).
		Count(&count).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"unreadCount": count})
}
