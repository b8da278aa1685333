package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type CreateReportInput struct {
	ReportedItem uint   `json:"reportedItem" validate:"required"`
	ItemType     string `json:"itemType" validate:"required,oneof=user property forumPost"`
	Reason       string `json:"reason" validate:"omitempty,oneof=spam fraud inappropriate_content harassment fake_listing other"`
	Description  string `json:"description"`
}

// CreateReport files a pending report for admin review.
func CreateReport(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input CreateReportInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reason := input.Reason
	if reason == "" {
		reason = "other"
	}

	report := models.Report{
		ReporterID:   user.ID,
		ReportedItem: input.ReportedItem,
		ItemType:     input.ItemType,
		Reason:       reason,
		Description:  input.Description,
		Status:       "pending",
	}
	if err := storage.DB.Create(&report).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Report submitted successfully", "report": &report})
}
