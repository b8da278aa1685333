package routes

import (
	"fmt"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type UploadImageInput struct {
	Image string `json:"image" validate:"required"`
}

// UploadImage pushes a base64 image to the image store and returns its URL.
func UploadImage(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input UploadImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.Image == "" {
		utils.CreateBadRequest(ctx, "Image is required")
		return
	}

	publicID := fmt.Sprintf("uploads/%d/%d", user.ID, time.Now().UnixNano())
	url := storage.UploadBase64Image(input.Image, publicID)
	if url == "" {
		utils.CreateBadRequest(ctx, "Image upload failed")
		return
	}

	ctx.JSON(iris.Map{"url": url})
}
