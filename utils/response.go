package utils

import (
	"log"

	"github.com/kataras/iris/v12"
)

func CreateNotFound(ctx iris.Context) {
	ctx.StatusCode(iris.StatusNotFound)
	ctx.JSON(iris.Map{"message": "Not found"})
}

func CreateBadRequest(ctx iris.Context, message string) {
	ctx.StatusCode(iris.StatusBadRequest)
	ctx.JSON(iris.Map{"message": message})
}

func CreateForbidden(ctx iris.Context, message string) {
	ctx.StatusCode(iris.StatusForbidden)
	ctx.JSON(iris.Map{"message": message})
}

// CreateInternalServerError logs the underlying error server-side and
// returns a generic message; raw errors never reach the client.
func CreateInternalServerError(ctx iris.Context, err error) {
	if err != nil {
		log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	}
	ctx.StatusCode(iris.StatusInternalServerError)
	ctx.JSON(iris.Map{"message": "Server error"})
}
