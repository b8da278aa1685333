package utils

import (
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
)

// LoadUserMiddleware runs after the JWT verifier. It loads the acting user
// for the token's id, rejects suspended accounts, and stores the loaded user
// (password cleared) in the request-scoped values for downstream handlers.
func LoadUserMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "Not authorized"})
		return
	}

	if user.IsSuspended {
		if user.SuspendedUntil != nil && !user.SuspendedUntil.After(time.Now()) {
			// Suspension window has passed; lift it on the way in.
			user.IsSuspended = false
			user.SuspendedUntil = nil
			storage.DB.Model(&models.User{}).Where("id = ?", user.ID).
				Updates(map[string]interface{}{"is_suspended": false, "suspended_until": nil})
		} else {
			ctx.StatusCode(iris.StatusForbidden)
			ctx.JSON(iris.Map{"message": "Account is suspended"})
			return
		}
	}

	user.Password = ""
	ctx.Values().Set("user", &user)
	ctx.Values().Set("userID", user.ID)
	ctx.Next()
}

// CurrentUser returns the user loaded by LoadUserMiddleware.
func CurrentUser(ctx iris.Context) *models.User {
	if v := ctx.Values().Get("user"); v != nil {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// RoleMiddleware rejects requests whose acting user holds none of the
// given roles.
func RoleMiddleware(roles ...string) iris.Handler {
	return func(ctx iris.Context) {
		user := CurrentUser(ctx)
		if user == nil || !slices.Contains(roles, user.Role) {
			ctx.StatusCode(iris.StatusForbidden)
			ctx.JSON(iris.Map{"message": "Access denied"})
			return
		}
		ctx.Next()
	}
}

// AdminOnlyMiddleware restricts a route party to admins.
func AdminOnlyMiddleware(ctx iris.Context) {
	user := CurrentUser(ctx)
	if user == nil || user.Role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Admin access required"})
		return
	}
	ctx.Next()
}
