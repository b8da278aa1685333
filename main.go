package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/routes"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/services"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	go services.StartNotificationWorker()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	auth := accessTokenVerifierMiddleware
	loadUser := utils.LoadUserMiddleware
	landlordOnly := utils.RoleMiddleware("landlord")
	tenantOnly := utils.RoleMiddleware("tenant")

	authentication := app.Party("/api/authentication")
	{
		authentication.Post("/register", routes.Register)
		authentication.Post("/verify-otp", routes.VerifyOTP)
		authentication.Post("/resend-otp", routes.ResendOTP)
		authentication.Post("/login", routes.Login)
		authentication.Post("/logout", routes.Logout)
	}

	property := app.Party("/api/property")
	{
		property.Get("/", routes.GetProperties)
		property.Get("/history", auth, loadUser, tenantOnly, routes.GetPropertyHistory)
		property.Get("/{id:uint}", auth, loadUser, routes.GetPropertyByID)
		property.Post("/", auth, loadUser, landlordOnly, routes.CreateProperty)
		property.Put("/{id:uint}", auth, loadUser, landlordOnly, routes.UpdateProperty)
		property.Delete("/{id:uint}", auth, loadUser, landlordOnly, routes.DeleteProperty)
	}

	booking := app.Party("/api/booking", auth, loadUser)
	{
		booking.Post("/create", tenantOnly, routes.CreateBookingRequest)
		booking.Get("/my-bookings", tenantOnly, routes.GetMyBookings)
		booking.Get("/my-property", tenantOnly, routes.GetMyCurrentProperty)
		booking.Put("/{id:uint}/cancel", tenantOnly, routes.CancelBooking)
		booking.Post("/leave-property", tenantOnly, routes.LeaveProperty)
		booking.Get("/landlord", landlordOnly, routes.GetLandlordBookings)
		booking.Get("/property/{propertyId:uint}", landlordOnly, routes.GetPropertyBookings)
		booking.Put("/{id:uint}/accept", landlordOnly, routes.AcceptBooking)
		booking.Put("/{id:uint}/reject", landlordOnly, routes.RejectBooking)
	}

	tenant := app.Party("/api/tenant", auth, loadUser)
	{
		tenant.Get("/profile", tenantOnly, routes.GetTenantProfile)
		tenant.Put("/profile", tenantOnly, routes.UpdateTenantProfile)
		tenant.Get("/bookings", tenantOnly, routes.GetMyBookings)
		tenant.Get("/wishlist", tenantOnly, routes.GetWishlist)
		tenant.Post("/wishlist", tenantOnly, routes.AddToWishlist)
		tenant.Delete("/wishlist/{propertyId:uint}", tenantOnly, routes.RemoveFromWishlist)
		tenant.Get("/viewed-properties", tenantOnly, routes.GetViewedProperties)
		tenant.Get("/users/{userId:uint}", routes.GetPublicUserProfile)
	}

	landlord := app.Party("/api/landlord")
	{
		landlord.Get("/profile", auth, loadUser, landlordOnly, routes.GetLandlordProfile)
		landlord.Put("/profile", auth, loadUser, landlordOnly, routes.UpdateLandlordProfile)
		landlord.Get("/properties", auth, loadUser, landlordOnly, routes.GetLandlordProperties)
		landlord.Get("/properties/{userId:uint}", routes.GetPropertiesByLandlord)
		landlord.Get("/stats", auth, loadUser, landlordOnly, routes.GetLandlordStats)
		landlord.Get("/view-history", auth, loadUser, landlordOnly, routes.GetLandlordViewHistory)
	}

	review := app.Party("/api/review")
	{
		review.Get("/property/{propertyId:uint}", routes.GetPropertyReviews)
		review.Post("/property", auth, loadUser, routes.CreatePropertyReview)
		review.Post("/user", auth, loadUser, routes.RateUser)
		review.Get("/user/{userId:uint}", routes.GetUserRatings)
		review.Get("/user/{userId:uint}/my-rating", auth, loadUser, routes.GetMyRatingOfUser)
	}

	forum := app.Party("/api/forum", auth, loadUser)
	{
		forum.Get("/", routes.GetForumPosts)
		forum.Post("/", routes.CreateForumPost)
		forum.Delete("/{id:uint}", routes.DeleteForumPost)
		forum.Post("/{id:uint}/comment", routes.AddForumComment)
	}

	report := app.Party("/api/report", auth, loadUser)
	{
		report.Post("/", routes.CreateReport)
	}

	notification := app.Party("/api/notification", auth, loadUser)
	{
		notification.Get("/", routes.GetNotifications)
		notification.Put("/{id:uint}/read", routes.MarkNotificationRead)
		notification.Get("/unread-count", routes.GetUnreadCount)
	}

	admin := app.Party("/api/admin", auth, loadUser, utils.AdminOnlyMiddleware)
	{
		admin.Get("/dashboard/stats", routes.GetDashboardStats)
		admin.Get("/users", routes.GetAllUsers)
		admin.Get("/users/{userId:uint}", routes.GetUserByID)
		admin.Put("/users/{userId:uint}/suspend", routes.SuspendUser)
		admin.Put("/users/{userId:uint}/unsuspend", routes.UnsuspendUser)
		admin.Delete("/users/{userId:uint}", routes.DeleteUser)
		admin.Get("/properties", routes.GetAllProperties)
		admin.Get("/properties/pending", routes.GetPendingProperties)
		admin.Put("/properties/{propertyId:uint}/approve", routes.ApproveProperty)
		admin.Put("/properties/{propertyId:uint}/reject", routes.RejectProperty)
		admin.Delete("/properties/{propertyId:uint}", routes.AdminDeleteProperty)
		admin.Get("/reports", routes.GetReports)
		admin.Put("/reports/{reportId:uint}", routes.ResolveReport)
		admin.Put("/profile", routes.UpdateAdminProfile)
	}

	upload := app.Party("/api/upload", auth, loadUser)
	{
		upload.Post("/image", routes.UploadImage)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}
