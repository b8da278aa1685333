package routes

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/services"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/utils"
)

type RegisterInput struct {
	Name        string `json:"name" validate:"required,max=256"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
	Role        string `json:"role" validate:"required,oneof=landlord tenant"`
	Phone       string `json:"phone" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	Occupation  string `json:"occupation"`
	DateOfBirth string `json:"dateOfBirth"`
	Bio         string `json:"bio"`
}

type VerifyOTPInput struct {
	Email    string        `json:"email" validate:"required,email"`
	OTP      string        `json:"otp" validate:"required,len=6"`
	UserData RegisterInput `json:"userData" validate:"required"`
}

type ResendOTPInput struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

func getAndHandleUserExists(user *models.User, email string) (bool, error) {
	result := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Register validates the signup payload and emails an OTP. The user row is
// only created once VerifyOTP succeeds.
func Register(ctx iris.Context) {
	var input RegisterInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.User
	exists, err := getAndHandleUserExists(&existing, input.Email)
	if err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}
	if exists {
		utils.CreateBadRequest(ctx, "Email already registered")
		return
	}

	email := strings.ToLower(input.Email)
	otp := generateOTP()

	if err := storage.SetOTP(email, otp); err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	// Synchronous on purpose: registration must surface delivery failure.
	if err := services.SendOTPEmail(email, otp); err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"message":     "OTP sent to your email. Please verify to complete registration.",
		"email":       email,
		"requiresOTP": true,
	})
}

// VerifyOTP checks the emailed code and creates the account.
func VerifyOTP(ctx iris.Context) {
	var input VerifyOTPInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(input.Email)

	stored := storage.GetOTP(email)
	if stored == "" || stored != input.OTP {
		utils.CreateBadRequest(ctx, "Invalid or expired OTP")
		return
	}

	var existing models.User
	exists, err := getAndHandleUserExists(&existing, email)
	if err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}
	if exists {
		utils.CreateBadRequest(ctx, "Email already registered")
		return
	}

	hashedPassword, err := hashAndSaltPassword(input.UserData.Password)
	if err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	newUser := models.User{
		Name:        input.UserData.Name,
		Email:       email,
		Password:    hashedPassword,
		Role:        input.UserData.Role,
		Phone:       input.UserData.Phone,
		Gender:      input.UserData.Gender,
		Occupation:  input.UserData.Occupation,
		DateOfBirth: input.UserData.DateOfBirth,
		Bio:         input.UserData.Bio,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	storage.DeleteOTP(email)

	token, err := utils.CreateToken(newUser.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	newUser.Password = ""
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"message": "Registration successful",
		"token":   token,
		"user":    &newUser,
	})
}

// ResendOTP regenerates and re-sends the code for a not-yet-registered email.
func ResendOTP(ctx iris.Context) {
	var input ResendOTPInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(input.Email)

	var existing models.User
	exists, err := getAndHandleUserExists(&existing, email)
	if err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}
	if exists {
		utils.CreateBadRequest(ctx, "Email already registered")
		return
	}

	otp := generateOTP()
	if err := storage.SetOTP(email, otp); err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	if err := services.SendOTPEmail(email, otp); err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"message": "New OTP sent to your email"})
}

func Login(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	exists, err := getAndHandleUserExists(&user, input.Email)
	if err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}
	if !exists {
		utils.CreateBadRequest(ctx, "Invalid email or password")
		return
	}

	if user.IsSuspended {
		now := time.Now()
		switch {
		case user.SuspendedUntil != nil && user.SuspendedUntil.After(now):
			utils.CreateForbidden(ctx, fmt.Sprintf("Account suspended until %s",
				user.SuspendedUntil.Format("2006-01-02")))
			return
		case user.SuspendedUntil != nil:
			// Suspension expired: lift it and let the login proceed.
			user.IsSuspended = false
			user.SuspendedUntil = nil
			if err := storage.DB.Model(&models.User{}).Where("id = ?", user.ID).
				Updates(map[string]interface{}{"is_suspended": false, "suspended_until": nil}).Error; err != nil {
				utils.CreateInternalServerError(ctx, err)
				return
			}
		default:
			utils.CreateForbidden(ctx, "Account is suspended")
			return
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.CreateBadRequest(ctx, "Invalid email or password")
		return
	}

	token, err := utils.CreateToken(user.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx, err)
		return
	}

	user.Password = ""
	ctx.JSON(iris.Map{
		"message": "Login successful",
		"token":   token,
		"user":    &user,
	})
}

// Logout exists for API symmetry; tokens are stateless so there is nothing
// to invalidate server-side.
func Logout(ctx iris.Context) {
	ctx.JSON(iris.Map{"message": "Logged out successfully"})
}

func findUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
