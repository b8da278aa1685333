package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

func smtpConfig() (host string, port int, email, password string) {
	host = os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port = 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	email = os.Getenv("SMTP_AUTH_MAIL")
	password = os.Getenv("SMTP_AUTH_PASSWORD")
	return
}

func sendMail(to, subject, htmlBody string) error {
	host, port, email, password := smtpConfig()
	if email == "" || password == "" {
		return fmt.Errorf("mailer not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", email)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	client := gomail.NewDialer(host, port, email, password)
	return client.DialAndSend(m)
}

// SendOTPEmail delivers the registration code. Called synchronously from the
// register handler: the caller needs to know delivery failed.
func SendOTPEmail(userEmail, otp string) error {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #10b981;">Email Verification</h2>
        <p>Thank you for registering with Roomify!</p>
        <p>Your One-Time Password (OTP) is:</p>
        <div style="background-color: #f3f4f6; padding: 20px; text-align: center; margin: 20px 0; border-radius: 8px;">
          <h1 style="color: #1f2937; font-size: 32px; letter-spacing: 8px; margin: 0;">%s</h1>
        </div>
        <p><strong>This OTP will expire in 10 minutes.</strong></p>
        <p>If you didn't request this, please ignore this email.</p>
      </div>`, otp)
	return sendMail(userEmail, "Verify Your Email - Roomify", body)
}

func sendBookingRequestEmail(landlordEmail, tenantName, tenantEmail, propertyTitle, bookingType string, requestedDate time.Time) error {
	requestType := "Room Booking"
	dateLabel := "Move-In Date"
	if bookingType == "visit" {
		requestType = "Property Visit"
		dateLabel = "Proposed Visit Date"
	}

	body := fmt.Sprintf(`
      <h2>New %s Request</h2>
      <p>You have received a new request for your property <strong>%s</strong>.</p>
      <h3>Tenant Details:</h3>
      <ul>
        <li><strong>Name:</strong> %s</li>
        <li><strong>Email:</strong> %s</li>
      </ul>
      <h3>Request Details:</h3>
      <ul>
        <li><strong>Request Type:</strong> %s</li>
        <li><strong>%s:</strong> %s</li>
      </ul>
      <p>Please log in to your dashboard to review and respond to this request.</p>`,
		requestType, propertyTitle, tenantName, tenantEmail, requestType, dateLabel,
		requestedDate.Format("Monday, January 2, 2006"))

	return sendMail(landlordEmail, fmt.Sprintf("New %s Request: %s", requestType, propertyTitle), body)
}

func sendPriceChangeEmail(userEmail, propertyTitle string, oldRent, newRent float64) error {
	body := fmt.Sprintf(`
      <h2>Price Change Notification</h2>
      <p>The rent for <strong>%s</strong> in your wishlist has been updated.</p>
      <p><strong>Previous Rent:</strong> $%.2f</p>
      <p><strong>New Rent:</strong> $%.2f</p>`,
		propertyTitle, oldRent, newRent)
	return sendMail(userEmail, "Price Update: "+propertyTitle, body)
}

func sendAvailabilityChangeEmail(userEmail, propertyTitle string, isAvailable bool) error {
	status := "Not Available"
	statusColor := "#ef4444"
	if isAvailable {
		status = "Available"
		statusColor = "#10b981"
	}
	body := fmt.Sprintf(`
      <h2>Availability Change Notification</h2>
      <p>The availability status for <strong>%s</strong> in your wishlist has changed.</p>
      <p><strong>New Status:</strong> <span style="color: %s;">%s</span></p>`,
		propertyTitle, statusColor, status)
	return sendMail(userEmail, "Availability Update: "+propertyTitle, body)
}
