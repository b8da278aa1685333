package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/storage"
)

const emailMaxAttempts = 3

// StartNotificationWorker consumes the notifications queue: each event becomes
// a Notification row and, for the types that email, an outbound message with
// retry. Runs a reconnect loop; call it from a goroutine at startup.
func StartNotificationWorker() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("notification-worker: dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeNotifications(conn); err != nil {
			log.Printf("notification-worker: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeNotifications(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.Printf("notification-worker: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(notificationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(notificationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleNotificationEvent(d.Body); err != nil {
			log.Printf("notification-worker: handle event failed: %v", err)
			_ = d.Nack(false, false) // drop rather than loop on a bad message
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleNotificationEvent(body []byte) error {
	var ev NotificationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	title, message, wantsEmail := notificationContent(ev)
	if title == "" {
		return fmt.Errorf("unknown event type %q", ev.Type)
	}

	notification := models.Notification{
		RecipientID: ev.RecipientID,
		Type:        ev.Type,
		Title:       title,
		Message:     message,
	}
	if ev.SenderID != 0 {
		senderID := ev.SenderID
		notification.SenderID = &senderID
	}
	if ev.PropertyID != 0 {
		propertyID := ev.PropertyID
		notification.RelatedPropertyID = &propertyID
	}
	if ev.BookingID != 0 {
		bookingID := ev.BookingID
		notification.RelatedBookingID = &bookingID
	}

	if err := storage.DB.Create(&notification).Error; err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	if !wantsEmail || ev.RecipientEmail == "" {
		return nil
	}

	if err := sendEventEmail(ev); err != nil {
		// Email is best effort: the notification row stands either way.
		log.Printf("notification-worker: email for %s to %s failed: %v", ev.Type, ev.RecipientEmail, err)
		return nil
	}

	storage.DB.Model(&notification).Update("is_email_sent", true)
	return nil
}

// notificationContent renders the stored title/message for an event and
// reports whether the event type also sends an email.
func notificationContent(ev NotificationEvent) (title, message string, wantsEmail bool) {
	switch ev.Type {
	case EventBookingRequested:
		kind := "booking"
		if ev.BookingType == models.BookingTypeVisit {
			kind = "visit"
		}
		return "New request",
			fmt.Sprintf("New %s request from %s for %q", kind, ev.ActorName, ev.PropertyTitle),
			true
	case EventBookingAccepted:
		kind := "Booking"
		if ev.BookingType == models.BookingTypeVisit {
			kind = "Visit"
		}
		return "Request accepted",
			fmt.Sprintf("%s request for %q was accepted", kind, ev.PropertyTitle),
			false
	case EventBookingRejected:
		kind := "Booking"
		if ev.BookingType == models.BookingTypeVisit {
			kind = "Visit"
		}
		return "Request rejected",
			fmt.Sprintf("%s request for %q was rejected", kind, ev.PropertyTitle),
			false
	case EventWishlistPriceChanged:
		return "Price update",
			fmt.Sprintf("Rent for %q changed from $%.2f to $%.2f", ev.PropertyTitle, ev.OldRent, ev.NewRent),
			true
	case EventWishlistAvailabilityChange:
		status := "no longer available"
		if ev.IsAvailable {
			status = "available again"
		}
		return "Availability update",
			fmt.Sprintf("%q is %s", ev.PropertyTitle, status),
			true
	}
	return "", "", false
}

func sendEventEmail(ev NotificationEvent) error {
	var send func() error
	switch ev.Type {
	case EventBookingRequested:
		requested := time.Now()
		if ev.RequestedDate != nil {
			requested = *ev.RequestedDate
		}
		send = func() error {
			return sendBookingRequestEmail(ev.RecipientEmail, ev.ActorName, ev.ActorEmail,
				ev.PropertyTitle, ev.BookingType, requested)
		}
	case EventWishlistPriceChanged:
		send = func() error {
			return sendPriceChangeEmail(ev.RecipientEmail, ev.PropertyTitle, ev.OldRent, ev.NewRent)
		}
	case EventWishlistAvailabilityChange:
		send = func() error {
			return sendAvailabilityChangeEmail(ev.RecipientEmail, ev.PropertyTitle, ev.IsAvailable)
		}
	default:
		return nil
	}

	var err error
	for attempt := 1; attempt <= emailMaxAttempts; attempt++ {
		if err = send(); err == nil {
			return nil
		}
		if attempt < emailMaxAttempts {
			time.Sleep(emailBackoff(attempt))
		}
	}
	return err
}

// emailBackoff doubles per attempt: 1s, 2s, 4s, ...
func emailBackoff(attempt int) time.Duration {
	d := time.Second
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}
