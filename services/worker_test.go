package services

import (
	"strings"
	"testing"
	"time"
)

func TestNotificationContent(t *testing.T) {
	title, message, wantsEmail := notificationContent(NotificationEvent{
		Type:          EventBookingRequested,
		BookingType:   "visit",
		ActorName:     "Asha",
		PropertyTitle: "Sunny room",
	})
	if title != "New request" {
		t.Fatalf("unexpected title %q", title)
	}
	if !strings.Contains(message, "visit request") || !strings.Contains(message, "Asha") {
		t.Fatalf("unexpected message %q", message)
	}
	if !wantsEmail {
		t.Fatal("booking requests must email the landlord")
	}

	_, _, wantsEmail = notificationContent(NotificationEvent{Type: EventBookingAccepted})
	if wantsEmail {
		t.Fatal("acceptance is in-app only")
	}

	_, message, wantsEmail = notificationContent(NotificationEvent{
		Type:          EventWishlistPriceChanged,
		PropertyTitle: "Sunny room",
		OldRent:       500,
		NewRent:       650,
	})
	if !wantsEmail || !strings.Contains(message, "500.00") || !strings.Contains(message, "650.00") {
		t.Fatalf("unexpected price change rendering: %q", message)
	}
}

func TestNotificationContentUnknownType(t *testing.T) {
	title, message, wantsEmail := notificationContent(NotificationEvent{Type: "bogus"})
	if title != "" || message != "" || wantsEmail {
		t.Fatalf("unknown types must render nothing, got %q/%q/%v", title, message, wantsEmail)
	}
}

func TestEmailBackoff(t *testing.T) {
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for i, d := range want {
		if got := emailBackoff(i + 1); got != d {
			t.Fatalf("attempt %d: expected %v, got %v", i+1, d, got)
		}
	}
}
