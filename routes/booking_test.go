package routes

import (
	"errors"
	"testing"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
)

func pendingVisit() *models.Booking {
	return &models.Booking{
		BookingType: models.BookingTypeVisit,
		Status:      models.BookingStatusPending,
	}
}

func pendingRoomBooking() *models.Booking {
	return &models.Booking{
		BookingType: models.BookingTypeRoom,
		Status:      models.BookingStatusPending,
	}
}

func propertyWithRooms(available, total int) *models.Property {
	return &models.Property{
		TotalRooms:     total,
		AvailableRooms: available,
		IsAvailable:    available > 0,
	}
}

func TestAcceptVisit(t *testing.T) {
	b := pendingVisit()
	if err := acceptVisit(b, "2pm"); err != nil {
		t.Fatalf("accept pending visit: %v", err)
	}
	if b.Status != models.BookingStatusApproved {
		t.Fatalf("expected approved, got %s", b.Status)
	}
	if b.ApprovedVisitTime != "2pm" {
		t.Fatalf("expected visit time stored, got %q", b.ApprovedVisitTime)
	}
}

func TestAcceptVisitRequiresTime(t *testing.T) {
	b := pendingVisit()
	if err := acceptVisit(b, "  "); !errors.Is(err, errMissingVisitTime) {
		t.Fatalf("expected errMissingVisitTime, got %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Fatalf("failed accept must not change status, got %s", b.Status)
	}
}

func TestAcceptVisitOnlyWhenPending(t *testing.T) {
	for _, status := range []string{
		models.BookingStatusApproved,
		models.BookingStatusRejected,
		models.BookingStatusCancelled,
		models.BookingStatusCompleted,
	} {
		b := pendingVisit()
		b.Status = status
		if err := acceptVisit(b, "2pm"); !errors.Is(err, errNotPending) {
			t.Fatalf("status %s: expected errNotPending, got %v", status, err)
		}
	}
}

func TestAcceptRoomBookingDecrementsCounter(t *testing.T) {
	b := pendingRoomBooking()
	p := propertyWithRooms(3, 3)

	if err := acceptRoomBooking(b, p); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if p.AvailableRooms != 2 {
		t.Fatalf("expected 2 rooms left, got %d", p.AvailableRooms)
	}
	if !p.IsAvailable {
		t.Fatal("property with rooms left must stay available")
	}
	if b.Status != models.BookingStatusActive {
		t.Fatalf("expected active, got %s", b.Status)
	}
	if b.PropertyStatus != models.PropertyStatusActive {
		t.Fatalf("expected active propertyStatus, got %s", b.PropertyStatus)
	}
}

func TestAcceptLastRoomFlipsAvailability(t *testing.T) {
	b := pendingRoomBooking()
	p := propertyWithRooms(1, 2)

	if err := acceptRoomBooking(b, p); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if p.AvailableRooms != 0 {
		t.Fatalf("expected 0 rooms, got %d", p.AvailableRooms)
	}
	if p.IsAvailable {
		t.Fatal("property with no rooms must be unavailable")
	}
}

func TestAcceptRoomBookingFullProperty(t *testing.T) {
	b := pendingRoomBooking()
	p := propertyWithRooms(0, 2)

	if err := acceptRoomBooking(b, p); !errors.Is(err, errNoRooms) {
		t.Fatalf("expected errNoRooms, got %v", err)
	}
	if p.AvailableRooms != 0 {
		t.Fatalf("counter must never go negative, got %d", p.AvailableRooms)
	}
	if b.Status != models.BookingStatusPending {
		t.Fatalf("failed accept must not change status, got %s", b.Status)
	}
}

func TestAcceptRoomBookingTwice(t *testing.T) {
	b := pendingRoomBooking()
	p := propertyWithRooms(2, 2)

	if err := acceptRoomBooking(b, p); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if err := acceptRoomBooking(b, p); !errors.Is(err, errNotPending) {
		t.Fatalf("second accept: expected errNotPending, got %v", err)
	}
	if p.AvailableRooms != 1 {
		t.Fatalf("second accept must not touch the counter, got %d", p.AvailableRooms)
	}
}

func TestStaleAcceptSeesCommittedStatus(t *testing.T) {
	// Two accepts race holding their own pre-transaction copies of one
	// pending booking. The row lock serializes them and each transaction
	// re-reads the booking before the guard, so the loser must run against
	// the winner's committed state and one tenancy consumes one room.
	p := propertyWithRooms(2, 2)
	committed := pendingRoomBooking()

	if err := acceptRoomBooking(committed, p); err != nil {
		t.Fatalf("first accept: %v", err)
	}

	// The locked re-read replaces the second caller's stale pending copy.
	staleCopy := *committed
	if err := acceptRoomBooking(&staleCopy, p); !errors.Is(err, errNotPending) {
		t.Fatalf("expected errNotPending after re-read, got %v", err)
	}
	if p.AvailableRooms != 1 {
		t.Fatalf("one tenancy must consume exactly one room, got %d", p.AvailableRooms)
	}
}

func TestRejectOnlyWhenPending(t *testing.T) {
	b := pendingRoomBooking()
	if err := rejectPending(b, "too many pets"); err != nil {
		t.Fatalf("reject pending: %v", err)
	}
	if b.Status != models.BookingStatusRejected || b.RejectionReason != "too many pets" {
		t.Fatalf("unexpected state: %s / %q", b.Status, b.RejectionReason)
	}

	if err := rejectPending(b, "again"); !errors.Is(err, errNotPending) {
		t.Fatalf("expected errNotPending on second reject, got %v", err)
	}
}

func TestCancelOnlyWhenPending(t *testing.T) {
	b := pendingRoomBooking()
	if err := cancelPending(b); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if b.Status != models.BookingStatusCancelled {
		t.Fatalf("expected cancelled, got %s", b.Status)
	}

	active := pendingRoomBooking()
	active.Status = models.BookingStatusActive
	if err := cancelPending(active); !errors.Is(err, errNotPending) {
		t.Fatalf("expected errNotPending for active booking, got %v", err)
	}
}

func TestLeavePropertyRestoresRoom(t *testing.T) {
	b := pendingRoomBooking()
	p := propertyWithRooms(1, 1)

	if err := acceptRoomBooking(b, p); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := leaveProperty(b, p); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if p.AvailableRooms != 1 {
		t.Fatalf("expected room restored, got %d", p.AvailableRooms)
	}
	if !p.IsAvailable {
		t.Fatal("property must be available again after the tenant leaves")
	}
	if b.Status != models.BookingStatusCompleted {
		t.Fatalf("expected completed, got %s", b.Status)
	}
	if b.PropertyStatus != models.PropertyStatusLeft {
		t.Fatalf("expected left propertyStatus, got %s", b.PropertyStatus)
	}
}

func TestLeavePropertyClampedToTotal(t *testing.T) {
	b := pendingRoomBooking()
	b.Status = models.BookingStatusActive
	b.PropertyStatus = models.PropertyStatusActive
	p := propertyWithRooms(2, 2)

	if err := leaveProperty(b, p); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if p.AvailableRooms != 2 {
		t.Fatalf("counter must never exceed totalRooms, got %d", p.AvailableRooms)
	}
}

func TestLeavePropertyTwice(t *testing.T) {
	b := pendingRoomBooking()
	p := propertyWithRooms(1, 1)

	if err := acceptRoomBooking(b, p); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := leaveProperty(b, p); err != nil {
		t.Fatalf("first leave: %v", err)
	}
	if err := leaveProperty(b, p); !errors.Is(err, errNotActive) {
		t.Fatalf("second leave: expected errNotActive, got %v", err)
	}
	if p.AvailableRooms != 1 {
		t.Fatalf("second leave must not touch the counter, got %d", p.AvailableRooms)
	}
}

func TestClampRooms(t *testing.T) {
	if got := clampRooms(-1, 3); got != 0 {
		t.Fatalf("clamp below zero: got %d", got)
	}
	if got := clampRooms(5, 3); got != 3 {
		t.Fatalf("clamp above total: got %d", got)
	}
	if got := clampRooms(2, 3); got != 2 {
		t.Fatalf("in-range value changed: got %d", got)
	}
}
