package routes

import (
	"testing"

	"github.com/masrafiio/Smart-Flat-Finder-Platform-Roomify/models"
)

func TestApplyProfileUpdateChangedColumnsOnly(t *testing.T) {
	// The user comes from the auth middleware with its password hash cleared;
	// only the columns the caller actually set may reach the database.
	user := &models.User{Name: "Asha", Bio: "old"}
	name := "Asha Rahman"
	bio := "new bio"

	updates := applyProfileUpdate(user, &UpdateProfileInput{Name: &name, Bio: &bio})

	if _, ok := updates["password"]; ok {
		t.Fatal("profile update must never write the password column")
	}
	if len(updates) != 2 {
		t.Fatalf("expected exactly the 2 changed columns, got %v", updates)
	}
	if updates["name"] != "Asha Rahman" || updates["bio"] != "new bio" {
		t.Fatalf("unexpected column values: %v", updates)
	}
	if user.Name != "Asha Rahman" || user.Bio != "new bio" {
		t.Fatalf("in-memory user not updated for the response: %+v", user)
	}
}

func TestApplyProfileUpdateEmptyInput(t *testing.T) {
	user := &models.User{Name: "Asha"}

	if updates := applyProfileUpdate(user, &UpdateProfileInput{}); len(updates) != 0 {
		t.Fatalf("empty input must write nothing, got %v", updates)
	}

	empty := ""
	updates := applyProfileUpdate(user, &UpdateProfileInput{Name: &empty})
	if _, ok := updates["name"]; ok {
		t.Fatal("blank name must be ignored")
	}
	if user.Name != "Asha" {
		t.Fatalf("blank name must not clear the stored one, got %q", user.Name)
	}
}
