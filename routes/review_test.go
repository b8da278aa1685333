package routes

import "testing"

func TestRecomputeRating(t *testing.T) {
	avg, count := recomputeRating([]int{3, 5, 4})
	if avg != 4.0 || count != 3 {
		t.Fatalf("expected 4.0/3, got %v/%d", avg, count)
	}

	avg, count = recomputeRating([]int{3, 5, 4, 2})
	if avg != 3.5 || count != 4 {
		t.Fatalf("expected 3.5/4, got %v/%d", avg, count)
	}
}

func TestRecomputeRatingEmpty(t *testing.T) {
	avg, count := recomputeRating(nil)
	if avg != 0 || count != 0 {
		t.Fatalf("expected 0/0 for no ratings, got %v/%d", avg, count)
	}
}

func TestRecomputeRatingRounding(t *testing.T) {
	avg, _ := recomputeRating([]int{5, 5, 4})
	if avg != 4.7 {
		t.Fatalf("expected one-decimal rounding to 4.7, got %v", avg)
	}
}

func TestReviewRoleAllowed(t *testing.T) {
	cases := []struct {
		reviewer, target string
		want             bool
	}{
		{"landlord", "tenant", true},
		{"tenant", "landlord", true},
		{"landlord", "landlord", false},
		{"tenant", "tenant", false},
		{"admin", "tenant", false},
		{"tenant", "admin", false},
	}
	for _, c := range cases {
		if got := reviewRoleAllowed(c.reviewer, c.target); got != c.want {
			t.Errorf("reviewRoleAllowed(%s, %s) = %v, want %v", c.reviewer, c.target, got, c.want)
		}
	}
}

func TestIDListHelpers(t *testing.T) {
	ids := idsFromJSON(jsonFromIDs([]uint{1, 2, 3}))
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Fatalf("round trip failed: %v", ids)
	}

	if got := idsFromJSON(nil); len(got) != 0 {
		t.Fatalf("nil column must read as empty, got %v", got)
	}
	if got := idsFromJSON([]byte("not json")); len(got) != 0 {
		t.Fatalf("garbage column must read as empty, got %v", got)
	}

	if !containsID(ids, 2) || containsID(ids, 9) {
		t.Fatal("containsID mismatch")
	}
}
