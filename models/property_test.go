package models

import (
	"encoding/json"
	"testing"

	"gorm.io/gorm"
)

func TestCurrentTenantsProjection(t *testing.T) {
	p := Property{
		Tenants: []User{
			{Model: gorm.Model{ID: 7}, Name: "Asha", Gender: "female", Occupation: "nurse"},
			{Model: gorm.Model{ID: 9}, Name: "Rafi"},
		},
	}

	infos := p.CurrentTenants()
	if len(infos) != 2 {
		t.Fatalf("expected 2 occupants, got %d", len(infos))
	}
	if infos[0].ID != 7 || infos[0].Gender != "female" || infos[0].Occupation != "nurse" {
		t.Fatalf("unexpected first occupant: %+v", infos[0])
	}
	if infos[1].Gender != "Not specified" || infos[1].Occupation != "Not specified" {
		t.Fatalf("missing fields must default to Not specified: %+v", infos[1])
	}
}

func TestPropertyMarshalJSON(t *testing.T) {
	p := Property{
		Model:     gorm.Model{ID: 3},
		Title:     "Sunny room",
		Amenities: []byte(`["wifi","parking"]`),
		Tenants: []User{
			{Model: gorm.Model{ID: 7}, Name: "Asha"},
		},
	}

	raw, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	amenities, ok := out["amenities"].([]interface{})
	if !ok || len(amenities) != 2 || amenities[0] != "wifi" {
		t.Fatalf("amenities not rendered as array: %v", out["amenities"])
	}

	tenants, ok := out["tenants"].([]interface{})
	if !ok || len(tenants) != 1 {
		t.Fatalf("tenants not rendered as id list: %v", out["tenants"])
	}

	current, ok := out["currentTenants"].([]interface{})
	if !ok || len(current) != 1 {
		t.Fatalf("currentTenants projection missing: %v", out["currentTenants"])
	}
	first := current[0].(map[string]interface{})
	if first["name"] != "Asha" || first["gender"] != "Not specified" {
		t.Fatalf("unexpected projected occupant: %v", first)
	}

	if _, present := out["landlord"]; present {
		t.Fatal("empty landlord must be omitted")
	}
}

func TestPropertyMarshalJSONEmptyColumns(t *testing.T) {
	p := Property{}
	raw, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"amenities", "images", "tenants", "currentTenants"} {
		arr, ok := out[key].([]interface{})
		if !ok || len(arr) != 0 {
			t.Fatalf("%s must render as an empty array, got %v", key, out[key])
		}
	}
}

func TestUserMarshalJSONStripsPassword(t *testing.T) {
	u := User{Name: "Asha", Email: "asha@example.com", Password: "hashed"}

	raw, err := json.Marshal(&u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if pw, present := out["password"]; present && pw != "" {
		t.Fatalf("password leaked into JSON: %v", pw)
	}
	if wl, ok := out["wishlist"].([]interface{}); !ok || len(wl) != 0 {
		t.Fatalf("wishlist must render as an empty array, got %v", out["wishlist"])
	}
}
