package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestLatitudeLongitudeValidation(t *testing.T) {
	type P struct {
		Lat float64 `json:"latitude" validate:"latitude"`
		Lon float64 `json:"longitude" validate:"longitude"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Lat: 35.6895, Lon: 139.6917}); err != nil {
		t.Fatalf("expected valid coordinates, got %v", err)
	}
	if err := cv.Validate(P{Lat: -90, Lon: 180}); err != nil {
		t.Fatalf("expected boundary coordinates valid, got %v", err)
	}

	err := cv.Validate(P{Lat: 91, Lon: 181})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "latitude", "valid latitude") {
		t.Fatalf("missing latitude message: %+v", fe)
	}
	if !containsFieldMsg(fe, "longitude", "valid longitude") {
		t.Fatalf("missing longitude message: %+v", fe)
	}
}

func TestBase64Validation(t *testing.T) {
	type P struct {
		Images []string `json:"images" validate:"dive,base64"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Images: []string{"aGVsbG8=", "d29ybGQ="}}); err != nil {
		t.Fatalf("expected valid base64 list, got %v", err)
	}
	err := cv.Validate(P{Images: []string{"aGVsbG8=", "%%%"}})
	if err == nil {
		t.Fatal("expected error for malformed entry")
	}
	fe := ToFieldErrors(err)
	found := false
	for _, e := range fe {
		if e.Message == "must be base64-encoded" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing base64 message: %+v", fe)
	}
}

func TestFieldNamesUseJSONTags(t *testing.T) {
	type P struct {
		DisasterType string `json:"disaster" validate:"required"`
	}
	cv := NewValidator()

	err := cv.Validate(P{})
	if err == nil {
		t.Fatal("expected required error")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "disaster", "is required") {
		t.Fatalf("details must use json tag names: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name string `json:"name" validate:"required"`
		Imp  *int   `json:"importance" validate:"required,gte=0,lte=10"`
	}
	cv := NewValidator()

	err := cv.Validate(P{})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "name", "is required") {
		t.Fatalf("missing required for name: %+v", fe)
	}
	if !containsFieldMsg(fe, "importance", "is required") {
		t.Fatalf("missing required for importance: %+v", fe)
	}

	over := 11
	err = cv.Validate(P{Name: "x", Imp: &over})
	if err == nil {
		t.Fatal("expected lte error")
	}
	fe = ToFieldErrors(err)
	if !containsFieldMsg(fe, "importance", "less than or equal to 10") {
		t.Fatalf("missing lte message: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}
