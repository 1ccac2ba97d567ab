package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	err := NewValidator().Validate(&municipalityRequest{Slug: "bongao"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if ve.Field != "name" || !strings.Contains(ve.Message, "name is required") {
		t.Fatalf("unexpected validation error %+v", ve)
	}
}

func TestValidator_Sluggable(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&municipalityRequest{Name: "Bongao", Slug: "Bongão Town"}); err != nil {
		t.Fatalf("expected slug to be accepted, got %v", err)
	}

	err := v.Validate(&municipalityRequest{Name: "Bongao", Slug: "!!!"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "slug" {
		t.Fatalf("expected slug validation error, got %v", err)
	}
	if !strings.Contains(ve.Message, "letters or digits") {
		t.Fatalf("unexpected message %q", ve.Message)
	}
}

func TestValidator_Email(t *testing.T) {
	err := NewValidator().Validate(&directoryRequest{Name: "PHO", Email: "not-an-email", Phone: "0917"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}
