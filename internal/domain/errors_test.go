package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrValidation, ErrUnavailable, ErrInvalidMaterial}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found by slug", NewNotFoundError("post", "lonas-gran-formato"), `post "lonas-gran-formato" not found`},
		{"not found without key", NewNotFoundError("submission", ""), "submission not found"},
		{"conflict", NewConflictError("post", "slug already exists"), "post conflict: slug already exists"},
		{
			"conflict with key",
			NewConflictErrorWithDetails("post", "slug already exists", "vinil-mate"),
			"post conflict: slug already exists (vinil-mate)",
		},
		{"conflict with empty key", NewConflictErrorWithDetails("post", "id already exists", ""), "post conflict: id already exists"},
		{"validation with field", NewValidationError("title", "is required"), "validation failed for title: is required"},
		{"validation without field", NewValidationError("", "at least one field must be set"), "validation failed: at least one field must be set"},
		{"unavailable", NewUnavailableError("resend", "circuit open"), "resend unavailable: circuit open"},
		{"unavailable without reason", NewUnavailableError("dynamodb", ""), "dynamodb unavailable"},
		{"invalid material", NewInvalidMaterialError("papel"), `invalid material "papel": expected one of vinyl, canvas`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error

		notFound, conflict, validation, unavailable, material bool
	}{
		{name: "not found", err: NewNotFoundError("post", "1"), notFound: true},
		{name: "conflict", err: NewConflictError("post", "slug already exists"), conflict: true},
		{name: "validation", err: NewValidationError("slug", "is invalid"), validation: true},
		{name: "unavailable", err: NewUnavailableError("sqlite", "database is locked"), unavailable: true},
		{name: "invalid material is also validation", err: NewInvalidMaterialError("paper"), validation: true, material: true},
		{
			name:        "wrapped",
			err:         fmt.Errorf("sending notification: %w", NewUnavailableError("resend", "")),
			unavailable: true,
		},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.conflict, IsConflict(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.unavailable, IsUnavailable(tt.err))
			assert.Equal(t, tt.material, IsInvalidMaterial(tt.err))
		})
	}
}

func TestErrorAs(t *testing.T) {
	t.Run("not found keeps its key", func(t *testing.T) {
		var nf *NotFoundError
		require.ErrorAs(t, fmt.Errorf("loading post: %w", NewNotFoundError("post", "123")), &nf)
		assert.Equal(t, "post", nf.Entity)
		assert.Equal(t, "123", nf.Key)
	})

	t.Run("validation keeps the rejected value", func(t *testing.T) {
		var ve *ValidationError
		require.ErrorAs(t, NewValidationErrorWithValue("image_url", "must be an absolute URL", "foto.png"), &ve)
		assert.Equal(t, "image_url", ve.Field)
		assert.Equal(t, "foto.png", ve.Value)
		assert.NotContains(t, ve.Error(), "foto.png")
	})

	t.Run("conflict keeps its key", func(t *testing.T) {
		var ce *ConflictError
		require.ErrorAs(t, NewConflictErrorWithDetails("post", "slug already exists", "vinil"), &ce)
		assert.Equal(t, "vinil", ce.Key)
	})

	t.Run("invalid material", func(t *testing.T) {
		var me *InvalidMaterialError
		require.ErrorAs(t, fmt.Errorf("quote: %w", NewInvalidMaterialError("tela")), &me)
		assert.Equal(t, "tela", me.Material)
	})
}
