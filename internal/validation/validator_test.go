package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms/internal/apperrors"
)

type sampleInput struct {
	Title  string  `json:"title" validate:"required,max=5"`
	Status string  `json:"status" validate:"required,oneof=draft published"`
	Email  string  `json:"email,omitempty" validate:"omitempty,email"`
	IDs    []int64 `json:"tagIds" validate:"dive,gt=0"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()

	err := v.Validate(sampleInput{Title: "Hi", Status: "draft", IDs: []int64{1, 2}})

	assert.NoError(t, err)
}

func TestValidator_FieldDetails(t *testing.T) {
	v := New()

	err := v.Validate(sampleInput{Title: "too long title", Status: "archived", Email: "nope", IDs: []int64{3, 0}})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must not exceed 5 characters", details["title"])
	assert.Equal(t, "must be one of: draft published", details["status"])
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "must be greater than 0", details["tagIds[1]"])
}

func TestValidator_Required(t *testing.T) {
	v := New()

	err := v.Validate(sampleInput{})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	details := appErr.Details.(map[string]string)
	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "is required", details["status"])
}
