package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_ErrorJoinsFields(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "email", Message: "must be a valid email"},
	}}

	assert.Equal(t, "validation error: name: is required; email: must be a valid email", err.Error())
}

func TestValidationError_ErrorsAs(t *testing.T) {
	var wrapped error = NewValidationError("type", "must be one of Exam Presentation Assignment Project Other")

	var ve *ValidationError
	require.True(t, errors.As(wrapped, &ve))
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "type", ve.Fields[0].Field)
}

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrDuplicate, ErrorInternal, ErrorUnauthorized,
		ErrInvalidCredentials, ErrInvalidReference, ErrFeatureDisabled,
		ErrInvalidToken, ErrTokenExpired, ErrTokenRevoked,
	}
	for i := range all {
		for j := range all {
			if i != j {
				assert.False(t, errors.Is(all[i], all[j]), "%v must not match %v", all[i], all[j])
			}
		}
	}
}

func TestEventTypes_ContainsAllConstants(t *testing.T) {
	assert.Equal(t, []string{"Exam", "Presentation", "Assignment", "Project", "Other"}, EventTypes)
}
