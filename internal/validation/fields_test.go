package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{
			name:    "non-empty value",
			field:   "caption",
			value:   "sunset at the pier",
			wantErr: false,
		},
		{
			name:    "empty value",
			field:   "caption",
			value:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			field:   "image_url",
			value:   "   \t",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireField(tt.field, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.field+" is required", err.Error())
				assert.True(t, IsValidationError(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRequireFields_ReturnsFirstMissing(t *testing.T) {
	err := RequireFields(
		[2]string{"caption", "ok"},
		[2]string{"image_url", ""},
		[2]string{"username", ""},
	)
	require.Error(t, err)
	assert.Equal(t, "image_url is required", err.Error())
}

func TestIsValidationError_WrappedError(t *testing.T) {
	err := fmt.Errorf("submit rejected: %w", &Error{Field: "caption"})
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(fmt.Errorf("network down")))
}
