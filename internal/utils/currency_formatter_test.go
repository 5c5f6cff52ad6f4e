package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinor(t *testing.T) {
	assert.Equal(t, "10.50", FormatMinor(1050))
	assert.Equal(t, "0.05", FormatMinor(5))
	assert.Equal(t, "-1.00", FormatMinor(-100))
	assert.Equal(t, "0.00", FormatMinor(0))
}

func TestParseMinor(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"150", 15000},
		{"150.5", 15050},
		{"150.50", 15050},
		{" 0.01 ", 1},
		{".5", 50},
	}
	for _, tt := range tests {
		got, err := ParseMinor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "abc", "1.234", "1.2.3", "99999999999999999999"} {
		_, err := ParseMinor(bad)
		assert.Error(t, err, bad)
	}
}
