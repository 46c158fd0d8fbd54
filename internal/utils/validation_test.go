package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		errMsg string
	}{
		{name: "NaPTAN code", id: "940GZZCRLEB"},
		{name: "CRS code", id: "ABC"},
		{name: "empty ID", id: "", errMsg: "id cannot be empty"},
		{name: "ID too long", id: strings.Repeat("a", 101), errMsg: "id too long (max 100 characters)"},
		{name: "path traversal", id: "../StopPoint", errMsg: "id contains invalid characters"},
		{name: "markup", id: "<crs>ABC</crs>", errMsg: "id contains invalid characters"},
		{name: "whitespace", id: "AB C", errMsg: "id contains invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestParseIndex(t *testing.T) {
	index, err := ParseIndex("2")
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	for _, raw := range []string{"", "two", "-1", "1.5"} {
		_, err := ParseIndex(raw)
		assert.Error(t, err, raw)
	}
}
