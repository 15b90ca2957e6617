package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateToolID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		required bool
		wantErr  bool
	}{
		{"full id", "filesystem.read_file", true, false},
		{"bare name", "read_file", true, false},
		{"empty required", "", true, true},
		{"empty optional", "", false, false},
		{"slash", "filesystem/read_file", true, true},
		{"null byte", "read\x00file", true, true},
		{"too long", strings.Repeat("a", MaxIDLength+1), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToolID(tt.id, "tool_id", tt.required)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("filesystem", true))
	assert.NoError(t, ValidateCategory("", false))
	assert.Error(t, ValidateCategory("", true))
	assert.Error(t, ValidateCategory("File System", false))
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage("read a file"))
	assert.Error(t, ValidateMessage(""))
	assert.Error(t, ValidateMessage("a          "))
}

func TestValidateJSONDepth(t *testing.T) {
	shallow := map[string]interface{}{"path": "a.txt"}
	assert.NoError(t, ValidateJSONDepth(shallow, MaxArgumentDepth))

	var deep interface{} = "leaf"
	for i := 0; i < MaxArgumentDepth+2; i++ {
		deep = []interface{}{deep}
	}
	err := ValidateJSONDepth(deep, MaxArgumentDepth)
	assert.ErrorContains(t, err, "exceeds maximum")
}
