package filesystem

import (
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/paths"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/types"
)

// Entry is one immediate child reported by ListDirectory.
type Entry struct {
	Name     string    `json:"name"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"` // 0 for directories
	Modified time.Time `json:"modified"`
}

// Listing is the result of ListDirectory.
type Listing struct {
	Path    string  `json:"path"`
	Pattern string  `json:"pattern,omitempty"`
	Entries []Entry `json:"entries"`
	// Total counts all children before pattern filtering.
	Total int `json:"total"`
}

// Info is the metadata record returned by GetFileInfo.
type Info struct {
	Path     string    `json:"path"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Created  time.Time `json:"created"`
	Mode     string    `json:"mode"`
	Perm     string    `json:"permissions"`
	Children int       `json:"children,omitempty"`
	MIMEType string    `json:"mime_type,omitempty"`
}

// Operations performs filesystem actions confined by a path guard.
// It holds no mutable state; every call is independent.
type Operations struct {
	guard  *paths.Guard
	logger *zap.Logger
}

// NewOperations creates the operation set. A nil guard yields an operation
// set whose every call fails as uninitialized.
func NewOperations(guard *paths.Guard, logger *zap.Logger) *Operations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Operations{guard: guard, logger: logger}
}

// Root returns the canonical allowed root.
func (o *Operations) Root() string {
	return o.guard.Root()
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string, kind string, data map[string]interface{}) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg, Kind: kind, Data: data}, nil
}
