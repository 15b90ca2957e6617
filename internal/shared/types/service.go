package types

// Category represents service categories
type Category string

const (
	CategoryFilesystem Category = "filesystem"
)

// Service represents a service definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a remotely invokable operation.
// ID is "<service>.<name>"; Name is what MCP clients call.
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
	ReadOnly    bool        `json:"read_only"`
	Destructive bool        `json:"destructive"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
}

// Context provides execution context for a tool call
type Context struct {
	SessionID *string `json:"session_id,omitempty"`
	RequestID *string `json:"request_id,omitempty"`
}

// Result represents a tool execution result.
// Failures are in-band: Success is false and Error carries the message.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
	Kind    string                 `json:"kind,omitempty"`
}

// Text returns the human-readable payload of the result.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	if !r.Success {
		if r.Error != nil {
			return *r.Error
		}
		return "unknown error"
	}
	if text, ok := r.Data["text"].(string); ok {
		return text
	}
	return ""
}
