package types

// ExecuteRequest represents a tool execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// DiscoverRequest represents a service discovery query
type DiscoverRequest struct {
	Message string `json:"message" binding:"required"`
}
