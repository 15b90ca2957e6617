package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/filesystem-mcp/internal/domain/service"
	"github.com/GriffinCanCode/filesystem-mcp/internal/domain/session"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/id"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/types"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/utils"
)

// ServerName is reported in serverInfo.
const ServerName = "filesystem"

// Handler serves the MCP streamable HTTP endpoint.
type Handler struct {
	registry     *service.Registry
	sessions     *session.Manager
	logger       *zap.Logger
	version      string
	instructions string
}

// NewHandler creates an MCP handler
func NewHandler(registry *service.Registry, sessions *session.Manager, logger *zap.Logger, version string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry: registry,
		sessions: sessions,
		logger:   logger,
		version:  version,
	}
}

// WithInstructions sets the text returned to clients on initialize.
func (h *Handler) WithInstructions(text string) *Handler {
	h.instructions = text
	return h
}

// Register mounts the endpoint at path.
func (h *Handler) Register(r gin.IRoutes, path string) {
	r.POST(path, h.Post)
	r.DELETE(path, h.Delete)
	r.GET(path, h.Get)
}

// Post handles one JSON-RPC message.
func (h *Handler) Post(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, http.StatusRequestEntityTooLarge, nullID, newError(CodeInvalidRequest, "request body too large"))
			return
		}
		h.fail(c, http.StatusBadRequest, nullID, newError(CodeParseError, "failed to read request body"))
		return
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		h.fail(c, http.StatusBadRequest, nullID, newError(CodeInvalidRequest, "batch requests are not supported"))
		return
	}

	var req Request
	if err := sonic.Unmarshal(body, &req); err != nil {
		h.fail(c, http.StatusBadRequest, nullID, newError(CodeParseError, "parse error"))
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		h.fail(c, http.StatusBadRequest, responseID(&req), newError(CodeInvalidRequest, "invalid request"))
		return
	}

	if req.Method == "initialize" {
		if req.IsNotification() {
			h.fail(c, http.StatusBadRequest, nullID, newError(CodeInvalidRequest, "initialize must be a request"))
			return
		}
		h.initialize(c, &req)
		return
	}

	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		h.fail(c, http.StatusBadRequest, responseID(&req), newError(CodeInvalidRequest, "missing "+SessionHeader+" header"))
		return
	}
	if _, err := h.sessions.Get(sessionID); err != nil {
		h.fail(c, http.StatusNotFound, responseID(&req), newError(CodeInvalidRequest, "session not found"))
		return
	}

	if req.IsNotification() {
		h.logger.Debug("notification", zap.String("method", req.Method), zap.String("session_id", sessionID))
		c.Status(http.StatusAccepted)
		return
	}

	result, rpcErr := h.dispatch(c.Request.Context(), sessionID, &req)
	h.respond(c, &Response{JSONRPC: "2.0", ID: req.ID, Result: result, Error: rpcErr})
}

// Delete terminates the caller's session.
func (h *Handler) Delete(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + SessionHeader + " header"})
		return
	}
	if err := h.sessions.Delete(sessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

// Get rejects the server-initiated stream, which this server does not offer.
func (h *Handler) Get(c *gin.Context) {
	c.Header("Allow", "POST, DELETE")
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "server-initiated streams are not supported"})
}

func (h *Handler) initialize(c *gin.Context, req *Request) {
	var params InitializeParams
	if len(req.Params) > 0 {
		if err := sonic.Unmarshal(req.Params, &params); err != nil {
			h.respond(c, &Response{JSONRPC: "2.0", ID: req.ID, Error: newError(CodeInvalidParams, "invalid initialize params")})
			return
		}
	}

	version := negotiateVersion(params.ProtocolVersion)
	client := map[string]string{"name": params.ClientInfo.Name, "version": params.ClientInfo.Version}
	s := h.sessions.Create(client, version)

	c.Header(SessionHeader, s.ID)
	h.respond(c, &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: InitializeResult{
			ProtocolVersion: version,
			Capabilities:    ServerCapabilities{Tools: ToolsCapability{ListChanged: false}},
			ServerInfo:      Implementation{Name: ServerName, Version: h.version},
			Instructions:    h.instructions,
		},
	})
}

func (h *Handler) dispatch(ctx context.Context, sessionID string, req *Request) (interface{}, *Error) {
	switch req.Method {
	case "ping":
		return map[string]interface{}{}, nil
	case "tools/list":
		return h.listTools(), nil
	case "tools/call":
		return h.callTool(ctx, sessionID, req.Params)
	default:
		return nil, newError(CodeMethodNotFound, "method not found: "+req.Method)
	}
}

func (h *Handler) listTools() ListToolsResult {
	defs := h.registry.Tools()
	tools := make([]Tool, 0, len(defs))
	for _, t := range defs {
		tools = append(tools, toolFromDefinition(t))
	}
	return ListToolsResult{Tools: tools}
}

func (h *Handler) callTool(ctx context.Context, sessionID string, raw []byte) (interface{}, *Error) {
	var params CallToolParams
	if len(raw) == 0 {
		return nil, newError(CodeInvalidParams, "missing params")
	}
	if err := sonic.Unmarshal(raw, &params); err != nil {
		return nil, newError(CodeInvalidParams, "invalid tools/call params")
	}
	if err := utils.ValidateToolID(params.Name, "name", true); err != nil {
		return nil, newError(CodeInvalidParams, err.Error())
	}
	if err := utils.ValidateJSONDepth(params.Arguments, utils.MaxArgumentDepth); err != nil {
		return nil, newError(CodeInvalidParams, err.Error())
	}

	requestID := id.NewRequestID().String()
	appCtx := &types.Context{SessionID: &sessionID, RequestID: &requestID}

	result, err := h.registry.Execute(ctx, params.Name, params.Arguments, appCtx)
	if err != nil {
		if errors.Is(err, service.ErrToolNotFound) {
			return nil, newError(CodeInvalidParams, "unknown tool: "+params.Name)
		}
		h.logger.Warn("tool execution failed",
			zap.String("tool", params.Name),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, newError(CodeInternalError, err.Error())
	}
	return callResult(result), nil
}

// respond writes a JSON-RPC response as SSE when the client accepts it,
// otherwise as a JSON body.
func (h *Handler) respond(c *gin.Context, resp *Response) {
	data, err := sonic.Marshal(resp)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Status(http.StatusOK)
		fmt.Fprintf(c.Writer, "event: message\ndata: %s\n\n", data)
		c.Writer.Flush()
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// fail writes a transport-level error as a plain JSON body.
func (h *Handler) fail(c *gin.Context, status int, rid []byte, rpcErr *Error) {
	h.logger.Warn("rejected mcp request",
		zap.Int("status", status),
		zap.Int("code", rpcErr.Code),
		zap.String("error", rpcErr.Message))

	data, err := sonic.Marshal(&Response{JSONRPC: "2.0", ID: rid, Error: rpcErr})
	if err != nil {
		c.Status(status)
		return
	}
	c.Data(status, "application/json", data)
}

func responseID(req *Request) []byte {
	if req.IsNotification() {
		return nullID
	}
	return req.ID
}
