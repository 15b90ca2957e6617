package filesystem

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/fserr"
	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/types"
)

// ServiceID is the identifier under which the provider registers.
const ServiceID = "filesystem"

// KindInvalidArgument marks a call rejected before any path was resolved.
const KindInvalidArgument = "INVALID_ARGUMENT"

// Recorder receives per-tool call metrics.
type Recorder interface {
	RecordServiceCall(service, method, status string, duration time.Duration)
	RecordServiceError(service, method, errorType string)
}

type handler func(ctx context.Context, params map[string]interface{}) (*types.Result, error)

// Provider exposes the operation set as callable tools.
type Provider struct {
	ops      *Operations
	logger   *zap.Logger
	metrics  Recorder
	handlers map[string]handler
}

// NewProvider creates a provider backed by ops.
func NewProvider(ops *Operations, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{ops: ops, logger: logger}
	p.handlers = map[string]handler{
		ServiceID + ".read_file":        p.readFile,
		ServiceID + ".list_directory":   p.listDirectory,
		ServiceID + ".write_file":       p.writeFile,
		ServiceID + ".create_directory": p.createDirectory,
		ServiceID + ".delete_file":      p.deleteFile,
		ServiceID + ".delete_directory": p.deleteDirectory,
		ServiceID + ".move_path":        p.movePath,
		ServiceID + ".get_file_info":    p.getFileInfo,
	}
	return p
}

// WithMetrics attaches a metrics recorder.
func (p *Provider) WithMetrics(r Recorder) *Provider {
	p.metrics = r
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	pathParam := func(desc string) types.Parameter {
		return types.Parameter{Name: "path", Type: "string", Description: desc, Required: true}
	}

	return types.Service{
		ID:          ServiceID,
		Name:        "Filesystem Service",
		Description: "File and directory operations confined to the allowed root directory",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"list",
			"write",
			"mkdir",
			"delete",
			"move",
			"stat",
		},
		Tools: []types.Tool{
			{
				ID:          ServiceID + ".read_file",
				Name:        "read_file",
				Title:       "Read File",
				Description: "Read the complete contents of a UTF-8 text file",
				Parameters:  []types.Parameter{pathParam("Path of the file, relative to the allowed root")},
				Returns:     "string",
				ReadOnly:    true,
			},
			{
				ID:          ServiceID + ".list_directory",
				Name:        "list_directory",
				Title:       "List Directory",
				Description: "List the immediate children of a directory with type, size and modification time",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Directory path, relative to the allowed root", Default: "."},
					{Name: "pattern", Type: "string", Description: "Optional glob matched against child names, e.g. *.go"},
				},
				Returns:  "string",
				ReadOnly: true,
			},
			{
				ID:          ServiceID + ".write_file",
				Name:        "write_file",
				Title:       "Write File",
				Description: "Create or overwrite a file with the given text. The parent directory must exist",
				Parameters: []types.Parameter{
					pathParam("Path of the file, relative to the allowed root"),
					{Name: "content", Type: "string", Description: "Full text to write", Required: true},
				},
				Returns:     "string",
				Destructive: true,
			},
			{
				ID:          ServiceID + ".create_directory",
				Name:        "create_directory",
				Title:       "Create Directory",
				Description: "Create a directory and any missing parents. Succeeds if it already exists",
				Parameters:  []types.Parameter{pathParam("Directory path, relative to the allowed root")},
				Returns:     "string",
			},
			{
				ID:          ServiceID + ".delete_file",
				Name:        "delete_file",
				Title:       "Delete File",
				Description: "Delete a single file",
				Parameters:  []types.Parameter{pathParam("Path of the file, relative to the allowed root")},
				Returns:     "string",
				Destructive: true,
			},
			{
				ID:          ServiceID + ".delete_directory",
				Name:        "delete_directory",
				Title:       "Delete Directory",
				Description: "Delete a directory. Non-empty directories require recursive=true",
				Parameters: []types.Parameter{
					pathParam("Directory path, relative to the allowed root"),
					{Name: "recursive", Type: "boolean", Description: "Also delete everything inside the directory", Default: false},
				},
				Returns:     "string",
				Destructive: true,
			},
			{
				ID:          ServiceID + ".move_path",
				Name:        "move_path",
				Title:       "Move Path",
				Description: "Move or rename a file or directory. The destination must not exist",
				Parameters: []types.Parameter{
					{Name: "source", Type: "string", Description: "Existing path, relative to the allowed root", Required: true},
					{Name: "destination", Type: "string", Description: "New path, relative to the allowed root", Required: true},
				},
				Returns:     "string",
				Destructive: true,
			},
			{
				ID:          ServiceID + ".get_file_info",
				Name:        "get_file_info",
				Title:       "Get File Info",
				Description: "Report type, size, timestamps and permissions of a file or directory",
				Parameters:  []types.Parameter{pathParam("Path, relative to the allowed root")},
				Returns:     "string",
				ReadOnly:    true,
			},
		},
	}
}

// Execute runs a filesystem tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	h, ok := p.handlers[toolID]
	if !ok {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID), KindInvalidArgument, nil)
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	tool := strings.TrimPrefix(toolID, ServiceID+".")
	start := time.Now()

	result, err := h(ctx, params)
	if err != nil {
		return nil, err
	}

	status := "success"
	if !result.Success {
		status = "error"
	}
	if p.metrics != nil {
		p.metrics.RecordServiceCall(ServiceID, tool, status, time.Since(start))
		if !result.Success {
			p.metrics.RecordServiceError(ServiceID, tool, result.Kind)
		}
	}

	fields := []zap.Field{zap.String("tool", tool), zap.Duration("duration", time.Since(start))}
	if appCtx != nil && appCtx.SessionID != nil {
		fields = append(fields, zap.String("session_id", *appCtx.SessionID))
	}
	if result.Success {
		p.logger.Debug("tool call", fields...)
	} else {
		p.logger.Info("tool call failed", append(fields, zap.String("kind", result.Kind), zap.String("error", result.Text()))...)
	}

	if result.Data == nil {
		result.Data = map[string]interface{}{}
	}
	result.Data["tool"] = tool
	return result, nil
}

func (p *Provider) readFile(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, res := requireString(params, "path", false)
	if res != nil {
		return res, nil
	}

	text, err := p.ops.ReadFile(ctx, path)
	if err != nil {
		return failure(err, path)
	}
	return Success(map[string]interface{}{"text": text, "path": path})
}

func (p *Provider) listDirectory(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, res := optionalString(params, "path", ".")
	if res != nil {
		return res, nil
	}
	if path == "" {
		path = "."
	}
	pattern, res := optionalString(params, "pattern", "")
	if res != nil {
		return res, nil
	}
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return Failure(fmt.Sprintf("invalid pattern: %s", pattern), KindInvalidArgument, nil)
	}

	listing, err := p.ops.ListDirectory(ctx, path, pattern)
	if err != nil {
		return failure(err, path)
	}
	return Success(map[string]interface{}{"text": listing.String(), "path": path, "listing": listing})
}

func (p *Provider) writeFile(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, res := requireString(params, "path", false)
	if res != nil {
		return res, nil
	}
	content, res := requireString(params, "content", true)
	if res != nil {
		return res, nil
	}

	msg, err := p.ops.WriteFile(ctx, path, content)
	if err != nil {
		return failure(err, path)
	}
	return Success(map[string]interface{}{"text": msg, "path": path})
}

func (p *Provider) createDirectory(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, res := requireString(params, "path", false)
	if res != nil {
		return res, nil
	}

	msg, err := p.ops.CreateDirectory(ctx, path)
	if err != nil {
		return failure(err, path)
	}
	return Success(map[string]interface{}{"text": msg, "path": path})
}

func (p *Provider) deleteFile(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, res := requireString(params, "path", false)
	if res != nil {
		return res, nil
	}

	msg, err := p.ops.DeleteFile(ctx, path)
	if err != nil {
		return failure(err, path)
	}
	return Success(map[string]interface{}{"text": msg, "path": path})
}

func (p *Provider) deleteDirectory(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, res := requireString(params, "path", false)
	if res != nil {
		return res, nil
	}
	recursive, res := optionalBool(params, "recursive")
	if res != nil {
		return res, nil
	}

	msg, err := p.ops.DeleteDirectory(ctx, path, recursive)
	if err != nil {
		return failure(err, path)
	}
	return Success(map[string]interface{}{"text": msg, "path": path})
}

func (p *Provider) movePath(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	source, res := requireString(params, "source", false)
	if res != nil {
		return res, nil
	}
	destination, res := requireString(params, "destination", false)
	if res != nil {
		return res, nil
	}

	msg, err := p.ops.MovePath(ctx, source, destination)
	if err != nil {
		return failure(err, source)
	}
	return Success(map[string]interface{}{"text": msg, "source": source, "destination": destination})
}

func (p *Provider) getFileInfo(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, res := requireString(params, "path", false)
	if res != nil {
		return res, nil
	}

	info, err := p.ops.GetFileInfo(ctx, path)
	if err != nil {
		return failure(err, path)
	}
	return Success(map[string]interface{}{"text": info.String(), "path": path, "info": info})
}

// failure converts an operation error into an in-band tool failure.
func failure(err error, path string) (*types.Result, error) {
	kind := fserr.KindOS
	var e *fserr.Error
	if errors.As(err, &e) {
		kind = e.Kind
	}
	return Failure(err.Error(), string(kind), map[string]interface{}{"path": path})
}

// requireString extracts a mandatory string argument. Empty strings are
// rejected unless allowEmpty is set.
func requireString(params map[string]interface{}, name string, allowEmpty bool) (string, *types.Result) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return "", invalid("%s parameter required", name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalid("%s parameter must be a string", name)
	}
	if s == "" && !allowEmpty {
		return "", invalid("%s parameter required", name)
	}
	return s, nil
}

func optionalString(params map[string]interface{}, name, def string) (string, *types.Result) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return def, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalid("%s parameter must be a string", name)
	}
	return s, nil
}

// optionalBool accepts a JSON boolean or its string spelling.
func optionalBool(params map[string]interface{}, name string) (bool, *types.Result) {
	switch v := params[name].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, invalid("%s parameter must be a boolean", name)
		}
		return b, nil
	default:
		return false, invalid("%s parameter must be a boolean", name)
	}
}

func invalid(format string, args ...interface{}) *types.Result {
	res, _ := Failure(fmt.Sprintf(format, args...), KindInvalidArgument, nil)
	return res
}
