package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/filesystem-mcp/internal/shared/types"
)

// ErrToolNotFound is returned when a tool reference matches no registered tool.
var ErrToolNotFound = errors.New("tool not found")

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

type toolEntry struct {
	tool     types.Tool
	provider Provider
}

// Registry manages service discovery and execution
type Registry struct {
	mu       sync.RWMutex
	services map[string]Provider
	tools    map[string]toolEntry // full tool ID -> entry
	names    map[string]string    // bare tool name -> full tool ID
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]Provider),
		tools:    make(map[string]toolEntry),
		names:    make(map[string]string),
	}
}

// Register adds a service provider. Tool IDs and bare tool names must be
// unique across all providers.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[def.ID]; exists {
		return fmt.Errorf("service already registered: %s", def.ID)
	}

	seen := make(map[string]bool, len(def.Tools))
	for _, tool := range def.Tools {
		if tool.ID == "" || tool.Name == "" {
			return fmt.Errorf("service %s: tool ID and name cannot be empty", def.ID)
		}
		if _, exists := r.tools[tool.ID]; exists {
			return fmt.Errorf("service %s: tool ID already registered: %s", def.ID, tool.ID)
		}
		if seen[tool.Name] {
			return fmt.Errorf("service %s: tool name %q collides within the service", def.ID, tool.Name)
		}
		if owner, exists := r.names[tool.Name]; exists {
			return fmt.Errorf("service %s: tool name %q collides with %s", def.ID, tool.Name, owner)
		}
		seen[tool.Name] = true
	}

	r.services[def.ID] = provider
	for _, tool := range def.Tools {
		r.tools[tool.ID] = toolEntry{tool: tool, provider: provider}
		r.names[tool.Name] = tool.ID
	}
	return nil
}

// Unregister removes a service provider and its tools
func (r *Registry) Unregister(serviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, ok := r.services[serviceID]
	if !ok {
		return
	}
	for _, tool := range provider.Definition().Tools {
		delete(r.tools, tool.ID)
		delete(r.names, tool.Name)
	}
	delete(r.services, serviceID)
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.services[serviceID]
	return p, ok
}

// Lookup resolves a full tool ID ("filesystem.read_file") or a bare tool
// name ("read_file").
func (r *Registry) Lookup(ref string) (types.Tool, bool) {
	entry, ok := r.lookup(ref)
	return entry.tool, ok
}

func (r *Registry) lookup(ref string) (toolEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.tools[ref]; ok {
		return entry, true
	}
	if full, ok := r.names[ref]; ok {
		return r.tools[full], true
	}
	return toolEntry{}, false
}

// List returns registered services sorted by ID, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.services))
	for _, provider := range r.services {
		def := provider.Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Tools returns every registered tool, grouped by service in ID order and
// in definition order within a service.
func (r *Registry) Tools() []types.Tool {
	var tools []types.Tool
	for _, def := range r.List(nil) {
		tools = append(tools, def.Tools...)
	}
	return tools
}

// Discover finds services relevant to a free-text intent
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scoredService struct {
		service types.Service
		score   float64
	}

	intentLower := strings.ToLower(intent)
	var results []scoredService
	for _, def := range r.List(nil) {
		if score := calculateRelevance(intentLower, def); score > 0 {
			results = append(results, scoredService{service: def, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	output := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].service)
	}
	return output
}

// Execute runs a tool. Unknown tools fail with ErrToolNotFound; failures
// inside a known tool are reported in the returned Result.
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	entry, ok := r.lookup(toolID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, toolID)
	}
	return entry.provider.Execute(ctx, entry.tool.ID, params, appCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	categories := make(map[string]int)
	services := r.List(nil)
	totalTools := 0
	for _, def := range services {
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
	}

	return map[string]interface{}{
		"total_services": len(services),
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func calculateRelevance(intent string, service types.Service) float64 {
	score := 0.0

	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10.0
	}

	for _, tool := range service.Tools {
		name := strings.ReplaceAll(tool.Name, "_", " ")
		if strings.Contains(intent, tool.Name) || strings.Contains(intent, name) {
			score += 8.0
		}
	}

	for _, capability := range service.Capabilities {
		if strings.Contains(intent, strings.ToLower(capability)) {
			score += 3.0
		}
	}

	if strings.Contains(intent, string(service.Category)) {
		score += 2.0
	}

	return score
}
