package tools

import (
	"context"
	"strings"
	"sync"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"atui/config"
)

// RemotePrefix marks tool names that belong to an MCP server.
const RemotePrefix = "mcp__"

// RemoteExecutor dispatches namespaced tool calls to MCP servers.
// Implemented by mcp.Manager; defined here so the registry does not depend
// on the mcp package.
type RemoteExecutor interface {
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
	Tools() []mcptypes.Tool
}

// Registry unifies local tools and remote MCP tools behind one dispatch
// surface. Local names are checked first; anything carrying the remote
// prefix goes to the RemoteExecutor.
type Registry struct {
	mu     sync.RWMutex
	local  map[string]Tool
	order  []string
	remote RemoteExecutor
}

func NewRegistry() *Registry {
	return &Registry{local: make(map[string]Tool)}
}

// Register adds a local tool. Re-registering a name replaces the tool
// without duplicating it in the catalog.
func (r *Registry) Register(t Tool) {
	name := t.Descriptor().Name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.local[name]; !exists {
		r.order = append(r.order, name)
	}
	r.local[name] = t
}

// SetRemote attaches the MCP dispatch backend.
func (r *Registry) SetRemote(remote RemoteExecutor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remote = remote
}

// Execute runs the named tool. An unknown name is an error envelope, never
// an error return: the result always goes back to the model.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) Result {
	r.mu.RLock()
	tool, isLocal := r.local[name]
	remote := r.remote
	r.mu.RUnlock()

	if isLocal {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[tools] Executing local tool %s", name)
		}
		return tool.Execute(ctx, args)
	}

	if strings.HasPrefix(name, RemotePrefix) && remote != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[tools] Executing remote tool %s", name)
		}
		content, err := remote.CallTool(ctx, name, args)
		if err != nil {
			return Fail("%v", err)
		}
		return Ok(content)
	}

	return Fail("Unknown tool: %s", name)
}

// Tools returns the full catalog: local descriptors in registration order,
// then whatever the remote backend currently exposes.
func (r *Registry) Tools() []mcptypes.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mcptypes.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.local[name].Descriptor())
	}
	if r.remote != nil {
		out = append(out, r.remote.Tools()...)
	}
	return out
}

// RegisterLocalTools registers the built-in tool set.
func RegisterLocalTools(r *Registry) {
	r.Register(&ReadTool{})
	r.Register(&WriteTool{})
	r.Register(&EditTool{})
	r.Register(&BashTool{})
	r.Register(&GlobTool{})
	r.Register(&GrepTool{})
}
