package mcp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcptypes "github.com/mark3labs/mcp-go/mcp"

	globalconfig "atui/config"
)

const (
	protocolVersion   = "2025-06-18"
	connectAttempts   = 3
	connectRetryDelay = 1 * time.Second
	requestTimeout    = 30 * time.Second
)

// serverConn is one live stdio connection to an MCP server.
type serverConn struct {
	name    string
	client  *client.Client
	cmd     *exec.Cmd
	tools   []mcptypes.Tool
	running bool
}

// Manager owns the configured MCP servers: their child processes, their
// connections, and the namespaced tool catalog.
type Manager struct {
	servers map[string]globalconfig.ServerConfig
	conns   map[string]*serverConn
	mu      sync.RWMutex
}

func NewManager(servers map[string]globalconfig.ServerConfig) *Manager {
	return &Manager{
		servers: servers,
		conns:   make(map[string]*serverConn),
	}
}

// Servers lists the configured server names, sorted.
func (m *Manager) Servers() []string {
	names := make([]string, 0, len(m.servers))
	for name := range m.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connected lists the currently connected server names, sorted.
func (m *Manager) Connected() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name, conn := range m.conns {
		if conn.running {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Connect starts the named server and discovers its tools. Connecting an
// already-connected server is a no-op, so repeated calls never duplicate
// catalog entries. Individual attempt failures are logged; only exhausting
// every attempt surfaces an error.
func (m *Manager) Connect(ctx context.Context, name string) error {
	cfg, exists := m.servers[name]
	switch {
	case !exists:
		return fmt.Errorf("unknown MCP server: %s", name)
	}

	m.mu.Lock()
	switch {
	case m.conns[name] != nil && m.conns[name].running:
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		conn, err := m.connectOnce(ctx, name, cfg)
		switch {
		case err == nil:
			m.mu.Lock()
			m.conns[name] = conn
			m.mu.Unlock()

			switch {
			case globalconfig.DebugLog != nil:
				globalconfig.DebugLog.Printf("[MCP] Connected to '%s' with %d tools", name, len(conn.tools))
			}
			return nil
		}

		lastErr = err
		switch {
		case globalconfig.DebugLog != nil:
			globalconfig.DebugLog.Printf("[MCP] Connect attempt %d/%d for '%s' failed: %v",
				attempt, connectAttempts, name, err)
		}

		switch {
		case attempt < connectAttempts:
			select {
			case <-time.After(connectRetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("failed to connect to MCP server %s after %d attempts: %w",
		name, connectAttempts, lastErr)
}

// connectOnce spawns the child process, runs the initialize handshake, and
// lists the server's tools.
func (m *Manager) connectOnce(ctx context.Context, name string, cfg globalconfig.ServerConfig) (*serverConn, error) {
	var capturedCmd *exec.Cmd

	cmdFunc := func(ctx context.Context, command string, env []string, args []string) (*exec.Cmd, error) {
		cmd := exec.CommandContext(ctx, command, args...)
		cmd.Env = env
		capturedCmd = cmd
		return cmd, nil
	}

	mcpClient, err := client.NewStdioMCPClientWithOptions(
		cfg.Command,
		serverEnv(cfg.Env),
		cfg.Args,
		transport.WithCommandFunc(cmdFunc),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cfg.Command, err)
	}

	initCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	initReq := mcptypes.InitializeRequest{
		Params: mcptypes.InitializeParams{
			ProtocolVersion: protocolVersion,
			Capabilities:    mcptypes.ClientCapabilities{},
			ClientInfo: mcptypes.Implementation{
				Name:    "ATUI",
				Version: "1.0.0",
			},
		},
	}

	_, err = mcpClient.Initialize(initCtx, initReq)
	if err != nil {
		_ = mcpClient.Close()
		return nil, fmt.Errorf("initialize failed: %w", err)
	}

	toolsResult, err := mcpClient.ListTools(initCtx, mcptypes.ListToolsRequest{})
	if err != nil {
		_ = mcpClient.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return &serverConn{
		name:    name,
		client:  mcpClient,
		cmd:     capturedCmd,
		tools:   toolsResult.Tools,
		running: true,
	}, nil
}

// Disconnect closes the named server's connection and removes its tools
// from the catalog. A server that is not connected, or whose process has
// already exited, is not an error.
func (m *Manager) Disconnect(ctx context.Context, name string) error {
	m.mu.Lock()
	conn, exists := m.conns[name]
	switch {
	case !exists:
		m.mu.Unlock()
		return nil
	}
	conn.running = false
	delete(m.conns, name)
	m.mu.Unlock()

	switch {
	case conn.client != nil:
		closeCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
		defer cancel()

		closeDone := make(chan error, 1)
		go func() {
			closeDone <- conn.client.Close()
		}()

		select {
		case <-closeDone:
		case <-closeCtx.Done():
			// Close is hanging; fall through and kill the process
		}
	}

	switch {
	case conn.cmd != nil && conn.cmd.Process != nil:
		// Best effort: the process may already be gone
		_ = conn.cmd.Process.Kill()
	}

	switch {
	case globalconfig.DebugLog != nil:
		globalconfig.DebugLog.Printf("[MCP] Disconnected from '%s'", name)
	}

	return nil
}

// DisconnectAll tears down every connection, in parallel, at shutdown.
func (m *Manager) DisconnectAll(ctx context.Context) {
	m.mu.Lock()
	names := make([]string, 0, len(m.conns))
	for name := range m.conns {
		names = append(names, name)
	}
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			_ = m.Disconnect(ctx, n)
		}(name)
	}
	wg.Wait()
}

// Tools returns the namespaced tool catalog across all connected servers.
func (m *Manager) Tools() []mcptypes.Tool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []mcptypes.Tool
	for name, conn := range m.conns {
		if !conn.running {
			continue
		}
		for _, tool := range conn.tools {
			namespaced := tool
			namespaced.Name = NamespacedName(name, tool.Name)
			out = append(out, namespaced)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CallTool invokes a namespaced tool. A dropped server is lazily
// reconnected first; the server sees the original tool name. The result
// content is flattened to text. A result marked as an error becomes an
// error return, which the tool layer converts back to an error envelope.
func (m *Manager) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	server, tool, ok := SplitName(name)
	switch {
	case !ok:
		return "", fmt.Errorf("invalid MCP tool name: %s", name)
	}

	m.mu.RLock()
	conn := m.conns[server]
	m.mu.RUnlock()

	switch {
	case conn == nil || !conn.running:
		if err := m.Connect(ctx, server); err != nil {
			return "", err
		}
		m.mu.RLock()
		conn = m.conns[server]
		m.mu.RUnlock()
	}

	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := mcptypes.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	result, err := conn.client.CallTool(callCtx, req)
	switch {
	case err != nil:
		switch {
		case callCtx.Err() == context.DeadlineExceeded:
			return "", fmt.Errorf("MCP request to %s timed out after %s", server, requestTimeout)
		}
		return "", fmt.Errorf("MCP call %s failed: %w", name, err)
	}

	content := FlattenContent(result.Content)
	switch {
	case result.IsError:
		return "", fmt.Errorf("MCP tool %s returned an error: %s", name, content)
	}

	return content, nil
}

// serverEnv merges configured env vars over the current process
// environment so PATH and friends survive.
func serverEnv(envMap map[string]string) []string {
	env := os.Environ()
	for k, v := range envMap {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
