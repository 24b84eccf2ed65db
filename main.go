package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"atui/agent"
	"atui/catalog"
	"atui/commands"
	"atui/config"
	"atui/mcp"
	"atui/provider"
	"atui/storage"
	"atui/tools"
	"atui/ui"
)

type cliOptions struct {
	continueLast bool
	resumeID     string
	oneShot      string
	model        string
	noTools      bool
	showVersion  bool
	prompt       string
}

func parseFlags() cliOptions {
	var opts cliOptions

	flag.BoolVar(&opts.continueLast, "c", false, "continue the most recent session in this directory")
	flag.BoolVar(&opts.continueLast, "continue", false, "continue the most recent session in this directory")
	flag.StringVar(&opts.resumeID, "r", "", "resume the session with the given ID")
	flag.StringVar(&opts.resumeID, "resume", "", "resume the session with the given ID")
	flag.StringVar(&opts.oneShot, "p", "", "run one prompt non-interactively and print the result")
	flag.StringVar(&opts.oneShot, "print", "", "run one prompt non-interactively and print the result")
	flag.StringVar(&opts.model, "model", "", "override the configured model")
	flag.BoolVar(&opts.noTools, "no-tools", false, "disable tool use")
	flag.BoolVar(&opts.showVersion, "v", false, "print version and exit")
	flag.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flag.Parse()

	opts.prompt = strings.TrimSpace(strings.Join(flag.Args(), " "))
	return opts
}

func main() {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("ATUI %s\n", config.Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if opts.model != "" {
		cfg.DefaultModel = opts.model
	}

	config.InitDebugLog(cfg.DataDir())

	if ok, hint := config.ValidateAPIKey(cfg); !ok {
		fmt.Fprintln(os.Stderr, hint)
		os.Exit(1)
	}

	chatProvider, err := provider.NewAnthropicProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create chat client: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewSessionStore(cfg.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize session storage: %v\n", err)
		os.Exit(1)
	}

	history, err := storage.NewHistoryManager(cfg.DataDir())
	if err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Prompt history unavailable: %v", err)
	}

	search, err := storage.NewSearchIndex(cfg.DataDir())
	if err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Search index unavailable: %v", err)
	}
	if search != nil {
		defer search.Close()
	}

	registry := tools.NewRegistry()
	tools.RegisterLocalTools(registry)

	mcpManager := mcp.NewManager(cfg.MCPServers)
	registry.SetRemote(mcpManager)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mcpManager.DisconnectAll(ctx)
	}()

	executor := agent.NewExecutor(chatProvider, registry)

	handler := commands.NewHandler()
	handler.Config = cfg
	handler.Store = store
	handler.Provider = chatProvider
	handler.Registry = registry
	handler.MCP = mcpManager
	handler.Agents = catalog.NewAgentCatalog(cfg.DataDir())
	handler.Skills = catalog.NewSkillCatalog(cfg.DataDir())
	handler.Search = search
	handler.History = history
	handler.SetToolsEnabled(!opts.noTools)

	session, err := resolveSession(store, opts, chatProvider.GetModel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if session.Model != "" && opts.model == "" {
		chatProvider.SetModel(session.Model)
	}
	handler.SetSession(session)

	if opts.oneShot != "" || opts.prompt != "" {
		prompt := opts.oneShot
		if prompt == "" {
			prompt = opts.prompt
		}
		runOneShot(executor, handler, prompt)
		return
	}

	p := tea.NewProgram(
		ui.NewApp(handler, executor, history),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running atui: %v\n", err)
		os.Exit(1)
	}
}

// resolveSession picks the session to use: resumed by ID, continued from
// the current directory, or fresh.
func resolveSession(store *storage.SessionStore, opts cliOptions, modelName string) (*storage.Session, error) {
	if opts.resumeID != "" {
		session, err := store.Load(opts.resumeID)
		if err != nil {
			return nil, fmt.Errorf("failed to resume session %s: %w", opts.resumeID, err)
		}
		return session, nil
	}

	if opts.continueLast {
		cwd, _ := os.Getwd()
		session, err := store.Latest(cwd)
		if err != nil {
			return nil, fmt.Errorf("failed to find a session to continue: %w", err)
		}
		if session != nil {
			return session, nil
		}
	}

	return store.NewSession(modelName), nil
}

// printSink writes exchange progress to stderr so stdout carries only the
// final answer.
type printSink struct{}

func (printSink) StreamText(string) {}

func (printSink) ToolUse(name string, args map[string]any) {
	fmt.Fprintf(os.Stderr, "[tool] %s\n", name)
}

func (printSink) ToolResult(res tools.Result) {
	if res.IsError {
		fmt.Fprintf(os.Stderr, "[tool] error: %s\n", res.Error)
	}
}

func (printSink) Notice(text string) {
	fmt.Fprintf(os.Stderr, "%s\n", text)
}

func runOneShot(executor *agent.Executor, handler *commands.Handler, prompt string) {
	ctx := context.Background()
	systemPrompt := handler.SystemPrompt()
	session := handler.Session()

	var finalText string
	var err error
	if handler.ToolsEnabled() {
		finalText, _, err = executor.RunWithTools(ctx, session, prompt, systemPrompt, printSink{})
	} else {
		finalText, err = executor.Chat(ctx, session, prompt, systemPrompt, nil)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(finalText)
}
