package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"atui/agent"
	"atui/commands"
	"atui/config"
	"atui/model"
	"atui/storage"
)

const textareaHeight = 3

// App is the bubbletea model for the interactive chat.
type App struct {
	handler  *commands.Handler
	executor *agent.Executor
	history  *storage.HistoryManager

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	messages    []Message
	currentResp *strings.Builder
	streaming   bool

	cancelExchange context.CancelFunc
	events         chan tea.Msg
	lastInput      string

	commandNames  []string
	suggestions   []string
	suggestionIdx int

	historyEntries []string
	historyIdx     int
}

func NewApp(handler *commands.Handler, executor *agent.Executor, history *storage.HistoryManager) App {
	ta := textarea.New()
	ta.Placeholder = "Type a message, or /help for commands"
	ta.Focus()
	ta.SetHeight(textareaHeight)
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(AssistantStyle),
	)

	names := make([]string, 0, len(baseCommands))
	names = append(names, baseCommands...)
	for _, s := range handler.Skills.All() {
		names = append(names, "/"+s.Name)
	}

	a := App{
		handler:      handler,
		executor:     executor,
		history:      history,
		textarea:     ta,
		spinner:      sp,
		currentResp:  &strings.Builder{},
		commandNames: names,
	}
	a.reloadTranscript()
	return a
}

func (a App) Init() tea.Cmd {
	return textarea.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if !a.ready {
			a.viewport = viewport.New(msg.Width, msg.Height-textareaHeight-2)
			a.ready = true
		}
		a.layout()
		a.updateViewportContent(true)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		if !a.streaming {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		if a.currentResp.Len() == 0 {
			a.updateStreamingMessage()
		}
		return a, cmd

	case streamChunkMsg:
		a.currentResp.WriteString(msg.Chunk)
		a.updateStreamingMessage()
		return a, a.waitEvent()

	case toolUseMsg:
		cmd := a.flushStreamText()
		a.appendMessage(roleTool, fmt.Sprintf("⚙ %s %s", msg.Name, summarizeArgs(msg.Arguments)))
		a.updateViewportContent(true)
		return a, tea.Batch(cmd, a.waitEvent())

	case toolResultMsg:
		a.appendMessage(roleTool, summarizeResult(msg.Content, msg.IsError, msg.Error))
		a.updateViewportContent(true)
		return a, a.waitEvent()

	case noticeMsg:
		a.appendMessage(roleSystem, msg.Text)
		a.updateViewportContent(true)
		return a, a.waitEvent()

	case exchangeDoneMsg:
		return a.handleExchangeDone(msg)

	case markdownRenderedMsg:
		if msg.MessageIndex >= 0 && msg.MessageIndex < len(a.messages) {
			a.messages[msg.MessageIndex].Rendered = msg.Rendered
			a.updateViewportContent(true)
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if a.streaming {
			a.cancel()
			return a, nil
		}
		return a, tea.Quit

	case "esc":
		if len(a.suggestions) > 0 {
			a.suggestions = nil
			a.layout()
			return a, nil
		}
		if a.streaming {
			a.cancel()
		}
		return a, nil

	case "enter":
		if len(a.suggestions) > 0 {
			a.acceptSuggestion()
			a.layout()
			return a, nil
		}
		cmd := a.handleSubmit()
		return a, cmd

	case "tab":
		if len(a.suggestions) > 0 {
			a.acceptSuggestion()
			a.layout()
		}
		return a, nil

	case "up":
		if len(a.suggestions) > 0 {
			a.suggestionIdx = (a.suggestionIdx + len(a.suggestions) - 1) % len(a.suggestions)
			return a, nil
		}

	case "down":
		if len(a.suggestions) > 0 {
			a.suggestionIdx = (a.suggestionIdx + 1) % len(a.suggestions)
			return a, nil
		}

	case "ctrl+p":
		a.historyPrev()
		return a, nil

	case "ctrl+n":
		a.historyNext()
		return a, nil

	case "ctrl+j":
		a.textarea.InsertString("\n")
		return a, nil

	case "ctrl+y":
		a.copyLastReply()
		return a, nil

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	a.updateSuggestions()
	a.layout()
	return a, cmd
}

func (a *App) handleSubmit() tea.Cmd {
	input := strings.TrimSpace(a.textarea.Value())
	if input == "" || a.streaming {
		return nil
	}

	a.textarea.Reset()
	a.suggestions = nil
	a.historyEntries = nil
	a.layout()

	if strings.HasPrefix(input, "/") {
		res := a.handler.Execute(context.Background(), input)
		if res.Handled {
			if res.ShouldExit {
				return tea.Quit
			}

			if res.ClearView {
				a.reloadTranscript()
			}
			if res.Message != "" {
				role := roleSystem
				if res.IsError {
					role = roleError
				}
				a.appendMessage(role, res.Message)
			}

			var cmd tea.Cmd
			if res.Prompt != "" {
				a.appendMessage(roleUser, input)
				a.recordHistory(input)
				a.lastInput = res.Prompt
				cmd = a.startExchange(res.Prompt)
			}
			a.updateViewportContent(true)
			return cmd
		}
	}

	a.appendMessage(roleUser, input)
	a.recordHistory(input)
	a.updateViewportContent(true)
	a.lastInput = input
	return a.startExchange(input)
}

func (a App) handleExchangeDone(msg exchangeDoneMsg) (tea.Model, tea.Cmd) {
	a.streaming = false
	a.cancelExchange = nil
	a.currentResp.Reset()

	switch {
	case msg.Cancelled:
		a.appendMessage(roleSystem, "Cancelled.")
	case msg.Err != nil:
		a.appendMessage(roleError, fmt.Sprintf("Error: %v", msg.Err))
	case msg.FinalText != "":
		a.appendMessage(roleAssistant, msg.FinalText)
		a.indexExchange(msg.FinalText)
		a.updateViewportContent(true)
		return a, a.renderMarkdownAsync(len(a.messages)-1, msg.FinalText)
	default:
		a.appendMessage(roleSystem, "No response received.")
	}

	a.updateViewportContent(true)
	return a, nil
}

func (a *App) cancel() {
	if a.cancelExchange != nil {
		a.cancelExchange()
	}
}

// flushStreamText converts streamed intermediate text into a finished
// assistant message before tool output is shown.
func (a *App) flushStreamText() tea.Cmd {
	text := strings.TrimSpace(a.currentResp.String())
	a.currentResp.Reset()
	if text == "" {
		return nil
	}

	a.appendMessage(roleAssistant, text)
	return a.renderMarkdownAsync(len(a.messages)-1, text)
}

func (a *App) appendMessage(role, content string) {
	a.messages = append(a.messages, Message{
		Role:      role,
		Content:   content,
		Rendered:  content,
		Timestamp: time.Now(),
	})
}

// reloadTranscript rebuilds the display from the current session.
func (a *App) reloadTranscript() {
	session := a.handler.Session()
	a.messages = nil
	if session == nil {
		return
	}

	for _, m := range session.Messages {
		rendered := m.Content
		if m.Role == roleAssistant && a.ready {
			rendered = renderMarkdown(m.Content, a.width)
		}
		a.messages = append(a.messages, Message{
			Role:      m.Role,
			Content:   m.Content,
			Rendered:  rendered,
			Timestamp: m.Timestamp,
		})
	}

	if a.ready {
		a.updateViewportContent(true)
	}
}

func (a *App) recordHistory(input string) {
	if a.history == nil {
		return
	}
	if err := a.history.Add(input); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("[ui] Failed to record history: %v", err)
	}
}

func (a *App) historyPrev() {
	if a.history == nil {
		return
	}
	if a.historyEntries == nil {
		entries, err := a.history.All(100)
		if err != nil || len(entries) == 0 {
			return
		}
		a.historyEntries = entries
		a.historyIdx = len(entries)
	}
	if a.historyIdx > 0 {
		a.historyIdx--
		a.textarea.SetValue(a.historyEntries[a.historyIdx])
		a.textarea.CursorEnd()
	}
}

func (a *App) historyNext() {
	if a.historyEntries == nil {
		return
	}
	if a.historyIdx < len(a.historyEntries)-1 {
		a.historyIdx++
		a.textarea.SetValue(a.historyEntries[a.historyIdx])
		a.textarea.CursorEnd()
		return
	}
	a.historyIdx = len(a.historyEntries)
	a.textarea.Reset()
}

func (a *App) copyLastReply() {
	for i := len(a.messages) - 1; i >= 0; i-- {
		if a.messages[i].Role == roleAssistant {
			if err := clipboard.WriteAll(a.messages[i].Content); err != nil {
				a.appendMessage(roleError, fmt.Sprintf("Clipboard copy failed: %v", err))
			} else {
				a.appendMessage(roleSystem, "Copied last reply to clipboard.")
			}
			a.updateViewportContent(true)
			return
		}
	}
}

// indexExchange records the finished exchange in the cross-session search
// index.
func (a *App) indexExchange(finalText string) {
	search := a.handler.Search
	session := a.handler.Session()
	if search == nil || session == nil {
		return
	}

	now := time.Now()
	if a.lastInput != "" {
		_ = search.IndexMessage(session.ID, model.RoleUser, a.lastInput, now)
	}
	_ = search.IndexMessage(session.ID, model.RoleAssistant, finalText, now)
}

func (a *App) layout() {
	if !a.ready {
		return
	}

	vpHeight := a.height - 1 - textareaHeight - 1 - len(a.suggestions)
	if vpHeight < 3 {
		vpHeight = 3
	}

	a.viewport.Width = a.width
	a.viewport.Height = vpHeight
	a.textarea.SetWidth(a.width - 2)
}

func (a App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	sections := []string{
		a.headerView(),
		a.viewport.View(),
	}
	if sv := a.suggestionView(); sv != "" {
		sections = append(sections, sv)
	}
	sections = append(sections, a.textarea.View(), a.statusView())

	return strings.Join(sections, "\n")
}

func (a App) headerView() string {
	title := TitleStyle.Render("ATUI")
	info := DimStyle.Render(" · " + a.handler.Provider.GetModel())
	if active := a.handler.ActiveAgent(); active != nil {
		info += SelectedStyle.Render(" · agent:" + active.Name)
	}
	return runewidth.Truncate(title+info, a.width, "…")
}

func (a App) statusView() string {
	tools := "tools:on"
	if !a.handler.ToolsEnabled() {
		tools = "tools:off"
	}

	sessionName := ""
	if s := a.handler.Session(); s != nil && s.Name != "" {
		sessionName = " · " + s.Name
	}

	left := StatusStyle.Render(tools + sessionName)
	right := FormatFooter("Enter", "Send", "Esc", "Cancel", "Ctrl+Y", "Copy", "Ctrl+C", "Quit")

	gap := a.width - runewidth.StringWidth(stripANSI(left)) - runewidth.StringWidth(stripANSI(right))
	if gap < 1 {
		return runewidth.Truncate(left, a.width, "…")
	}
	return left + strings.Repeat(" ", gap) + right
}
