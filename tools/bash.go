package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"atui/config"
)

const (
	defaultBashTimeout = 120 // seconds
	maxBashOutput      = 30000
)

// BashTool executes shell commands with a timeout and a safety denylist.
type BashTool struct{}

func (t *BashTool) Descriptor() mcptypes.Tool {
	return mcptypes.NewTool("bash",
		mcptypes.WithDescription("Execute a bash command and return the output."),
		mcptypes.WithString("command",
			mcptypes.Required(),
			mcptypes.Description("The bash command to execute"),
		),
		mcptypes.WithNumber("timeout",
			mcptypes.Description("Timeout in seconds (default: 120)"),
		),
		mcptypes.WithString("cwd",
			mcptypes.Description("Working directory for the command"),
		),
	)
}

func (t *BashTool) Execute(ctx context.Context, args map[string]any) Result {
	if res, ok := checkRequired(t.Descriptor(), args); !ok {
		return res
	}

	command := stringArg(args, "command", "")
	timeout := intArg(args, "timeout", defaultBashTimeout)
	cwd := stringArg(args, "cwd", "")

	if pattern := BlockedPattern(command); pattern != "" {
		return Fail("Blocked dangerous command pattern: %s", pattern)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "bash", "-c", command)
	if cwd != "" {
		cmd.Dir = config.ExpandPath(cwd)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return Fail("Command timed out after %d seconds", timeout)
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		output += fmt.Sprintf("\n[stderr]\n%s", stderr.String())
	}
	if len(output) > maxBashOutput {
		output = output[:maxBashOutput] + "\n...[truncated]"
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Keep the captured output so the model sees what failed
			return Result{
				Content: output,
				Error:   fmt.Sprintf("Command exited with code %d", exitErr.ExitCode()),
				IsError: true,
			}
		}
		return Fail("%v", err)
	}

	return Ok(output)
}
