package tools

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
)

// --- Riza code interpreter ---

// CodeInterpreterTool executes short Python snippets in Riza's sandboxed
// execution service.
type CodeInterpreterTool struct {
	apiKey string
	client *http.Client
}

func NewCodeInterpreterTool(apiKey string) *CodeInterpreterTool {
	return &CodeInterpreterTool{apiKey: apiKey, client: newHTTPClient()}
}

func (t *CodeInterpreterTool) Name() string     { return "code_interpreter" }
func (t *CodeInterpreterTool) Category() string { return CategoryCode }
func (t *CodeInterpreterTool) Description() string {
	return "Runs short Python snippets for calculations and data manipulation"
}
func (t *CodeInterpreterTool) Enabled() bool { return t.apiKey != "" }

func (t *CodeInterpreterTool) Invoke(ctx context.Context, params Params) (Result, error) {
	code := params.String("code")
	if code == "" {
		code = params.String("query")
	}
	if code == "" {
		return nil, fmt.Errorf("code_interpreter requires a 'code' parameter")
	}

	var resp struct {
		ExitCode int    `json:"exit_code"`
		Stdout   string `json:"stdout"`
		Stderr   string `json:"stderr"`
	}
	headers := map[string]string{"Authorization": "Bearer " + t.apiKey}
	payload := map[string]string{
		"language": "python",
		"code":     code,
	}
	if err := postJSON(ctx, t.client, "https://api.riza.io/v1/execute", headers, payload, &resp); err != nil {
		return nil, fmt.Errorf("code_interpreter: %w", err)
	}

	return Result{
		"source":    t.Name(),
		"exit_code": resp.ExitCode,
		"stdout":    resp.Stdout,
		"stderr":    resp.Stderr,
	}, nil
}

// --- Shell (allow-listed commands only) ---

// shellAllowList names the only binaries the shell tool will run. Anything
// else is refused before exec.
var shellAllowList = map[string]bool{
	"ls":   true,
	"cat":  true,
	"head": true,
	"tail": true,
	"wc":   true,
	"date": true,
	"echo": true,
	"grep": true,
}

// ShellTool runs a single allow-listed command with its arguments. Off by
// default; enabled explicitly through configuration, not a credential.
type ShellTool struct {
	enabled bool
}

func NewShellTool(enabled bool) *ShellTool {
	return &ShellTool{enabled: enabled}
}

func (t *ShellTool) Name() string     { return "shell" }
func (t *ShellTool) Category() string { return CategoryCode }
func (t *ShellTool) Description() string {
	return "Runs one allow-listed read-only shell command"
}
func (t *ShellTool) Enabled() bool { return t.enabled }

func (t *ShellTool) Invoke(ctx context.Context, params Params) (Result, error) {
	command := params.String("command")
	if command == "" {
		command = params.String("query")
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("shell requires a 'command' parameter")
	}
	if !shellAllowList[fields[0]] {
		return nil, fmt.Errorf("shell: command %q is not allow-listed", fields[0])
	}

	execCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, fields[0], fields[1:]...)
	output, err := cmd.CombinedOutput()
	result := Result{
		"source": t.Name(),
		"output": truncate(string(output), 4000),
	}
	if err != nil {
		result["error"] = err.Error()
	}
	return result, nil
}
