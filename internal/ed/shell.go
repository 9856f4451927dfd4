package ed

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/dshills/ctext/internal/engine/buffer"
)

// runShell runs cmdline through the configured shell with stdin as its
// input and returns its output split into lines.
func (e *Ed) runShell(cmdline, stdin string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.deps.ShellTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.deps.Shell, "-c", cmdline)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin + "\n")
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.debugf("ed: shell %q", cmdline)
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, wrapIO(err, "%s: %s", cmdline, msg)
		}
		return nil, wrapIO(err, "%s", cmdline)
	}
	return buffer.SplitLines(stdout.String()), nil
}

// source loads lines from a file name or, for "!cmd", from command output.
func (e *Ed) source(name string) ([]string, error) {
	if strings.HasPrefix(name, "!") {
		return e.runShell(name[1:], "")
	}
	lines, _, err := buffer.ReadLines(name)
	if err != nil {
		return nil, wrapIO(err, "cannot open %s", name)
	}
	return lines, nil
}
