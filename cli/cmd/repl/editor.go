package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/impral/lang"
	"github.com/ardnew/impral/log"
)

const defaultEditor = "vi"

// editLineCommand implements [tea.ExecCommand]. It writes the pending input
// line to a temp file, opens the user's editor on it, and parses the result.
// On a parse error the user is asked whether to edit again; declining ends
// the loop with [ErrEditDeclined].
type editLineCommand struct {
	line    string
	opts    []lang.Option
	ctxFunc func() context.Context
	logger  log.Logger
	edited  string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editLineCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editLineCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editLineCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run implements [tea.ExecCommand].
func (c *editLineCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp("", "impral-repl-*.impral")
	if err != nil {
		return err
	}

	path := f.Name()
	f.Close()

	defer os.Remove(path)

	content := c.line + "\n"

	for {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		text := joinLines(string(data))
		if text == "" {
			return nil
		}

		_, parseErr := lang.Parse(ctx, text, c.opts...)
		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("content_length", len(text)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.edited = text

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", parseErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}

		content = string(data)
	}
}

// joinLines folds the edited file into a single command line, dropping
// blank lines and // comments.
func joinLines(s string) string {
	var parts []string

	for line := range strings.Lines(s) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		parts = append(parts, line)
	}

	return strings.Join(parts, " ")
}

func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}

	if editor == "" {
		editor = defaultEditor
	}

	args := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
