package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// lineSource yields input lines; *bufio.Scanner satisfies it.
type lineSource interface {
	Scan() bool
	Text() string
}

// readerLines reads lines straight from a bufio.Reader so prompts issued by
// commands share the same buffer as the REPL.
type readerLines struct {
	r    *bufio.Reader
	line string
}

func (l *readerLines) Scan() bool {
	s, err := l.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || s == "") {
		return false
	}
	l.line = strings.TrimRight(s, "\r\n")
	return true
}

func (l *readerLines) Text() string { return l.line }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	help() string
	dispatch(ctx context.Context, cmd string, args []string) error
}

// runREPL starts a simple read–eval–print loop for the Goowi CLI.
//
// It reads a line, parses the first token as the command and hands it with
// the remaining tokens to a.dispatch. The loop exits when input ends, when
// the user types "exit" or "quit", or when ctx is done.
//
// The prompt, help and errors are written to w, the same writer commands use,
// so a session reads top to bottom on one stream. Errors returned by commands
// are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, lines lineSource, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "goowi %s > ", statusFn())
		if !lines.Scan() {
			return
		}
		parts := strings.Fields(lines.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(w, a.help())

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			if err := a.dispatch(ctx, cmd, args); err != nil {
				if errors.Is(err, errUnknownCommand) {
					fmt.Fprintln(w, "Unknown command:", cmd)
					continue
				}
				if errors.Is(err, errRedirected) {
					// the redirect notice is already printed
					continue
				}
				fmt.Fprintln(w, "Error:", userMessage(err))
			}
		}
	}
}
