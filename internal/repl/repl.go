// Package repl is the interactive chat loop over the orchestrator.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/agents"
)

// Command represents a slash command.
type Command struct {
	Name        string
	Description string
	Handler     func(args string) error
}

// REPL reads one line per turn and prints the routed agent's reply.
type REPL struct {
	orch      *agents.Orchestrator
	userID    string
	sessionID string
	in        io.Reader
	out       io.Writer
	commands  map[string]Command
}

func New(orch *agents.Orchestrator, userID, sessionID string, in io.Reader, out io.Writer) *REPL {
	r := &REPL{
		orch:      orch,
		userID:    userID,
		sessionID: sessionID,
		in:        in,
		out:       out,
		commands:  make(map[string]Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a slash command.
func (r *REPL) Register(c Command) {
	r.commands[c.Name] = c
}

func (r *REPL) registerBuiltins() {
	r.Register(Command{
		Name: "/help", Description: "Show available commands",
		Handler: func(_ string) error {
			fmt.Fprintln(r.out, "Available commands:")
			names := make([]string, 0, len(r.commands))
			for name := range r.commands {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(r.out, "  %-10s %s\n", name, r.commands[name].Description)
			}
			fmt.Fprintln(r.out, "  exit, quit  End the chat")
			return nil
		},
	})
	r.Register(Command{
		Name: "/agents", Description: "List the agents requests are routed to",
		Handler: func(_ string) error {
			for _, a := range r.orch.Config().Agents {
				fmt.Fprintf(r.out, "  %-14s %s\n", a.ID, a.Description)
			}
			return nil
		},
	})
	r.Register(Command{
		Name: "/tools", Description: "List tools, or one agent's tools: /tools <agent>",
		Handler: func(args string) error {
			id := strings.TrimSpace(args)
			if id == "" {
				for _, d := range r.orch.Registry().List() {
					fmt.Fprintf(r.out, "  %-24s %s\n", d.Name, d.Description)
				}
				return nil
			}
			a, err := r.orch.Config().Agent(id)
			if err != nil {
				return err
			}
			for _, name := range a.Tools {
				fmt.Fprintf(r.out, "  %s\n", name)
			}
			return nil
		},
	})
}

// Run loops until exit/quit, end of input, or ctx is done. A cancelled ctx
// returns ctx.Err() even while waiting for input.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintf(r.out, "=== Orchestrator Team Chat (as %s) ===\n", r.userID)
	fmt.Fprintln(r.out, "Type 'exit' or 'quit' to end the chat.")
	fmt.Fprintln(r.out)

	// Cancelling on return releases the reader goroutine after exit/quit.
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, done := r.readLines(readCtx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, "You: ")
		var text string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return ctx.Err()
		case next, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				return <-done
			}
			text = next
		}
		line := strings.TrimSpace(text)
		if line == "" {
			continue
		}
		if isExit(line) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}

		if strings.HasPrefix(line, "/") {
			name, args, _ := strings.Cut(line, " ")
			cmd, ok := r.commands[name]
			if !ok {
				fmt.Fprintf(r.out, "Unknown command: %s (try /help)\n", name)
				continue
			}
			if err := cmd.Handler(args); err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
			}
			continue
		}

		reply, err := r.orch.Handle(ctx, agents.Turn{UserID: r.userID, SessionID: r.sessionID, Input: line})
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			continue
		}
		name := reply.Agent
		if a, err := r.orch.Config().Agent(reply.Agent); err == nil && a.Name != "" {
			name = a.Name
		}
		fmt.Fprintf(r.out, "%s: %s\n", name, reply.Text)
	}
}

// readLines scans r.in on its own goroutine so Run can watch ctx while a read
// is blocked. done receives exactly one value before lines is closed.
func (r *REPL) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	done := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				done <- ctx.Err()
				return
			}
		}
		done <- scanner.Err()
	}()
	return lines, done
}

func isExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit":
		return true
	}
	return false
}
