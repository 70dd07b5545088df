package maitred

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmoraisb/maitred/pkg/domain"
)

// Runner handles a console conversation loop using provided IO.
// This allows for easy testing and integration with different frontends
// (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer

	// Locale is forwarded to the bot for speech markup generation.
	Locale string
}

// ContentRenderer transforms reply text before outputting it. This
// allows for TUI rendering (markdown to ANSI) without coupling the core
// package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Callers must set Input and Output
// (typically os.Stdin / os.Stdout).
func NewRunner() *Runner {
	return &Runner{}
}

// Run drives the conversation until EOF or an exit command. It opens
// with the join signal so the bot greets first.
func (r *Runner) Run(ctx context.Context, bot *Bot, conversationID string) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)

	replies, err := bot.Turn(ctx, domain.Join(conversationID))
	if err != nil {
		return fmt.Errorf("join error: %w", err)
	}
	r.print(replies)

	for {
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Graceful exit on EOF
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		text = strings.TrimSpace(text)

		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			fmt.Fprintln(r.Output, "Bye!")
			return nil
		}

		input := domain.Message(conversationID, text)
		input.Locale = r.Locale
		replies, err := bot.Turn(ctx, input)
		if err != nil {
			return fmt.Errorf("turn error: %w", err)
		}
		r.print(replies)
	}
}

func (r *Runner) print(replies []domain.Reply) {
	for _, reply := range replies {
		output := reply.Text
		if r.Renderer != nil {
			if rendered, err := r.Renderer(output); err == nil {
				output = rendered
			}
		}
		fmt.Fprintln(r.Output, strings.TrimSpace(output))

		if reply.Card != nil {
			fmt.Fprintln(r.Output, reply.Card.Title+":")
			for _, item := range reply.Card.Items {
				fmt.Fprintln(r.Output, "  - "+item)
			}
		}
	}
}
