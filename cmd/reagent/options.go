package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rickchristie/reagent/history"
	"github.com/rickchristie/reagent/history/duckdb"
	"github.com/rickchristie/reagent/tools/askuser"
)

// Options is the root command. The struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config        string `short:"f" long:"config" description:"config YAML path or afs URL"`
	Model         string `short:"m" long:"model" description:"model name, overrides the config"`
	MaxIterations int    `short:"n" long:"max-iterations" description:"iteration budget, overrides the config"`
	Verbose       bool   `short:"v" long:"verbose" description:"log at debug level"`

	Ask     AskCmd     `command:"ask" description:"Answer a single question"`
	Chat    ChatCmd    `command:"chat" description:"Ask questions interactively"`
	History HistoryCmd `command:"history" description:"List or show stored sessions"`
}

func newOptions(ctx context.Context, a *app) *Options {
	o := &Options{}
	a.opts = o
	o.Ask.ctx, o.Ask.app = ctx, a
	o.Chat.ctx, o.Chat.app = ctx, a
	o.History.ctx, o.History.app = ctx, a
	return o
}

// AskCmd answers the question given as arguments.
type AskCmd struct {
	Args struct {
		Question []string `positional-arg-name:"question" required:"yes"`
	} `positional-args:"yes"`

	ctx context.Context
	app *app
}

func (c *AskCmd) Execute(_ []string) error {
	question := strings.TrimSpace(strings.Join(c.Args.Question, " "))
	if question == "" {
		return fmt.Errorf("question is empty")
	}
	rt, err := c.app.setup(c.ctx, askuser.NewIOPrompter(c.app.stdin, c.app.stdout))
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.ask(c.ctx, question)
	if err != nil {
		return err
	}
	printResult(c.app.stdout, result)
	return nil
}

// ChatCmd reads questions from the terminal until "exit".
type ChatCmd struct {
	ctx context.Context
	app *app
}

func (c *ChatCmd) Execute(_ []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: colorCyan + colorBold + "You: " + colorReset,
		Stdin:  readline.NewCancelableStdin(c.app.stdin),
		Stdout: c.app.stdout,

		FuncIsTerminal: func() bool {
			f, ok := c.app.stdin.(*os.File)
			return ok && readline.IsTerminal(int(f.Fd()))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	rt, err := c.app.setup(c.ctx, askuser.NewReadlinePrompter(rl))
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Fprintf(c.app.stdout, "%sAsk about UK government services. Type 'exit' to quit.%s\n\n", colorDim, colorReset)
	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Fprintf(c.app.stdout, "\n%sChat cancelled.%s\n", colorYellow, colorReset)
				return nil
			}
			// io.EOF
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Fprintf(c.app.stdout, "%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		}
		if err := c.ctx.Err(); err != nil {
			return err
		}

		result, err := rt.ask(c.ctx, input)
		if err != nil {
			fmt.Fprintf(c.app.stderr, "%sError: %v%s\n", colorRed, err, colorReset)
			continue
		}
		printResult(c.app.stdout, result)
		fmt.Fprintln(c.app.stdout)
	}
}

// HistoryCmd lists recent sessions from the DuckDB history, or prints one as
// Markdown.
type HistoryCmd struct {
	Limit int    `short:"l" long:"limit" default:"20" description:"number of sessions to list"`
	Show  string `long:"show" description:"print the session with this id"`

	ctx context.Context
	app *app
}

func (c *HistoryCmd) Execute(_ []string) error {
	cfg, err := c.app.loadConfig(c.ctx)
	if err != nil {
		return err
	}
	if cfg.History.DuckDB == "" {
		return fmt.Errorf("history.duckdb is not configured")
	}
	store, err := duckdb.Open(c.ctx, cfg.History.DuckDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if c.Show != "" {
		result, err := store.Get(c.ctx, c.Show)
		if err != nil {
			return err
		}
		fmt.Fprint(c.app.stdout, history.Markdown(result))
		return nil
	}

	sessions, err := store.List(c.ctx, c.Limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(c.app.stdout, "No sessions recorded.")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(c.app.stdout, "%s  %s  %-9s  %s\n",
			s.StartTime.Local().Format("2006-01-02 15:04"), s.ID, s.Status, s.Question)
	}
	return nil
}

