package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rickchristie/reagent"
	"github.com/rickchristie/reagent/agents/react"
	"github.com/rickchristie/reagent/config"
	"github.com/rickchristie/reagent/format"
	"github.com/rickchristie/reagent/history"
	"github.com/rickchristie/reagent/history/duckdb"
	"github.com/rickchristie/reagent/loggers"
	"github.com/rickchristie/reagent/models"
	"github.com/rickchristie/reagent/tools/askuser"
	"github.com/rickchristie/reagent/tools/govuk"
	"github.com/viant/afs"
)

// app holds the process streams and the parsed root options.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	opts   *Options

	// newModel is swapped in tests.
	newModel func(cfg config.ModelConfig) (reagent.Model, error)
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		newModel: func(cfg config.ModelConfig) (reagent.Model, error) {
			return models.NewOpenAI(cfg)
		},
	}
}

// loadConfig loads the config file and applies command line overrides.
func (a *app) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, a.opts.Config)
	if err != nil {
		return nil, err
	}
	if a.opts.Model != "" {
		cfg.Model.Name = a.opts.Model
	}
	if a.opts.MaxIterations > 0 {
		cfg.Agent.MaxIterations = a.opts.MaxIterations
	}
	if a.opts.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// runtime is everything a command needs to answer questions.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	agent    *react.Agent
	hooks    []any
	markdown *history.MarkdownWriter
	store    *duckdb.Store
}

// setup builds the agent, its tools and hooks, and opens the history stores.
func (a *app) setup(ctx context.Context, prompter askuser.Prompter) (*runtime, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireModel(); err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log, a.stderr)
	rt := &runtime{cfg: cfg, logger: logger}
	rt.hooks = append(rt.hooks, loggers.NewSlogHook(logger))
	if cfg.Log.YAML {
		rt.hooks = append(rt.hooks, loggers.NewYAMLHook(a.stderr))
	}

	model, err := a.newModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	parser, err := format.ParserByName(cfg.Agent.Parser)
	if err != nil {
		return nil, err
	}

	agent := react.NewAgent(model).
		WithParser(parser).
		WithMaxIterations(cfg.Agent.MaxIterations)
	if cfg.Agent.PromptTemplate != "" {
		text, err := afs.New().DownloadWithURL(ctx, config.ResolveURL(cfg.Agent.PromptTemplate))
		if err != nil {
			return nil, fmt.Errorf("read prompt template: %w", err)
		}
		if _, err := agent.WithPromptTemplateString(string(text)); err != nil {
			return nil, err
		}
	}

	client := &http.Client{Timeout: cfg.Search.Timeout()}
	if err := cfg.RequireSearch(); err == nil {
		agent.RegisterTool(govuk.NewSearchTool(cfg.Search, client).WithLogger(logger))
	} else {
		logger.Warn("search_govuk disabled", slog.Any("error", err))
	}
	agent.RegisterTool(govuk.NewServicesTool(cfg.Search, client))
	agent.RegisterTool(govuk.NewBankHolidaysTool(govuk.NewBankHolidays(cfg.Search, client, nil)))
	agent.RegisterTool(askuser.New(prompter))
	rt.agent = agent

	if cfg.History.MarkdownDir != "" {
		rt.markdown = history.NewMarkdownWriter(cfg.History.MarkdownDir)
	}
	if cfg.History.DuckDB != "" {
		if rt.store, err = duckdb.Open(ctx, cfg.History.DuckDB); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

// ask runs one question and records the result. Failing to record is logged,
// not returned.
func (rt *runtime) ask(ctx context.Context, question string) (*reagent.Result, error) {
	result, err := rt.agent.Run(ctx, question, rt.hooks...)
	if err != nil {
		return nil, err
	}
	if rt.markdown != nil {
		if url, err := rt.markdown.Write(ctx, result); err != nil {
			rt.logger.Error("markdown export failed", slog.Any("error", err))
		} else {
			rt.logger.Info("transcript saved", slog.String("url", url))
		}
	}
	if rt.store != nil {
		if err := rt.store.Save(ctx, result); err != nil {
			rt.logger.Error("history save failed", slog.Any("error", err))
		}
	}
	return result, nil
}

func (rt *runtime) Close() error {
	if rt.store != nil {
		return rt.store.Close()
	}
	return nil
}

// printResult prints the final answer, or "No answer found." with the reason.
func printResult(w io.Writer, result *reagent.Result) {
	if result.Answered() {
		fmt.Fprintf(w, "\n%s%sFinal Answer:%s %s\n", colorBold, colorGreen, colorReset,
			strings.TrimSpace(result.FinalAnswer))
		return
	}
	fmt.Fprintf(w, "\n%sNo answer found.%s\n", colorYellow, colorReset)
	if result.Reason != "" {
		fmt.Fprintf(w, "%s(%s after %d iterations)%s\n", colorDim, result.Reason, result.Iterations, colorReset)
	}
}
