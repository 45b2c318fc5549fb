// Package loggers provides hooks that log a session as it runs.
//
// [SlogHook] writes one structured record per event through log/slog and is
// what the reagent CLI uses. [YAMLHook] dumps every event in full as YAML,
// which is easier to read when debugging a prompt.
//
//	exec := executor.New(agent).
//	    RegisterHook(loggers.NewSlogHook(logger)).
//	    RegisterHook(loggers.NewYAMLHook(os.Stderr))
package loggers
