package logger

import (
	"log/slog"
	"os"
)

var std = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Init replaces the default handler, used by server startup to switch
// between text (dev) and JSON output.
func Init(json bool) {
	if json {
		std = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
		return
	}
	std = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func Info(msg string, args ...any) {
	std.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	std.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	std.Error(msg, normalize(args)...)
}

// normalize tolerates call sites that pass a single bare error instead of
// key-value pairs.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	return append([]any{"error"}, args...)
}
