package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/httplog/v3"
)

type Options struct {
	App     string
	Version string
	Env     string
	Level   string
}

// New builds the JSON slog logger shared by the request logger and the
// services. Attributes follow the ECS schema; local runs get the concise form.
func New(w io.Writer, opts Options) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(opts.Env == "local")

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       ParseLevel(opts.Level),
	})).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
