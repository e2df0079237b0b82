// Copyright 2025 The Crema Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	// ErrInvalidHandler indicates an unsupported handler type.
	ErrInvalidHandler = errors.New("invalid handler type")

	// ErrInvalidLevel indicates a level name that cannot be parsed.
	ErrInvalidLevel = errors.New("invalid log level")
)

const redacted = "***REDACTED***"

type config struct {
	handlerType    HandlerType
	output         io.Writer
	level          Level
	serviceName    string
	serviceVersion string
	addSource      bool
	replaceAttr    func(groups []string, a slog.Attr) slog.Attr
}

func defaultConfig() *config {
	return &config{
		handlerType: JSONHandler,
		output:      os.Stderr,
		level:       LevelInfo,
	}
}

// New creates a logger with the given options.
// The default is a JSON handler at info level writing to stderr.
func New(opts ...Option) (*slog.Logger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.output == nil {
		return nil, errors.New("output writer cannot be nil")
	}

	hopts := &slog.HandlerOptions{
		Level:       cfg.level,
		AddSource:   cfg.addSource,
		ReplaceAttr: cfg.buildReplaceAttr(),
	}

	var handler slog.Handler
	switch cfg.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(cfg.output, hopts)
	case TextHandler:
		handler = slog.NewTextHandler(cfg.output, hopts)
	case ConsoleHandler:
		handler = newConsoleHandler(cfg.output, hopts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandler, cfg.handlerType)
	}

	logger := slog.New(handler)

	var attrs []any
	if cfg.serviceName != "" {
		attrs = append(attrs, "service", cfg.serviceName)
	}
	if cfg.serviceVersion != "" {
		attrs = append(attrs, "version", cfg.serviceVersion)
	}
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}

	return logger, nil
}

// MustNew creates a logger or panics on error.
func MustNew(opts ...Option) *slog.Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

// ParseLevel converts a level name such as "debug" or "WARN" to a Level.
func ParseLevel(name string) (Level, error) {
	var l Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
	return l, nil
}

// ParseHandlerType validates a handler type name.
func ParseHandlerType(name string) (HandlerType, error) {
	switch t := HandlerType(strings.ToLower(name)); t {
	case JSONHandler, TextHandler, ConsoleHandler:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidHandler, name)
	}
}

func (c *config) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		switch strings.ToLower(a.Key) {
		case "password", "token", "secret", "api_key", "authorization", "cookie":
			return slog.String(a.Key, redacted)
		}
		if c.replaceAttr != nil {
			return c.replaceAttr(groups, a)
		}
		return a
	}
}
