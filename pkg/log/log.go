// Copyright 2025 drawingdeck
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

// Package log layers user-facing console output over structured zerolog
// logging. Every console line is mirrored into zerolog so a log file keeps
// the full picture.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent copy entries
	nameWidth  = 40 // Base width for filenames
	keyWidth   = 14 // Width for flat references
)

// 🎯 CopyOperation represents one attempted drawing copy for logging
type CopyOperation struct {
	Key         string // Flat reference
	Filename    string // Register filename
	NewFilename string // Derived output filename (empty unless copied)
	Status      string // Outcome status text
	IsMissing   bool   // Source file absent
	IsFailed    bool   // Copy failed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding logger
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, zerolog.Nop())
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatCopyOperation formats a copy operation for display
func (l *Logger) formatCopyOperation(op CopyOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsMissing:
		symbol = '?'
		symbolColor = color.FgYellow
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	name := op.NewFilename
	if name == "" {
		name = op.Filename
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", keyWidth, op.Key),
		fmt.Sprintf("%-*s", nameWidth, name),
		color.New(color.Faint).Sprint(op.Status))
}

// 📝 LogCopyOperation logs one attempted copy
func (l *Logger) LogCopyOperation(ctx context.Context, op CopyOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatCopyOperation(op))

	l.zlog.Info().
		Str("key", op.Key).
		Str("filename", op.Filename).
		Str("new_filename", op.NewFilename).
		Str("status", op.Status).
		Bool("is_missing", op.IsMissing).
		Bool("is_failed", op.IsFailed).
		Msg("copy operation")
}

// 📝 Header logs a section header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	toolText := color.New(color.Bold, color.FgCyan).Sprint("asbuilt")
	fmt.Fprintf(l.console, "\n%s %s\n\n", toolText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
