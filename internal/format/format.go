// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format runs example code through an external code formatter with
// pluggable backends: clang-format on the host, clang-format inside a
// container, or no formatting at all.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/example-docs/internal/container"
	"github.com/pdiddy/example-docs/pkg/types"
)

// ErrFormatterUnavailable is matched by every error this package returns.
// Callers keep the unformatted text when they see it.
var ErrFormatterUnavailable = errors.New("code formatter unavailable")

// Formatter reformats source text. filename is a hint for language
// detection ("reduce.cu"); the file is never read.
type Formatter interface {
	Format(ctx context.Context, code, filename string) (string, error)
}

// Nop returns code unchanged.
type Nop struct{}

// Format implements Formatter.
func (Nop) Format(_ context.Context, code, _ string) (string, error) {
	return code, nil
}

// ClangFormatter pipes code through clang-format, either a host binary or a
// container image, depending on the runtime it was built with.
type ClangFormatter struct {
	runtime container.Runtime
	image   string
	style   string
	log     *zap.Logger
}

// NewClangFormatter verifies that image is usable in rt before returning.
// For the host runtime image is the binary name.
func NewClangFormatter(rt container.Runtime, image, style string, log *zap.Logger) (*ClangFormatter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("%w: %s in %s: %v", ErrFormatterUnavailable, image, rt.Name(), err)
	}
	return &ClangFormatter{runtime: rt, image: image, style: style, log: log}, nil
}

// Format implements Formatter. Empty input is returned as is.
func (c *ClangFormatter) Format(ctx context.Context, code, filename string) (string, error) {
	if code == "" {
		return code, nil
	}

	args := []string{"--assume-filename=" + filename}
	if c.style != "" {
		args = append(args, "--style="+c.style)
	}

	start := time.Now()
	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, args, strings.NewReader(code), &out); err != nil {
		return "", fmt.Errorf("%w: formatting %s: %v", ErrFormatterUnavailable, filename, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%w: %s produced empty output for %s", ErrFormatterUnavailable, c.image, filename)
	}

	c.log.Debug("formatted",
		zap.String("file", filename),
		zap.String("runtime", c.runtime.Name()),
		zap.Int("bytes_in", len(code)),
		zap.Int("bytes_out", out.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return out.String(), nil
}

// New builds the formatter selected by cfg. When the selected tool cannot be
// found the error wraps ErrFormatterUnavailable and the returned Formatter
// is a Nop, so callers may warn and carry on with it.
func New(cfg types.FormatterConfig, log *zap.Logger) (Formatter, error) {
	switch cfg.Backend {
	case types.FormatterNone:
		return Nop{}, nil

	case types.FormatterClang, "":
		f, err := NewClangFormatter(container.Host(), cfg.Binary, cfg.Style, log)
		if err != nil {
			return Nop{}, err
		}
		return f, nil

	case types.FormatterContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return Nop{}, fmt.Errorf("%w: %v", ErrFormatterUnavailable, err)
		}
		f, err := NewClangFormatter(rt, cfg.Image, cfg.Style, log)
		if err != nil {
			return Nop{}, err
		}
		return f, nil

	default:
		return Nop{}, fmt.Errorf("unknown formatter backend %q", cfg.Backend)
	}
}

// Apply formats code with f and falls back to the input on failure. The
// error, if any, is returned alongside the unchanged text for reporting.
func Apply(ctx context.Context, f Formatter, code, filename string) (string, error) {
	out, err := f.Format(ctx, code, filename)
	if err != nil {
		return code, err
	}
	return out, nil
}
