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

// Package materialize copies matched drawings into the output tree under a
// deterministic name. Every failure is captured as an Outcome value; nothing
// here aborts a run.
package materialize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/drawingdeck/asbuilt/pkg/match"
)

// 📊 Status tags the result of one materialization attempt
type Status int

const (
	StatusUnknown       Status = iota
	StatusCopied               // Source found and copied to the output tree
	StatusSourceMissing        // Match found but the source file is absent
	StatusCopyError            // Directory creation or copy failed
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusSourceMissing:
		return "source missing"
	case StatusCopyError:
		return "copy error"
	default:
		return "unknown"
	}
}

// 📄 Outcome records one attempted copy
type Outcome struct {
	Status      Status
	Key         string // Flat reference the match belongs to
	Title       string // Matched drawing title
	Filename    string // Filename as stored in the register
	NewFilename string // Derived output filename (empty unless copied)
	SourcePath  string // Resolved (or expected) source path
	DestPath    string // Final destination path (empty unless copied)
	DestDir     string // Output subdirectory for the key
	Reason      string // Error description for non-success outcomes
}

// 🔧 Materializer copies matched files into the output tree
type Materializer struct {
	CatalogDir  string   // Where source drawings live
	OutputDir   string   // Root of the output tree
	DrawingType string   // Output filename prefix, e.g. "sections"
	Extensions  []string // Candidate source extensions, tried in order
}

// 🏭 New creates a materializer
func New(catalogDir, outputDir, drawingType string, extensions []string) *Materializer {
	if len(extensions) == 0 {
		extensions = []string{".pdf"}
	}
	return &Materializer{
		CatalogDir:  catalogDir,
		OutputDir:   outputDir,
		DrawingType: drawingType,
		Extensions:  extensions,
	}
}

// 🎯 Materialize copies one matched drawing into OutputDir/<key>/ under its
// derived name. Re-running with identical inputs overwrites the destination
// with identical content. All failures come back as Outcome values.
func (m *Materializer) Materialize(ctx context.Context, rec match.Record) Outcome {
	logger := zerolog.Ctx(ctx)

	out := Outcome{
		Key:      rec.Key,
		Title:    rec.Title,
		Filename: rec.Filename,
		DestDir:  filepath.Join(m.OutputDir, rec.Key),
	}

	if err := os.MkdirAll(out.DestDir, 0755); err != nil {
		out.Status = StatusCopyError
		out.Reason = fmt.Sprintf("creating output directory: %v", err)
		logger.Error().Str("dir", out.DestDir).Err(err).Msg("creating output directory")
		return out
	}

	srcName, srcPath, found := m.resolveSource(rec.Filename)
	out.SourcePath = srcPath
	if !found {
		out.Status = StatusSourceMissing
		out.Reason = "file not found in catalog directory"
		logger.Error().Str("path", srcPath).Msg("source file not found")
		return out
	}

	out.NewFilename = OutputName(m.DrawingType, rec.Key, srcName)
	out.DestPath = filepath.Join(out.DestDir, out.NewFilename)

	if err := copyFileAtomic(srcPath, out.DestPath); err != nil {
		out.Status = StatusCopyError
		out.Reason = err.Error()
		out.DestPath = ""
		out.NewFilename = ""
		logger.Error().Str("src", srcPath).Err(err).Msg("copying file")
		return out
	}

	out.Status = StatusCopied
	logger.Info().Str("src", srcPath).Str("dst", out.DestPath).Msg("file copied")
	return out
}

// 🔍 resolveSource finds the source file under CatalogDir, forcing each
// candidate extension in turn. The first candidate's path is reported as the
// expected path when nothing exists.
// TODO: fall back to the stored extension when it is real but not in the
// candidate list, instead of reporting the file missing.
func (m *Materializer) resolveSource(filename string) (name, path string, found bool) {
	var first string
	for i, ext := range m.Extensions {
		candidate := filename
		if !strings.HasSuffix(strings.ToLower(candidate), strings.ToLower(ext)) {
			candidate += ext
		}
		p := filepath.Join(m.CatalogDir, candidate)
		if i == 0 {
			first = p
		}
		if _, err := os.Stat(p); err == nil {
			return candidate, p, true
		}
	}
	return "", first, false
}

// 📝 OutputName derives the destination filename:
// <drawingType>_<key without whitespace>_<source base><source ext>.
// The extension defaults to ".pdf" when the source name has no dot.
func OutputName(drawingType, key, sourceName string) string {
	house := strings.Join(strings.Fields(key), "")

	base := sourceName
	ext := ".pdf"
	if i := strings.LastIndex(sourceName, "."); i >= 0 {
		base = sourceName[:i]
		ext = sourceName[i:]
	}

	return fmt.Sprintf("%s_%s_%s%s", drawingType, house, base, ext)
}

// 📝 copyFileAtomic copies src to dst through a temp file + rename so a
// failed copy never leaves a partial file visible under the final name.
// The source mod time is carried over on a best-effort basis.
func copyFileAtomic(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return errors.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return errors.Errorf("renaming temp file: %w", err)
	}

	_ = os.Chtimes(dst, time.Now(), info.ModTime())
	return nil
}
