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

// Package catalog models the architect drawing register: one entry per row,
// filename in column A and title in column B.
package catalog

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/drawingdeck/asbuilt/pkg/table"
)

const (
	// FilenameColumn is the 0-indexed column holding drawing filenames (column A)
	FilenameColumn = 0
	// TitleColumn is the 0-indexed column holding drawing titles (column B)
	TitleColumn = 1
)

// 📄 Entry is one row of the drawing register, immutable for the run
type Entry struct {
	Filename string // Stored filename, possibly without extension
	Title    string // Drawing title, matched against reference patterns
	Row      int    // Source row index in the register
}

// 🎯 Load builds catalog entries from register rows. The first row is the
// header and is skipped; rows with neither filename nor title are dropped.
// Entries whose title matches one of the exclude glob patterns are skipped.
func Load(ctx context.Context, rows []table.Row, excludeTitles []string) []Entry {
	logger := zerolog.Ctx(ctx)

	var entries []Entry
	for i, row := range rows {
		if i == 0 {
			continue
		}
		filename := strings.TrimSpace(row.Field(FilenameColumn))
		title := strings.TrimSpace(row.Field(TitleColumn))
		if filename == "" && title == "" {
			continue
		}
		if excluded(ctx, title, excludeTitles) {
			continue
		}
		entries = append(entries, Entry{Filename: filename, Title: title, Row: i})
	}

	logger.Info().Int("entries", len(entries)).Msg("loaded drawing register")
	return entries
}

// 🔍 excluded checks a title against the configured exclude patterns
func excluded(ctx context.Context, title string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	logger := zerolog.Ctx(ctx)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, title)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("title", title).Err(err).Msg("error matching exclude pattern")
			continue
		}
		if matched {
			logger.Debug().Str("title", title).Str("pattern", pattern).Msg("entry excluded by pattern")
			return true
		}
	}
	return false
}

// 📂 ScanDir lists files under dir matching the given glob patterns,
// sorted and deduplicated. An empty pattern list matches everything.
func ScanDir(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"**/*"}
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(dir), pattern)
		if err != nil {
			return nil, errors.Errorf("globbing %s: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}
