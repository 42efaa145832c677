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

package match

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/drawingdeck/asbuilt/pkg/catalog"
)

// 📄 Record pairs a flat reference with a register entry whose title
// contains the derived pattern
type Record struct {
	Key      string // Flat reference
	Title    string // Matched drawing title
	Filename string // Stored drawing filename
	RowIndex int    // Register row the match came from
}

// 📄 SectionEntry is a register entry flagged as a section drawing,
// with its final used/unused state
type SectionEntry struct {
	catalog.Entry
	Used bool
}

// 📊 Result is everything the matcher learned about one run
type Result struct {
	Matches        []Record        // All matches, in key order then register order
	UnmatchedKeys  []string        // Keys with zero matching entries, in input order
	AllSections    []SectionEntry  // Every section-flagged entry with used/unused state
	UnusedSections []catalog.Entry // Section-flagged entries never claimed by any key
}

// 🔧 Matcher holds the literal text knobs for pattern derivation
type Matcher struct {
	// TitlePrefix is prepended to a key to derive its pattern, e.g. "Sections - "
	TitlePrefix string
	// SectionMarker flags a title as a section drawing, e.g. "Sections"
	SectionMarker string
}

// 🏭 New creates a matcher with the given pattern prefix and section marker
func New(titlePrefix, sectionMarker string) *Matcher {
	return &Matcher{TitlePrefix: titlePrefix, SectionMarker: sectionMarker}
}

// 🎯 Match correlates every key against every register entry.
//
// A key's pattern is TitlePrefix + key, tested as a case-insensitive LITERAL
// substring of the title; keys containing parentheses, slashes, or other
// metacharacters match exactly as written. Every matching entry is kept (a
// key can claim several entries, and an entry can be claimed by several keys
// when one key is a substring of another). Output order is deterministic:
// key input order, then register scan order.
func (m *Matcher) Match(ctx context.Context, keys []string, entries []catalog.Entry) Result {
	logger := zerolog.Ctx(ctx)

	// Lowered titles are reused across every key scan.
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = strings.ToLower(e.Title)
	}

	var res Result

	// Section candidates are tracked independently of the per-key loop so
	// the report can account for drawings no key ever claimed.
	marker := strings.ToLower(m.SectionMarker)
	sectionIdx := make(map[int]int) // entry index -> AllSections index
	for i, e := range entries {
		if strings.Contains(titles[i], marker) {
			sectionIdx[i] = len(res.AllSections)
			res.AllSections = append(res.AllSections, SectionEntry{Entry: e})
		}
	}

	for _, key := range keys {
		pattern := strings.ToLower(m.TitlePrefix + key)
		found := false
		for i, e := range entries {
			if !strings.Contains(titles[i], pattern) {
				continue
			}
			found = true
			res.Matches = append(res.Matches, Record{
				Key:      key,
				Title:    e.Title,
				Filename: e.Filename,
				RowIndex: e.Row,
			})
			if si, ok := sectionIdx[i]; ok {
				res.AllSections[si].Used = true
			}
			logger.Info().
				Str("key", key).
				Str("title", e.Title).
				Str("filename", e.Filename).
				Msg("match found")
		}
		if !found {
			res.UnmatchedKeys = append(res.UnmatchedKeys, key)
			logger.Warn().Str("key", key).Msg("no match found")
		}
	}

	for _, s := range res.AllSections {
		if !s.Used {
			res.UnusedSections = append(res.UnusedSections, s.Entry)
		}
	}

	logger.Info().
		Int("matches", len(res.Matches)).
		Int("unmatched_keys", len(res.UnmatchedKeys)).
		Int("unused_sections", len(res.UnusedSections)).
		Msg("matching complete")

	return res
}
