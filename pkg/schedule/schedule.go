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

// Package schedule extracts flat/house references from the accommodation
// schedule table.
package schedule

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/drawingdeck/asbuilt/pkg/table"
)

const (
	// ReferenceColumn is the 0-indexed column holding flat references (column D)
	ReferenceColumn = 3

	// headerLabel is the exact header cell text for the reference column
	headerLabel = "Flat / House Ref"
	// headerPrefix catches stray header fragments when the sheet structure is irregular
	headerPrefix = "Flat"
)

// 🎯 ExtractReferences pulls the deduplicated, ordered flat references from
// the schedule rows. Values are trimmed; empty cells, the header label, and
// anything starting with "Flat" are dropped. First-seen order is preserved.
// An empty result is not an error here; the caller decides whether to abort.
func ExtractReferences(ctx context.Context, rows []table.Row) []string {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]bool)
	var refs []string
	for _, row := range rows {
		ref := strings.TrimSpace(row.Field(ReferenceColumn))
		if ref == "" {
			continue
		}
		// The header filter is a heuristic against re-included header rows,
		// not a schema validator.
		if ref == headerLabel || strings.HasPrefix(ref, headerPrefix) {
			continue
		}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}

	logger.Info().Int("count", len(refs)).Msg("extracted flat references")
	if len(refs) > 0 {
		sample := refs
		if len(sample) > 5 {
			sample = sample[:5]
		}
		logger.Debug().Strs("sample", sample).Msg("sample references")
	}

	return refs
}
