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

package schedule_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/drawingdeck/asbuilt/pkg/schedule"
	"github.com/drawingdeck/asbuilt/pkg/table"
)

// row builds a schedule row with the given column D value
func row(ref string) table.Row {
	return table.Row{"Plot 1", "Block A", "Level 2", ref}
}

func testCtx(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestExtractReferences(t *testing.T) {
	tests := []struct {
		name string
		rows []table.Row
		want []string
	}{
		{
			name: "basic_extraction",
			rows: []table.Row{
				row("Flat / House Ref"),
				row("HT A 1B2P"),
				row("HT B 2B3P"),
			},
			want: []string{"HT A 1B2P", "HT B 2B3P"},
		},
		{
			name: "deduplicates_preserving_first_seen_order",
			rows: []table.Row{
				row("HT B 2B3P"),
				row("HT A 1B2P"),
				row("HT B 2B3P"),
				row("HT A 1B2P"),
				row("HT C 3B4P"),
			},
			want: []string{"HT B 2B3P", "HT A 1B2P", "HT C 3B4P"},
		},
		{
			name: "trims_whitespace_before_dedup",
			rows: []table.Row{
				row("  HT A 1B2P  "),
				row("HT A 1B2P"),
			},
			want: []string{"HT A 1B2P"},
		},
		{
			name: "drops_empty_and_header_values",
			rows: []table.Row{
				row(""),
				row("   "),
				row("Flat / House Ref"),
				row("Flat 22"),
				row("HT A 1B2P"),
			},
			want: []string{"HT A 1B2P"},
		},
		{
			name: "header_prefix_filter_is_case_sensitive",
			rows: []table.Row{
				row("flat 9"),
				row("Flat 9"),
			},
			want: []string{"flat 9"},
		},
		{
			name: "short_rows_have_no_reference_column",
			rows: []table.Row{
				{"Plot 1", "Block A"},
				row("HT A 1B2P"),
			},
			want: []string{"HT A 1B2P"},
		},
		{
			name: "empty_input_yields_empty_result",
			rows: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.ExtractReferences(testCtx(t), tt.rows)
			assert.Equal(t, tt.want, got, "extracted references should match")
		})
	}
}

func TestExtractReferencesNoDuplicates(t *testing.T) {
	rows := []table.Row{
		row("HT A 1B2P"), row("HT B 2B3P"), row("HT A 1B2P"),
		row("HT C 3B4P"), row("HT B 2B3P"), row("HT A 1B2P"),
	}

	got := schedule.ExtractReferences(testCtx(t), rows)

	seen := make(map[string]bool)
	for _, ref := range got {
		assert.False(t, seen[ref], "reference %q should appear once", ref)
		seen[ref] = true
	}
}
