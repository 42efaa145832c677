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

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/drawingdeck/asbuilt/pkg/run"
)

// 🎯 Summary renders the post-run console tables: statistics, unmatched
// references, and per-file failures
func Summary(w io.Writer, data *run.Results) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Flat references processed", strconv.Itoa(data.Stats.Processed)},
			{"Matches found", strconv.Itoa(data.Stats.Matched)},
			{"References without match", strconv.Itoa(data.Stats.NotFound)},
			{"Copy errors", strconv.Itoa(data.Stats.CopyErrors)},
			{"Success rate", fmt.Sprintf("%.1f%%", data.Stats.SuccessRate())},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	if len(data.UnmatchedKeys) > 0 {
		rows := make([][]string, 0, len(data.UnmatchedKeys))
		for _, key := range data.UnmatchedKeys {
			rows = append(rows, []string{key, "no matching section title"})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderTable([]string{"Unmatched Reference", "Reason"}, rows, nil))
	}

	failures := data.Missing()
	failures = append(failures, data.CopyFailures()...)
	if len(failures) > 0 {
		rows := make([][]string, 0, len(failures))
		for _, o := range failures {
			rows = append(rows, []string{o.Key, o.Filename, o.Status.String(), o.Reason})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderTable([]string{"Reference", "Filename", "Status", "Detail"}, rows, nil))
	}

	if unused := data.UnusedSections(); len(unused) > 0 {
		fmt.Fprintf(w, "\n%d section drawing(s) in the register were not claimed by any reference\n", len(unused))
	}
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
