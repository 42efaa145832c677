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

package table_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/drawingdeck/asbuilt/pkg/table"
)

func testCtx(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing csv fixture")
	return path
}

func writeXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err, "computing cell name")
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row), "setting sheet row")
	}
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, f.SaveAs(path), "saving xlsx fixture")
	return path
}

func TestRowField(t *testing.T) {
	row := table.Row{"a", "b", "c"}

	assert.Equal(t, "b", row.Field(1), "in-range index returns the field")
	assert.Equal(t, "", row.Field(3), "out-of-range index returns empty")
	assert.Equal(t, "", row.Field(-1), "negative index returns empty")
	assert.Equal(t, "", table.Row(nil).Field(0), "nil row returns empty")
}

func TestGetReader(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		found    bool
	}{
		{"csv", "schedule.csv", true},
		{"csv_uppercase", "SCHEDULE.CSV", true},
		{"xlsx", "schedule.xlsx", true},
		{"xlsx_uppercase", "SCHEDULE.XLSX", true},
		{"unsupported", "schedule.txt", false},
		{"no_extension", "schedule", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := table.GetReader(tt.filename)
			if tt.found {
				assert.NotNil(t, r, "a reader should handle %s", tt.filename)
				assert.True(t, r.CanRead(tt.filename), "selected reader should accept the file")
			} else {
				assert.Nil(t, r, "no reader should handle %s", tt.filename)
			}
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "Block,Level,Plot,Flat / House Ref\nA,00,1,Flat 1\nA,00,2,\"Flat 2, rev\"\n")

	rows, err := table.Load(testCtx(t), path)
	require.NoError(t, err, "load should succeed")

	require.Len(t, rows, 3, "header plus two data rows")
	assert.Equal(t, "Flat / House Ref", rows[0].Field(3), "header cell")
	assert.Equal(t, "Flat 1", rows[1].Field(3), "first data cell")
	assert.Equal(t, "Flat 2, rev", rows[2].Field(3), "quoted comma should survive parsing")
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeCSV(t, "a,b,c,d\nshort,row\n1,2,3,4,5\n")

	rows, err := table.Load(testCtx(t), path)
	require.NoError(t, err, "ragged rows should be accepted")

	require.Len(t, rows, 3, "all rows should load")
	assert.Equal(t, "", rows[1].Field(3), "missing field reads as empty")
	assert.Equal(t, "5", rows[2].Field(4), "extra field is preserved")
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"Filename", "Drawing Title"},
		{"ARC-101", "Sections - HT A 1B2P"},
		{"ARC-102", "Elevations - HT B 2B3P"},
	})

	rows, err := table.Load(testCtx(t), path)
	require.NoError(t, err, "load should succeed")

	require.Len(t, rows, 3, "header plus two data rows")
	assert.Equal(t, "ARC-101", rows[1].Field(0), "filename cell")
	assert.Equal(t, "Sections - HT A 1B2P", rows[1].Field(1), "title cell")
}

func TestLoadErrors(t *testing.T) {
	t.Run("unsupported_format", func(t *testing.T) {
		_, err := table.Load(testCtx(t), "schedule.txt")
		require.Error(t, err, "unsupported extension should fail")
		assert.Contains(t, err.Error(), "no reader found", "error should name the cause")
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := table.Load(testCtx(t), filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err, "missing file should fail")
	})
}
