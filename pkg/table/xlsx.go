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

package table

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// 🔧 XLSXReader implements the Reader interface for Excel workbooks
type XLSXReader struct{}

func init() {
	Register(&XLSXReader{})
}

// 🔍 CanRead checks if this reader can handle the given file
func (r *XLSXReader) CanRead(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm")
}

// 📝 Read loads all rows from the first sheet of a workbook
func (r *XLSXReader) Read(ctx context.Context, path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Errorf("workbook has no sheets: %s", path)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row(rec))
	}
	return rows, nil
}
