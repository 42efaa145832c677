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
	"encoding/csv"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔧 CSVReader implements the Reader interface for CSV files
type CSVReader struct{}

func init() {
	Register(&CSVReader{})
}

// 🔍 CanRead checks if this reader can handle the given file
func (r *CSVReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

// 📝 Read loads all rows from a CSV file
func (r *CSVReader) Read(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	// Schedule exports have ragged rows; accept any field count.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Errorf("parsing csv: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row(rec))
	}
	return rows, nil
}
