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

// Package table loads tabular input files as plain rows of string fields.
package table

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 Row is a single record from a tabular file
type Row []string

// 🔍 Field returns the i-th field of the row, or "" when the row is too short
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// 🔌 Reader is the interface for tabular file readers
type Reader interface {
	// 📝 Read loads all rows from the file
	Read(ctx context.Context, path string) ([]Row, error)

	// 🔍 CanRead checks if this reader can handle the given file
	CanRead(filename string) bool
}

var (
	// 🗺️ readers is a list of available readers
	readers []Reader
)

// 📝 Register registers a reader
func Register(r Reader) {
	readers = append(readers, r)
}

// 🎯 GetReader returns a reader that can handle the given file
func GetReader(filename string) Reader {
	for _, r := range readers {
		if r.CanRead(filename) {
			return r
		}
	}
	return nil
}

// 🎯 Load loads all rows from a tabular file, picking a reader by extension
func Load(ctx context.Context, path string) ([]Row, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading table")

	r := GetReader(path)
	if r == nil {
		return nil, errors.Errorf("no reader found for file: %s", path)
	}

	rows, err := r.Read(ctx, path)
	if err != nil {
		return nil, errors.Errorf("reading table: %w", err)
	}

	logger.Info().Str("path", path).Int("rows", len(rows)).Msg("table loaded")
	return rows, nil
}
