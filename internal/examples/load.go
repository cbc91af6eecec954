package examples

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// loads example pairs from a CSV, Parquet or JSON file, chosen by extension.
// a zero-byte file yields an empty store.
func Load(path string, schema Schema) (*Store, error) {
	schema = schema.withDefaults()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat examples file: %w", err)
	}

	if info.Size() == 0 {
		return Empty(), nil
	}

	var pairs []Pair

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		pairs, err = loadCSV(path, schema)
	case ".parquet":
		pairs, err = loadParquet(path, info.Size(), schema)
	case ".json":
		pairs, err = loadJSON(path, schema)
	default:
		return nil, fmt.Errorf("unsupported examples file extension %q", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return NewStore(pairs), nil
}

func loadCSV(path string, schema Schema) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close() //nolint:errcheck

	return readCSV(file, schema)
}

func readCSV(r io.Reader, schema Schema) ([]Pair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	questionIdx, queryIdx, err := columnIndexes(header, schema)
	if err != nil {
		return nil, err
	}

	var pairs []Pair

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(pairs)+2, err)
		}

		pairs = append(pairs, Pair{
			Question: field(record, questionIdx),
			Query:    field(record, queryIdx),
		})
	}

	return pairs, nil
}

func columnIndexes(header []string, schema Schema) (int, int, error) {
	questionIdx, queryIdx := -1, -1

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case schema.QuestionColumn:
			questionIdx = i
		case schema.QueryColumn:
			queryIdx = i
		}
	}

	if questionIdx < 0 || queryIdx < 0 {
		return 0, 0, fmt.Errorf("%w: want columns %q and %q, have %v", ErrSchema, schema.QuestionColumn, schema.QueryColumn, header)
	}

	return questionIdx, queryIdx, nil
}

// short rows read as blank fields
func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}

	return record[idx]
}

func loadJSON(path string, schema Schema) ([]Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	pairs := make([]Pair, 0, len(rows))

	for i, row := range rows {
		question, okQuestion := row[schema.QuestionColumn]
		query, okQuery := row[schema.QueryColumn]

		if !okQuestion || !okQuery {
			return nil, fmt.Errorf("%w: object %d lacks %q or %q", ErrSchema, i, schema.QuestionColumn, schema.QueryColumn)
		}

		pairs = append(pairs, Pair{Question: stringify(question), Query: stringify(query)})
	}

	return pairs, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func loadParquet(path string, size int64, schema Schema) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close() //nolint:errcheck

	return readParquet(file, size, schema)
}

func readParquet(r io.ReaderAt, size int64, schema Schema) ([]Pair, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	questionCol, okQuestion := pf.Schema().Lookup(schema.QuestionColumn)
	queryCol, okQuery := pf.Schema().Lookup(schema.QueryColumn)

	if !okQuestion || !okQuery {
		return nil, fmt.Errorf("%w: parquet schema lacks %q or %q", ErrSchema, schema.QuestionColumn, schema.QueryColumn)
	}

	var pairs []Pair

	buf := make([]parquet.Row, 128)

	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()

		for {
			n, err := rows.ReadRows(buf)

			for _, row := range buf[:n] {
				var pair Pair

				for _, v := range row {
					if v.IsNull() {
						continue
					}

					switch v.Column() {
					case questionCol.ColumnIndex:
						pair.Question = v.String()
					case queryCol.ColumnIndex:
						pair.Query = v.String()
					}
				}

				pairs = append(pairs, pair)
			}

			if errors.Is(err, io.EOF) {
				break
			}

			if err != nil {
				rows.Close() //nolint:errcheck
				return nil, fmt.Errorf("failed to read parquet rows: %w", err)
			}
		}

		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("failed to close parquet rows: %w", err)
		}
	}

	return pairs, nil
}
