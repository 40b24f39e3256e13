// Package csvio reads and writes the six-column review CSV shape.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"metafix/internal/model"
)

// Read loads one CSV file into a Dataset. The six canonical columns
// are located by header name; extra columns are discarded and a missing
// canonical column is an error. Numeric cells are coerced leniently —
// a malformed number becomes an absent value, never a failure.
func Read(path string) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; missing cells read as empty

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range model.Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	cell := func(row []string, col string) string {
		if i := idx[col]; i < len(row) {
			return row[i]
		}
		return ""
	}

	var ds model.Dataset
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		ds = append(ds, model.Record{
			Title:       cell(row, "movie_title"),
			ReleaseYear: model.ParseOptInt(cell(row, "release_year")),
			Metascore:   model.ParseOptInt(cell(row, "metascore")),
			Publication: cell(row, "critic_publication"),
			Author:      cell(row, "critic_author"),
			CriticScore: model.ParseOptInt(cell(row, "critic_score")),
		})
	}
	return ds, nil
}

// Write persists a Dataset in the canonical column order. Integer
// columns render without decimal points; absent values render empty.
func Write(path string, ds model.Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(model.Columns); err != nil {
		return fmt.Errorf("write header %s: %w", path, err)
	}
	for _, rec := range ds {
		row := []string{
			rec.Title,
			rec.ReleaseYear.String(),
			rec.Metascore.String(),
			rec.Publication,
			rec.Author,
			rec.CriticScore.String(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
