package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/bsgreeks/internal/domain/models"
)

const utf8BOM = "\ufeff"

// columnIndex maps a batch column name to its position in the header, or -1.
type columnIndex struct {
	s, k, t, r, sigma, optionType int
}

// indexHeader normalizes header names in place (BOM stripped, spaces trimmed)
// and locates the known columns. Duplicated names resolve to the first one.
func indexHeader(header []string) columnIndex {
	idx := columnIndex{-1, -1, -1, -1, -1, -1}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		header[i] = h

		var slot *int
		switch h {
		case models.ColumnS:
			slot = &idx.s
		case models.ColumnK:
			slot = &idx.k
		case models.ColumnT:
			slot = &idx.t
		case models.ColumnR:
			slot = &idx.r
		case models.ColumnSigma:
			slot = &idx.sigma
		case models.ColumnOptionType:
			slot = &idx.optionType
		default:
			continue
		}
		if *slot < 0 {
			*slot = i
		}
	}
	return idx
}

// cell returns rec[i], or "" when the column is absent or the record is short.
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// recordToRow converts one record into an InputRow. It never fails: empty,
// unparseable and non-finite cells become missing values and the validator
// reports them.
func recordToRow(idx columnIndex, rec []string) models.InputRow {
	return models.InputRow{
		S:          models.ParseNullFloat64(cell(rec, idx.s)),
		K:          models.ParseNullFloat64(cell(rec, idx.k)),
		T:          models.ParseNullFloat64(cell(rec, idx.t)),
		R:          models.ParseNullFloat64(cell(rec, idx.r)),
		Sigma:      models.ParseNullFloat64(cell(rec, idx.sigma)),
		OptionType: cell(rec, idx.optionType),
	}
}

// isBlank reports whether every cell of rec is empty.
func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// LoadCSV reads a comma separated batch. The first record is the header.
//
// It fails on:
//   - an input without a header (ErrEmptyFile)
//   - malformed CSV (unterminated quotes and the like)
//
// It tolerates:
//   - rows shorter or longer than the header
//   - empty or non-numeric cells (they become missing values)
//
// Missing required columns are not checked here; the pricing engine reports
// them as a schema error.
func LoadCSV(ctx context.Context, src io.Reader) (models.Batch, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Batch{}, ErrEmptyFile
		}
		return models.Batch{}, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	idx := indexHeader(header)

	batch := models.Batch{Header: header}
	line := 1
	for {
		if (line-1)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return models.Batch{}, err
			}
		}

		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return models.Batch{}, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if isBlank(rec) {
			continue
		}
		batch.Rows = append(batch.Rows, recordToRow(idx, rec))
	}

	return batch, nil
}
