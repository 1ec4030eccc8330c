package ingestion

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/bsgreeks/internal/domain/models"
	"github.com/guttosm/bsgreeks/internal/logger"
)

// LoadXLSX reads the first worksheet of a workbook. Cells are taken as raw
// values so number formats (percentages, thousands separators) do not leak
// into parsing. Row handling follows LoadCSV.
func LoadXLSX(ctx context.Context, src io.Reader) (models.Batch, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return models.Batch{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.L().Warn().Err(err).Msg("close workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return models.Batch{}, ErrEmptyFile
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Batch{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return models.Batch{}, ErrEmptyFile
	}

	header := rows[0]
	idx := indexHeader(header)

	batch := models.Batch{Header: header, Rows: make([]models.InputRow, 0, len(rows)-1)}
	for i, rec := range rows[1:] {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return models.Batch{}, err
			}
		}
		if isBlank(rec) {
			continue
		}
		batch.Rows = append(batch.Rows, recordToRow(idx, rec))
	}

	return batch, nil
}
