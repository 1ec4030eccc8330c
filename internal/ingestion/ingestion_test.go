package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/bsgreeks/internal/domain/models"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, content, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// workbook builds an in-memory XLSX whose first sheet holds rows.
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &r); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestFormatOf(t *testing.T) {
	cases := []struct {
		name string
		want Format
		err  bool
	}{
		{"options.csv", FormatCSV, false},
		{"OPTIONS.CSV", FormatCSV, false},
		{"book.xlsx", FormatXLSX, false},
		{"legacy.xls", "", true},
		{"notes.txt", "", true},
		{"noext", "", true},
	}
	for _, tc := range cases {
		got, err := FormatOf(tc.name)
		if tc.err {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", tc.name, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%s: got %q err %v", tc.name, got, err)
		}
	}
}

func TestLoadXLSX(t *testing.T) {
	data := workbook(t, [][]any{
		{"S", "K", "T", "r", "sigma", "option_type"},
		{100, 100, 1, 0.05, 0.2, "call"},
		{95.5, 100, 0.25, 0.01, nil, "put"},
		{nil, nil, nil, nil, nil, nil},
		{110, 100, 0.5},
	})

	b, err := Load(context.Background(), "book.xlsx", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(b.MissingColumns()) != 0 {
		t.Fatalf("header=%v", b.Header)
	}
	if len(b.Rows) != 3 {
		t.Fatalf("rows: want 3 got %d", len(b.Rows))
	}
	if r := b.Rows[0]; r.S != models.Float(100) || r.R != models.Float(0.05) || r.OptionType != "call" {
		t.Fatalf("row 0 = %+v", r)
	}
	if r := b.Rows[1]; r.S != models.Float(95.5) || r.Sigma.Valid {
		t.Fatalf("row 1 = %+v", r)
	}
	if r := b.Rows[2]; !r.T.Valid || r.R.Valid || r.OptionType != "" {
		t.Fatalf("row 2 = %+v", r)
	}
}

func TestLoadXLSX_NotAWorkbook(t *testing.T) {
	if _, err := LoadXLSX(context.Background(), strings.NewReader("S,K\n1,2\n")); err == nil {
		t.Fatalf("expected error for non-xlsx content")
	}
}

func TestLoadXLSX_EmptySheet(t *testing.T) {
	data := workbook(t, nil)
	if _, err := LoadXLSX(context.Background(), bytes.NewReader(data)); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	if _, err := Load(context.Background(), "prices.xls", strings.NewReader("")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad_WrapsReaderError(t *testing.T) {
	boom := errors.New("boom")
	old := loaders[FormatCSV]
	loaders[FormatCSV] = func(context.Context, io.Reader) (models.Batch, error) { return models.Batch{}, boom }
	t.Cleanup(func() { loaders[FormatCSV] = old })

	_, err := Load(context.Background(), "dir/in.csv", strings.NewReader(""))
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "in.csv") {
		t.Fatalf("expected wrapped error naming the file, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "batch.csv", []byte("S,K,T,r,sigma,option_type\n100,100,1,0.05,0.2,call\n"))

	b, err := LoadFile(context.Background(), p)
	if err != nil {
		t.Fatalf("LoadFile err: %v", err)
	}
	if len(b.Rows) != 1 {
		t.Fatalf("rows: want 1 got %d", len(b.Rows))
	}

	if _, err := LoadFile(context.Background(), filepath.Join(dir, "absent.csv")); err == nil {
		t.Fatalf("expected open error")
	}
	if _, err := LoadFile(context.Background(), writeFile(t, dir, "x.json", []byte("{}"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
