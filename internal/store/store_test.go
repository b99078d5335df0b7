package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/textlab/internal/analysis"
	"github.com/nguyentantai21042004/textlab/internal/ome"
	"github.com/nguyentantai21042004/textlab/internal/prototype"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "analysis.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveReportAndLoadZones(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	res, err := ome.Compute([]string{"a", "b", "a", "c", "a"})
	if err != nil {
		t.Fatal(err)
	}
	zones, err := prototype.ClassifyResult(res)
	if err != nil {
		t.Fatal(err)
	}
	rep := &analysis.Report{Source: "corpus", Mode: analysis.ModeHapax, OME: res, Zones: zones}

	id, err := s.SaveReport(ctx, rep)
	if err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	tests := []struct {
		table string
		want  int
	}{
		{"runs", 1},
		{"words", 3},
		{"zone_entries", 5},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			got, err := s.CountRows(ctx, tt.table)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("CountRows(%s) = %d, want %d", tt.table, got, tt.want)
			}
		})
	}

	loaded, err := s.LoadZones(ctx, id)
	if err != nil {
		t.Fatalf("LoadZones() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, zones) {
		t.Errorf("LoadZones() = %+v, want %+v", loaded, zones)
	}
}

func TestLoadZonesMissingRun(t *testing.T) {
	_, err := openTemp(t).LoadZones(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("LoadZones() error = %v, want ErrNotFound", err)
	}
}

func TestCountRowsRejectsUnknownTable(t *testing.T) {
	_, err := openTemp(t).CountRows(context.Background(), "runs; DROP TABLE runs")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("CountRows() error = %v, want ErrInvalidInput", err)
	}
}
