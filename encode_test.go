package trackprep

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/tracklab/trackprep/date"
)

func TestWriteCSV(t *testing.T) {
	p := panelOf(
		[]string{"2024-01-02", "2024-01-03"},
		[]string{"A", "B"},
		[][]Cell{
			cells(cell(100.5), cell(101)),
			cells(undef, cell(20.25)),
		},
	)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, p); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	want := "Date,A,B\n2024-01-02,100.5,\n2024-01-03,101,20.25\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() = %q, want %q", buf.String(), want)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	p := panelOf(
		[]string{"2024-01-02", "2024-01-03", "2024-01-04"},
		[]string{"A", "B"},
		[][]Cell{
			cells(cell(1.25), undef, cell(3)),
			cells(cell(0.001), cell(0.002), undef),
		},
	)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, p); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if !slices.Equal(got.Dates(), p.Dates()) || !slices.Equal(got.Symbols(), p.Symbols()) {
		t.Fatalf("round trip shape = %v %v, want %v %v", got.Dates(), got.Symbols(), p.Dates(), p.Symbols())
	}
	for i := 0; i < p.Rows(); i++ {
		for j := 0; j < p.Cols(); j++ {
			if got.At(i, j) != p.At(i, j) {
				t.Errorf("round trip cell %d,%d = %+v, want %+v", i, j, got.At(i, j), p.At(i, j))
			}
		}
	}
}

func TestDatasetSave(t *testing.T) {
	ds, err := Prepare(fixtureFetcher(), fixtureConfig())
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	dir := t.TempDir()
	written, err := ds.Save(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	wantNames := []string{AssetPricesFile, IndexPricesFile, AssetReturnsFile, IndexReturnsFile, MetadataFile}
	if len(written) != len(wantNames) {
		t.Fatalf("Save() wrote %d files, want %d", len(written), len(wantNames))
	}
	for i, path := range written {
		if filepath.Base(path) != wantNames[i] {
			t.Errorf("written[%d] = %s, want %s", i, filepath.Base(path), wantNames[i])
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output %s: %v", path, err)
		}
	}

	// Metadata must decode back to the record that was written.
	data, err := os.ReadFile(written[len(written)-1])
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	if meta.IndexSymbol != "IDX" || meta.Observations != 2 || meta.Frequency != "D" {
		t.Errorf("metadata = %+v, want IDX/2/D", meta)
	}
	if meta.Start != date.MustParse("2024-01-01") || meta.End != date.MustParse("2024-01-31") {
		t.Errorf("metadata range = %v..%v, want 2024-01-01..2024-01-31", meta.Start, meta.End)
	}
	if !strings.HasSuffix(meta.GeneratedAt, "Z") {
		t.Errorf("generated_at = %q, want UTC timestamp ending in Z", meta.GeneratedAt)
	}

	// The persisted return tables load back fully aligned and defined.
	index, assets, err := LoadReturns(written[3], written[2])
	if err != nil {
		t.Fatalf("LoadReturns() error = %v", err)
	}
	if index.Rows() != 2 || assets.Rows() != 2 {
		t.Errorf("reloaded rows = %d, %d, want 2, 2", index.Rows(), assets.Rows())
	}
}
