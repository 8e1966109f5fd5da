package samplesheet

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/plateworks/platemap"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// A table exported with WriteTable must load back and reproduce the same
// assignments on a fresh plate.
func TestLoadDelimitedRoundTrip(t *testing.T) {
	p, err := platemap.New(2, 3, "Plate7", "P-0007", platemap.SampleMap{"A1": "S001", "B3": "S006"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := p.WriteTable(&buf, ','); err != nil {
		t.Fatal(err)
	}

	src, err := Load(writeTemp(t, "plate.csv", buf.Bytes()), nil)
	if err != nil {
		t.Fatal(err)
	}

	table, ok := src.(platemap.SampleTable)
	if !ok {
		t.Fatalf("Load returned %T, expected a sample table", src)
	}
	if len(table) != 6 {
		t.Fatalf("loaded %d rows, expected 6", len(table))
	}

	fresh, err := platemap.New(2, 3, "Plate7", "P-0007", table)
	if err != nil {
		t.Fatal(err)
	}

	for i, w := range fresh.Wells {
		if w != p.Wells[i] {
			t.Fatalf("well %s round-tripped as %+v, expected %+v", p.Wells[i].WellIndex, w, p.Wells[i])
		}
	}
}

func TestLoadTSV(t *testing.T) {
	path := writeTemp(t, "sheet.tsv", []byte("well_index\tsample_id\nA1\tS001\nB1\t\n"))

	src, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	table := src.(platemap.SampleTable)
	if len(table) != 2 || table[0].SampleID.String != "S001" || table[1].SampleID.Valid {
		t.Fatalf("loaded %+v", table)
	}
}

// A gzip member records the original file name; the format comes from it
// even when the outer name is opaque.
func TestLoadGzipMemberName(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Name = "sheet.csv"
	if _, err := zw.Write([]byte("well_index,sample_id\nA1,S001\nB1,S002\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := Load(writeTemp(t, "opaque.gz", gz.Bytes()), nil)
	if err != nil {
		t.Fatal(err)
	}

	if table := src.(platemap.SampleTable); len(table) != 2 {
		t.Fatalf("loaded %d rows, expected 2", len(table))
	}
}

// Without a recorded member name, the format comes from the path with the
// container suffix stripped.
func TestLoadGzipSuffix(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write([]byte("well_index,sample_id\nA1,S001\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := Load(writeTemp(t, "sheet.csv.gz", gz.Bytes()), nil)
	if err != nil {
		t.Fatal(err)
	}

	if table := src.(platemap.SampleTable); len(table) != 1 || table[0].WellIndex != "A1" {
		t.Fatalf("loaded %+v", src)
	}
}

func TestLoadZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("final_plate_map.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte("well_index\tsample_id\nA1\tS001\nH12\tS096\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := Load(writeTemp(t, "delivery.zip", buf.Bytes()), nil)
	if err != nil {
		t.Fatal(err)
	}

	table := src.(platemap.SampleTable)
	if len(table) != 2 || table[1].WellIndex != "H12" || table[1].SampleID.String != "S096" {
		t.Fatalf("loaded %+v", table)
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for axis, val := range map[string]string{
		"A1": "well_index", "B1": "sample_id", "C1": "plate_name",
		"A2": "A1", "B2": "S001", "C2": "Plate7",
		"A3": "B1", // sample and plate cells left empty
	} {
		if err := f.SetCellValue(sheet, axis, val); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "maps.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	src, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	table := src.(platemap.SampleTable)
	if len(table) != 2 {
		t.Fatalf("loaded %d rows, expected 2", len(table))
	}
	if table[0].WellIndex != "A1" || table[0].SampleID.String != "S001" || table[0].PlateName.String != "Plate7" {
		t.Errorf("row 0 = %+v", table[0])
	}
	if table[1].WellIndex != "B1" || table[1].SampleID.Valid || table[1].PlateName.Valid {
		t.Errorf("row 1 = %+v, expected empty trailing cells to parse as null", table[1])
	}
}

func TestReadXLSXMissingColumns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "well_index"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "A2", "A1"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadXLSX(&buf); !errors.Is(err, platemap.ErrConfiguration) {
		t.Fatalf("ReadXLSX without sample_id: err = %v, expected ErrConfiguration", err)
	}
}

func TestReadXLSGarbage(t *testing.T) {
	if _, err := ReadXLS(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Fatal("ReadXLS accepted garbage")
	}
}

func TestLoadJSONMap(t *testing.T) {
	src, err := Load(writeTemp(t, "wells.json", []byte(`{"A1":"S001","H12":"S096"}`)), nil)
	if err != nil {
		t.Fatal(err)
	}

	m, ok := src.(platemap.SampleMap)
	if !ok {
		t.Fatalf("Load returned %T, expected a sample map", src)
	}
	if m["A1"] != "S001" || m["H12"] != "S096" {
		t.Fatalf("loaded %+v", m)
	}
}

func TestLoadJSONMalformed(t *testing.T) {
	_, err := Load(writeTemp(t, "wells.json", []byte(`["A1"]`)), nil)
	if !errors.Is(err, platemap.ErrInvalidInput) {
		t.Fatalf("Load of a JSON array: err = %v, expected ErrInvalidInput", err)
	}
}

func TestLoadUnrecognizedFormat(t *testing.T) {
	_, err := Load(writeTemp(t, "plate.parquet", []byte("PAR1")), nil)
	if !errors.Is(err, platemap.ErrInvalidInput) {
		t.Fatalf("Load of a parquet file: err = %v, expected ErrInvalidInput", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv"), nil); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}

func TestOpenBadGSPath(t *testing.T) {
	if _, err := Open("gs://bucket-without-object", nil); err == nil {
		t.Fatal("Open accepted a gs:// path with no object")
	}
}

func TestExpandHome(t *testing.T) {
	got, err := expandHome("/tmp/sheet.csv")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/sheet.csv" {
		t.Fatalf("expandHome rewrote an absolute path to %q", got)
	}

	got, err = expandHome("~/sheets/plate.csv")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(got, "~") || !strings.HasSuffix(got, filepath.Join("sheets", "plate.csv")) {
		t.Fatalf("expandHome(~/sheets/plate.csv) = %q", got)
	}
}

func TestDecompress(t *testing.T) {
	payload := []byte("well_index,sample_id\nA1,S001\n")

	out, member, err := decompress(payload)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) || member != "" {
		t.Fatalf("passthrough returned %q (member %q)", out, member)
	}

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Name = "sheet.csv"
	if _, err := gw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	out, member, err = decompress(gz.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) || member != "sheet.csv" {
		t.Fatalf("gzip returned %q (member %q)", out, member)
	}

	var zl bytes.Buffer
	zw := zlib.NewWriter(&zl)
	if _, err := zw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	out, member, err = decompress(zl.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) || member != "" {
		t.Fatalf("zlib returned %q (member %q)", out, member)
	}
}

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		data []byte
		want compression
	}{
		{[]byte("well_index,sample_id\n"), compressionNone},
		{[]byte{0x1f, 0x8b, 0x08, 0x00}, compressionGzip},
		{[]byte{0x50, 0x4b, 0x03, 0x04, 0x14}, compressionZip},
		{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, compressionXZ},
		{[]byte{0x42, 0x5a, 0x68, 0x39}, compressionBzip2},
		{[]byte{0x78, 0x9c, 0x01}, compressionZlib},
		{nil, compressionNone},
	}

	for _, tc := range tests {
		if got := detectCompression(tc.data); got != tc.want {
			t.Errorf("detectCompression(% x) = %d, expected %d", tc.data, got, tc.want)
		}
	}
}
