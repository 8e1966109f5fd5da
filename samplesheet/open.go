package samplesheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/plateworks/platemap"
)

// Format enumerates the sample sheet payloads Load understands.
type Format int

const (
	FormatUnknown Format = iota
	FormatDelimited
	FormatXLS
	FormatXLSX
	FormatJSONMap
)

func (f Format) String() string {
	switch f {
	case FormatDelimited:
		return "delimited text"
	case FormatXLS:
		return "xls workbook"
	case FormatXLSX:
		return "xlsx workbook"
	case FormatJSONMap:
		return "json well map"
	}

	return "unknown"
}

// DetectFormat maps a file name to its sheet format by extension.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".tsv", ".txt":
		return FormatDelimited
	case ".xls":
		return FormatXLS
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSONMap
	}

	return FormatUnknown
}

// expandHome expands a leading ~/ to the current user's home directory.
func expandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", pfx.Err(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path, nil
}

// Open opens a local path (with ~ expansion) or, for gs:// paths, a Google
// Storage object. A nil client causes one to be created with default
// credentials; callers opening many objects should construct and share
// their own.
func Open(path string, client *storage.Client) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "gs://") {
		path, err := expandHome(path)
		if err != nil {
			return nil, err
		}

		return os.Open(path)
	}

	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 {
		return nil, fmt.Errorf("expected gs://bucket/path, got %q", path)
	}

	ctx := context.Background()
	if client == nil {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return nil, pfx.Err(err)
		}
	}

	rdr, err := client.Bucket(pathParts[0]).Object(pathParts[1]).NewReader(ctx)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
	}

	return rdr, nil
}

// Load runs the full ingestion pipeline for one sheet: open the path
// (local or gs://), unwrap any compression, and parse according to the
// effective file extension. The result is ready for Plate.AssignSamples.
// Unrecognized formats fail with ErrInvalidInput.
func Load(path string, client *storage.Client) (platemap.SampleSource, error) {
	rc, err := Open(path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(err)
	}

	name := path
	if DetectFormat(name) == FormatUnknown {
		// Likely a compressed payload named e.g. sheet.csv.gz or sheet.zip.
		// Unwrap once and let the recorded member name, or the name with
		// the container suffix stripped, decide the format.
		payload, member, err := decompress(raw)
		if err != nil {
			return nil, err
		}
		raw = payload
		if member != "" {
			name = member
		} else {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}
	}

	switch DetectFormat(name) {
	case FormatDelimited:
		table, err := parseDelimited(raw)
		if err != nil {
			return nil, err
		}
		return table, nil
	case FormatXLS:
		table, err := ReadXLS(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		return table, nil
	case FormatXLSX:
		table, err := ReadXLSX(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		return table, nil
	case FormatJSONMap:
		m, err := ReadJSONMap(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	return nil, fmt.Errorf("%w: unrecognized sample sheet format for %q", platemap.ErrInvalidInput, path)
}
