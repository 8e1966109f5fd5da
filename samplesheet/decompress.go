package samplesheet

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// Compression containers recognized by their magic bytes. Sheets routinely
// arrive gzipped or zipped; the others cost nothing extra to accept.
type compression byte

const (
	compressionNone compression = iota
	compressionGzip
	compressionZip
	compressionXZ
	compressionZlib
	compressionBzip2
)

var magicNumbers = []struct {
	kind compression
	sig  []byte
}{
	{compressionGzip, []byte{0x1f, 0x8b, 0x08}},
	{compressionZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{compressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{compressionBzip2, []byte{0x42, 0x5a, 0x68}},
	{compressionZlib, []byte{0x78, 0x01}},
	{compressionZlib, []byte{0x78, 0x9c}},
	{compressionZlib, []byte{0x78, 0xda}},
}

// detectCompression sniffs the leading bytes of data against the known
// container signatures. Plain data yields compressionNone.
func detectCompression(data []byte) compression {
	for _, m := range magicNumbers {
		if bytes.HasPrefix(data, m.sig) {
			return m.kind
		}
	}

	return compressionNone
}

// decompress unwraps one layer of compression, returning the payload and,
// when the container records one (zip members, gzip's optional name), the
// original file name whose extension identifies the inner format.
// Uncompressed data passes through untouched.
func decompress(data []byte) (payload []byte, member string, err error) {
	switch detectCompression(data) {
	case compressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		return out, zr.Name, nil

	case compressionZip:
		zr := zipstream.NewReader(bytes.NewReader(data))
		hdr, err := zr.Next()
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		return out, hdr.Name, nil

	case compressionXZ:
		xr, err := xz.NewReader(bytes.NewReader(data), 0)
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		out, err := io.ReadAll(xr)
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		return out, "", nil

	case compressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		return out, "", nil

	case compressionBzip2:
		out, err := io.ReadAll(bzip2.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, "", pfx.Err(err)
		}
		return out, "", nil
	}

	return data, "", nil
}
