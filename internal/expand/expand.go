// Package expand detects and decompresses the embedded deflate block some
// replay revisions carry after a short uncompressed prolog. Expansion is
// best-effort: if no compressed section is found, or every decompression
// attempt fails validation, the raw bytes are returned unchanged so the
// rest of the pipeline can degrade gracefully.
package expand

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

const (
	// prologWindow bounds the scan for a compression-stream header.
	prologWindow = 64

	// minPlausibleSize rejects decompressed candidates too small to hold
	// even a bare header and player table.
	minPlausibleSize = 0x140

	// maxExpandedSize caps how much a single replay may inflate to.
	maxExpandedSize = 64 << 20
)

// Result describes the outcome of an expansion attempt.
type Result struct {
	Data       []byte
	Compressed bool     // a compressed section was detected
	Expanded   bool     // decompression succeeded and validated
	Notes      []string // recoverable problems, surfaced in parse stats
}

// Expand returns the decoded form of buf. The input is never modified.
func Expand(buf []byte) Result {
	off := findStreamHeader(buf)
	if off < 0 {
		return Result{Data: buf}
	}

	res := Result{Data: buf, Compressed: true}
	for _, attempt := range attempts(buf, off) {
		out, err := attempt.inflate()
		if err != nil && len(out) < minPlausibleSize {
			continue
		}
		// A truncated stream can still yield a usable prefix, so a
		// non-nil error with enough output is kept.
		if !plausible(out) {
			continue
		}
		res.Data = out
		res.Expanded = true
		return res
	}
	res.Notes = append(res.Notes, "compressed section detected but no decompression attempt validated; using raw bytes")
	return res
}

type attempt struct {
	name    string
	inflate func() ([]byte, error)
}

// attempts lists the parameterizations tried in order: zlib-wrapped at the
// detected offset, raw deflate at the detected offset, then both again from
// the start of the buffer for revisions without a prolog.
func attempts(buf []byte, off int) []attempt {
	list := []attempt{
		{"zlib@header", func() ([]byte, error) { return inflateZlib(buf[off:]) }},
		{"flate@header", func() ([]byte, error) { return inflateRaw(buf[off:]) }},
	}
	if off != 0 {
		list = append(list,
			attempt{"zlib@0", func() ([]byte, error) { return inflateZlib(buf) }},
			attempt{"flate@0", func() ([]byte, error) { return inflateRaw(buf) }},
		)
	}
	return list
}

func inflateZlib(b []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readCapped(r)
}

func inflateRaw(b []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(b))
	defer r.Close()
	return readCapped(r)
}

func readCapped(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, maxExpandedSize))
	return out, err
}

// findStreamHeader scans the prolog for a zlib stream header: 0x78 followed
// by a flag byte that makes the 16-bit header divisible by 31.
func findStreamHeader(buf []byte) int {
	limit := len(buf)
	if limit > prologWindow {
		limit = prologWindow
	}
	for i := 0; i+1 < limit; i++ {
		if buf[i] != 0x78 {
			continue
		}
		hdr := uint16(buf[i])<<8 | uint16(buf[i+1])
		if hdr%31 == 0 {
			return i
		}
	}
	return -1
}

// plausible applies a cheap shape check to decompressed output: replay
// records are a mix of zero padding and printable slot text, so both byte
// classes must fall in their typical frequency bands. This rejects garbage
// that merely decompressed without error.
func plausible(out []byte) bool {
	if len(out) < minPlausibleSize {
		return false
	}
	var printable, zero int
	for _, b := range out {
		switch {
		case b == 0:
			zero++
		case b >= 0x20 && b < 0x7F:
			printable++
		}
	}
	n := float64(len(out))
	printRatio := float64(printable) / n
	zeroRatio := float64(zero) / n
	return printRatio >= 0.02 && zeroRatio >= 0.02 && zeroRatio <= 0.98
}
