package archiveutil

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"time"
)

// FormatGzip heads a payload produced by the gzip builtin. The body is the
// base64 of a real gzip stream so sizes and ratios are honest.
const FormatGzip = "shellsim-gzip/1"

// ErrNotGzip is returned for content gzip did not produce.
var ErrNotGzip = errors.New("not in gzip format")

// mtime is stamped into every member so payloads are reproducible.
var mtime = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// IsGzip reports whether content is a gzip payload.
func IsGzip(content string) bool {
	return strings.HasPrefix(content, FormatGzip+"\n")
}

// Gzip compresses data at level (1-9) and records name as the original
// file name.
func Gzip(name, data string, level int) (string, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return "", err
	}
	w.Name = name
	w.ModTime = mtime
	if _, err := io.WriteString(w, data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return FormatGzip + "\n" + base64.StdEncoding.EncodeToString(buf.Bytes()) + "\n", nil
}

// Member describes a decompressed payload.
type Member struct {
	Name             string
	Data             string
	CompressedSize   int
	UncompressedSize int
}

// Ratio is the space saved, in percent.
func (m Member) Ratio() float64 {
	if m.UncompressedSize == 0 {
		return 0
	}
	return 100 * (1 - float64(m.CompressedSize)/float64(m.UncompressedSize))
}

// Gunzip reverses Gzip.
func Gunzip(content string) (Member, error) {
	if !IsGzip(content) {
		return Member{}, ErrNotGzip
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content[len(FormatGzip)+1:]))
	if err != nil {
		return Member{}, ErrNotGzip
	}
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return Member{}, ErrNotGzip
	}
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, maxArchiveBytes+1))
	if err != nil {
		return Member{}, errors.New("invalid compressed data--crc error")
	}
	if len(data) > maxArchiveBytes {
		return Member{}, errors.New("file too large")
	}
	return Member{
		Name:             r.Name,
		Data:             string(data),
		CompressedSize:   len(raw),
		UncompressedSize: len(data),
	}, nil
}
