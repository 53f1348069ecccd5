// Package archiveutil holds the tar payload codec and the content checksum
// shared by tar, sha256sum and the validator.
package archiveutil

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

// FormatTar marks a payload produced by the tar builtin.
const FormatTar = "shellsim-tar/1"

// Compression markers name the -z and -J flags an archive was created
// with. tar itself never compresses; gzip wraps whole files.
const (
	CompressionNone = ""
	CompressionGzip = "gzip"
	CompressionXz   = "xz"
)

const (
	maxArchiveBytes  = 64 << 20
	checksumHexChars = 64
)

// Entry is one archived node.
type Entry struct {
	Path    string `json:"path"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Target  string `json:"target,omitempty"`
	Mode    string `json:"mode"`
}

// Entry types.
const (
	TypeFile    = "file"
	TypeDir     = "dir"
	TypeSymlink = "symlink"
)

// Archive is the JSON document stored as the archive file's content.
type Archive struct {
	Format      string   `json:"format"`
	Compression string   `json:"compression,omitempty"`
	Manifest    []string `json:"manifest"`
	Entries     []Entry  `json:"entries"`
}

// Encode serialises a.
func Encode(a *Archive) (string, error) {
	if a.Format == "" {
		a.Format = FormatTar
	}
	data, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	if len(data) > maxArchiveBytes {
		return "", fmt.Errorf("archive too large")
	}
	return string(data) + "\n", nil
}

// Decode parses archive content, unwrapping a gzip payload first. Anything
// that is not a tar payload is reported the way tar reports a foreign file.
func Decode(content string) (*Archive, error) {
	if IsGzip(content) {
		m, err := Gunzip(content)
		if err != nil {
			return nil, err
		}
		content = m.Data
	}
	var a Archive
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &a); err != nil || a.Format != FormatTar {
		return nil, fmt.Errorf("This does not look like a tar archive")
	}
	return &a, nil
}

// Checksum is a reproducible 64-hex-digit digest of data: four xxhash64
// lanes with distinct seeds, each hashed over the content and the previous
// lane. It is for grading only and has no cryptographic strength.
func Checksum(data string) string {
	var sb strings.Builder
	sb.Grow(checksumHexChars)
	var prev [8]byte
	for lane := uint64(0); lane < 4; lane++ {
		d := xxhash.NewWithSeed(0x9e3779b97f4a7c15 * (lane + 1))
		_, _ = d.Write(prev[:])
		_, _ = d.WriteString(data)
		sum := d.Sum64()
		binary.BigEndian.PutUint64(prev[:], sum)
		fmt.Fprintf(&sb, "%016x", sum)
	}
	return sb.String()
}
