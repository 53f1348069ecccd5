package archiveutil

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecode(t *testing.T) {
	a := &Archive{
		Compression: CompressionGzip,
		Manifest:    []string{"f1", "dir", "dir/f2"},
		Entries: []Entry{
			{Path: "f1", Type: TypeFile, Content: "one\n", Mode: "644"},
			{Path: "dir", Type: TypeDir, Mode: "755"},
			{Path: "dir/f2", Type: TypeFile, Content: "", Mode: "600"},
		},
	}
	data, err := Encode(a)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Fatalf("archive mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsForeignContent(t *testing.T) {
	for _, in := range []string{"", "hello", `{"format":"zip"}`} {
		if _, err := Decode(in); err == nil {
			t.Errorf("Decode(%q) should fail", in)
		}
	}
}

func TestChecksum(t *testing.T) {
	hex := regexp.MustCompile(`^[0-9a-f]{64}$`)
	a := Checksum("hello\n")
	if !hex.MatchString(a) {
		t.Fatalf("checksum %q is not 64 hex digits", a)
	}
	if a != Checksum("hello\n") {
		t.Fatal("checksum is not deterministic")
	}
	if a == Checksum("hello") {
		t.Fatal("different content produced the same checksum")
	}
	if Checksum("")[:16] == Checksum("")[16:32] {
		t.Fatal("lanes should differ")
	}
}
