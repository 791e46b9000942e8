package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssets(t *testing.T) {
	data := ArchiveAssets([]Asset{
		{Filename: "photoset-mug.png", MIME: "image/png", Data: []byte("one")},
		{Filename: "photoset-empty.png", MIME: "image/png"},
		{Filename: "photoset-bottle.png", MIME: "image/png", Data: []byte("two")},
	})

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("archive did not parse: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive has %d entries, want empty asset skipped", len(zr.File))
	}
	want := map[string]string{"photoset-mug.png": "one", "photoset-bottle.png": "two"}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, _ := io.ReadAll(rc)
		rc.Close()
		if string(content) != want[f.Name] {
			t.Fatalf("%s = %q, want %q", f.Name, content, want[f.Name])
		}
	}
}

func TestArchiveAssetsEmpty(t *testing.T) {
	data := ArchiveAssets(nil)
	if _, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		t.Fatalf("empty archive did not parse: %v", err)
	}
}
