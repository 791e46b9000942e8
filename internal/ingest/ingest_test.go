package ingest

import (
	"encoding/base64"
	"strings"
	"testing"
)

// pngBytes carries a real PNG signature so content sniffing classifies it as
// an image.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), []byte("payload")...)

func TestConvertDeclaredMIME(t *testing.T) {
	img, err := Convert(File{Name: "shoe.jpg", MIME: "image/jpeg", Data: []byte("jpeg-bytes")})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if img.ID == "" {
		t.Fatal("Convert produced an empty id")
	}
	if img.Filename != "shoe.jpg" || img.MIMEType != "image/jpeg" {
		t.Fatalf("converted image = %q/%q", img.Filename, img.MIMEType)
	}
	wantB64 := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	if img.Base64 != wantB64 {
		t.Fatalf("Base64 = %q, want %q", img.Base64, wantB64)
	}
	if img.DataURL != "data:image/jpeg;base64,"+wantB64 {
		t.Fatalf("DataURL = %q", img.DataURL)
	}
}

func TestConvertSniffsMissingMIME(t *testing.T) {
	img, err := Convert(File{Name: "scan", Data: pngBytes})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if img.MIMEType != "image/png" {
		t.Fatalf("sniffed MIME = %q, want image/png", img.MIMEType)
	}
}

func TestConvertSniffsGenericMIME(t *testing.T) {
	// multipart form writers declare application/octet-stream by default; the
	// content decides, not the declared type.
	img, err := Convert(File{Name: "upload", MIME: "application/octet-stream", Data: pngBytes})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if img.MIMEType != "image/png" {
		t.Fatalf("sniffed MIME = %q, want image/png", img.MIMEType)
	}

	if _, err := Convert(File{Name: "upload", MIME: "application/octet-stream", Data: []byte("plain text")}); err == nil {
		t.Fatal("Convert accepted non-image bytes behind a generic type")
	}
}

func TestConvertRejectsNonImage(t *testing.T) {
	if _, err := Convert(File{Name: "notes.txt", MIME: "text/plain", Data: []byte("hello")}); err == nil {
		t.Fatal("Convert accepted a text file")
	}
	if _, err := Convert(File{Name: "empty.png", MIME: "image/png"}); err == nil {
		t.Fatal("Convert accepted an empty file")
	}
}

func TestConvertAllFiltersAndPreservesOrder(t *testing.T) {
	files := []File{
		{Name: "a.png", MIME: "image/png", Data: []byte("a")},
		{Name: "doc.pdf", MIME: "application/pdf", Data: []byte("pdf")},
		{Name: "b.jpg", MIME: "image/jpeg", Data: []byte("b")},
		{Name: "sniffed", Data: pngBytes},
		{Name: "generic.png", MIME: "application/octet-stream", Data: pngBytes},
	}

	images := ConvertAll(files)
	if len(images) != 4 {
		t.Fatalf("ConvertAll kept %d files, want 4", len(images))
	}
	got := make([]string, len(images))
	for i, img := range images {
		got[i] = img.Filename
	}
	if want := "a.png,b.jpg,sniffed,generic.png"; strings.Join(got, ",") != want {
		t.Fatalf("order = %q, want %q", strings.Join(got, ","), want)
	}
	seen := map[string]bool{}
	for _, img := range images {
		if seen[img.ID] {
			t.Fatalf("duplicate id %q", img.ID)
		}
		seen[img.ID] = true
	}
}

func TestConvertAllNothingAccepted(t *testing.T) {
	images := ConvertAll([]File{
		{Name: "doc.pdf", MIME: "application/pdf", Data: []byte("pdf")},
		{Name: "empty"},
	})
	if len(images) != 0 {
		t.Fatalf("ConvertAll kept %d files, want 0", len(images))
	}
}
