// Package ingest converts user-selected files into the in-memory image
// records the rest of the session works with.
package ingest

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// UploadedImage is the immutable in-memory representation of one accepted
// upload: raw bytes plus the encoded forms the UI and the generation client
// need.
type UploadedImage struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
	Base64   string `json:"base64"`
	DataURL  string `json:"dataUrl"`
}

// File is one user-selected file before conversion. The declared MIME type
// may be empty; the content is sniffed in that case.
type File struct {
	Name string
	MIME string
	Data []byte
}

// detectMIME resolves a file's media type. Browsers and multipart writers
// often declare the generic application/octet-stream; the content is sniffed
// in that case, same as when no type is declared at all.
func detectMIME(declared string, data []byte) string {
	mime := strings.TrimSpace(declared)
	if (mime == "" || mime == "application/octet-stream") && len(data) > 0 {
		mime = http.DetectContentType(data)
	}
	return mime
}

// Convert builds an UploadedImage from a single file. It fails when the file
// is empty or not an image.
func Convert(f File) (UploadedImage, error) {
	if len(f.Data) == 0 {
		return UploadedImage{}, errors.New("ingest: empty file")
	}
	mime := detectMIME(f.MIME, f.Data)
	if !strings.HasPrefix(mime, "image/") {
		return UploadedImage{}, fmt.Errorf("ingest: unsupported media type %q", mime)
	}
	encoded := base64.StdEncoding.EncodeToString(f.Data)
	return UploadedImage{
		ID:       uuid.NewString(),
		Filename: f.Name,
		MIMEType: mime,
		Data:     f.Data,
		Base64:   encoded,
		DataURL:  "data:" + mime + ";base64," + encoded,
	}, nil
}

// ConvertAll converts one batch-add of files. Non-image files are silently
// dropped; the accepted files are converted together and returned in their
// original order. The caller appends the result to its image list.
func ConvertAll(files []File) []UploadedImage {
	accepted := make([]File, 0, len(files))
	for _, f := range files {
		if strings.HasPrefix(detectMIME(f.MIME, f.Data), "image/") {
			accepted = append(accepted, f)
		}
	}
	if len(accepted) == 0 {
		return nil
	}

	images := make([]UploadedImage, len(accepted))
	var g errgroup.Group
	for i, f := range accepted {
		i, f := i, f
		g.Go(func() error {
			img, err := Convert(f)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Convert only fails on inputs the filter above already excluded.
		out := make([]UploadedImage, 0, len(images))
		for _, img := range images {
			if img.ID != "" {
				out = append(out, img)
			}
		}
		return out
	}
	return images
}
