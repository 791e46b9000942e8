// Package pipeline drives the per-image batch generation run: one request at
// a time against the generation client, with an independently tracked outcome
// per image and progressive status events for the UI.
package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Abhinandangithub01/PhotoSet/internal/genai"
	"github.com/Abhinandangithub01/PhotoSet/internal/ingest"
	"github.com/Abhinandangithub01/PhotoSet/internal/style"
)

// ErrNoImages is the configuration error for a batch started without any
// uploaded images. No requests are issued in that case.
var ErrNoImages = errors.New("pipeline: no images uploaded")

// Enhancer is the single-image request/response contract the pipeline drives.
// *genai.Client satisfies it.
type Enhancer interface {
	EnhanceImage(ctx context.Context, img genai.Image, instruction string, reference *genai.Image) ([]byte, error)
}

// Runner executes batches. It holds no per-batch state; each Start call
// produces an independent ledger.
type Runner struct {
	enhancer Enhancer
	logger   zerolog.Logger
}

func NewRunner(enhancer Enhancer, logger zerolog.Logger) *Runner {
	return &Runner{enhancer: enhancer, logger: logger}
}

// Start validates the batch, materializes the full pending ledger, and begins
// processing in the background. The returned ledger already holds one pending
// entry per image, in input order, before the first request is issued.
//
// Processing is strictly sequential: item i+1's request is not sent until
// item i reached a terminal state. A failed item never aborts the rest of the
// batch, and there is no cancellation once the run has started.
func (r *Runner) Start(ctx context.Context, images []ingest.UploadedImage, resolved style.Resolved) (*Ledger, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	batch := make([]ingest.UploadedImage, len(images))
	copy(batch, images)

	ledger := newLedger(batch)
	go r.run(ctx, ledger, batch, resolved)
	return ledger, nil
}

func (r *Runner) run(ctx context.Context, ledger *Ledger, images []ingest.UploadedImage, resolved style.Resolved) {
	defer ledger.finish()

	total := len(images)
	var reference *genai.Image
	if resolved.Reference != nil {
		reference = &genai.Image{
			Data:     resolved.Reference.Data,
			MIMEType: resolved.Reference.MIMEType,
		}
	}

	r.logger.Info().
		Int("total", total).
		Bool("has_reference", reference != nil).
		Msg("pipeline: batch started")

	for i, img := range images {
		ledger.startItem(img.ID, i+1, total)

		data, err := r.enhancer.EnhanceImage(ctx, genai.Image{
			Data:     img.Data,
			MIMEType: img.MIMEType,
		}, resolved.Instruction, reference)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Str("image_id", img.ID).
				Int("item", i+1).
				Msg("pipeline: item failed")
			ledger.markError(img.ID, humanizeError(err))
			continue
		}

		url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
		ledger.markSuccess(img.ID, url)
		r.logger.Debug().
			Str("image_id", img.ID).
			Int("item", i+1).
			Msg("pipeline: item succeeded")
	}

	r.logger.Info().Int("total", total).Msg("pipeline: batch finished")
}

// humanizeError derives the per-item message shown in the result tile.
func humanizeError(err error) string {
	var genErr *genai.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	return err.Error()
}

// ProgressMessage renders the incremental progress indicator.
func ProgressMessage(processed, total int) string {
	return fmt.Sprintf("processing item %d of %d", processed, total)
}
