package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/ticketbase-dev/ticketbase/internal/blobstore"
	"golang.org/x/sync/semaphore"
)

var (
	ErrNoFile     = errors.New("no image data provided")
	ErrProcessing = errors.New("image processing failed")
)

// Processor transcodes uploaded images and stores them as blobs. Transcoding
// is CPU and memory heavy, so concurrent runs are capped by a weighted
// semaphore; requests over the cap wait their turn.
type Processor struct {
	store    *blobstore.Store
	sem      *semaphore.Weighted
	maxWidth int
	quality  int
}

func NewProcessor(store *blobstore.Store, maxWidth, quality int, maxConcurrent int64) *Processor {
	return &Processor{
		store:    store,
		sem:      semaphore.NewWeighted(maxConcurrent),
		maxWidth: maxWidth,
		quality:  quality,
	}
}

// Ingest runs the upload pipeline: decode, cap the width preserving aspect
// ratio, re-encode as JPEG, store under the original name. The reference is
// returned only after the blob write has committed, so a caller that creates
// an event record afterwards can never publish a dangling reference.
func (p *Processor) Ingest(ctx context.Context, raw []byte, originalName string) (string, error) {
	if len(raw) == 0 {
		return "", ErrNoFile
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	if img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer

	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	if err := p.store.Save(ctx, originalName, "image/jpeg", buf.Bytes()); err != nil {
		return "", err
	}

	return originalName, nil
}
