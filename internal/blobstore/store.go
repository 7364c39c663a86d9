package blobstore

import (
	"context"
	"errors"
	"io"

	"github.com/ticketbase-dev/ticketbase/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("no blob with that name exists")

// chunkSize caps the payload of a single chunk row.
const chunkSize = 256 * 1024

// Store persists named binary objects as a metadata row plus ordered chunk
// rows, so reads can stream without buffering the whole object.
type Store struct {
	db *gorm.DB
}

func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// Save writes data under name in a single transaction; the blob is durable
// once Save returns nil. Saving an existing name replaces its content.
func (s *Store) Save(ctx context.Context, name, contentType string, data []byte) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blob models.Blob

		err := tx.Where("name = ?", name).First(&blob).Error

		switch {
		case err == nil:
			if err := tx.Where("blob_id = ?", blob.ID).Delete(&models.BlobChunk{}).Error; err != nil {
				return err
			}
			blob.ContentType = contentType
			blob.Size = int64(len(data))
			if err := tx.Save(&blob).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			blob = models.Blob{Name: name, ContentType: contentType, Size: int64(len(data))}
			if err := tx.Create(&blob).Error; err != nil {
				return err
			}
		default:
			return err
		}

		for seq := 0; seq*chunkSize < len(data); seq++ {
			end := (seq + 1) * chunkSize
			if end > len(data) {
				end = len(data)
			}

			chunk := models.BlobChunk{
				BlobID: blob.ID,
				Seq:    seq,
				Data:   data[seq*chunkSize : end],
			}

			if err := tx.Create(&chunk).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Open returns a Reader streaming the blob's content chunk by chunk.
// Returns ErrNotFound if no blob with that name exists.
func (s *Store) Open(ctx context.Context, name string) (*Reader, error) {
	var blob models.Blob

	err := s.db.WithContext(ctx).Where("name = ?", name).First(&blob).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &Reader{db: s.db.WithContext(ctx), blob: blob}, nil
}

// Reader is an io.Reader over a blob's chunk rows, fetched one at a time in
// sequence order.
type Reader struct {
	db   *gorm.DB
	blob models.Blob
	seq  int
	buf  []byte
	done bool
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		if r.done {
			return 0, io.EOF
		}

		var chunk models.BlobChunk

		err := r.db.Where("blob_id = ? AND seq = ?", r.blob.ID, r.seq).First(&chunk).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				r.done = true
				return 0, io.EOF
			}
			return 0, err
		}

		r.buf = chunk.Data
		r.seq++
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func (r *Reader) ContentType() string {
	return r.blob.ContentType
}

func (r *Reader) Size() int64 {
	return r.blob.Size
}
