package models

import "gorm.io/gorm"

// Blob is the metadata row for a stored binary object. Content lives in
// BlobChunk rows ordered by Seq so reads can stream without loading the
// whole object. Names are the original upload filenames; writing the same
// name again replaces the previous content.
type Blob struct {
	gorm.Model

	Name        string `gorm:"uniqueIndex;not null"`
	ContentType string `gorm:"not null"`
	Size        int64  `gorm:"not null"`

	// Relationships
	Chunks []BlobChunk `gorm:"foreignKey:BlobID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type BlobChunk struct {
	ID     uint `gorm:"primarykey"`
	BlobID uint `gorm:"not null;index:idx_blob_seq,priority:1"`
	Seq    int  `gorm:"not null;index:idx_blob_seq,priority:2"`
	Data   []byte
}
