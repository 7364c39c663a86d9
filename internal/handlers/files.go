package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketbase-dev/ticketbase/internal/blobstore"
)

type FilesHandler struct {
	blobs *blobstore.Store
}

func NewFilesHandler(blobs *blobstore.Store) *FilesHandler {
	return &FilesHandler{blobs: blobs}
}

// Get streams a stored image to the client chunk by chunk.
func (h *FilesHandler) Get(ctx *gin.Context) {
	reader, err := h.blobs.Open(ctx.Request.Context(), ctx.Param("filename"))

	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "No file exists"})
			return
		}
		log.Printf("Failed to open blob: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.DataFromReader(http.StatusOK, reader.Size(), reader.ContentType(), reader, nil)
}
