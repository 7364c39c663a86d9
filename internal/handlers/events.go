package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ticketbase-dev/ticketbase/internal/images"
	"github.com/ticketbase-dev/ticketbase/internal/models"
	"github.com/ticketbase-dev/ticketbase/internal/types"
	"gorm.io/gorm"
)

type EventsHandler struct {
	db      *gorm.DB
	ingest  *images.Processor
	baseURL string
}

func NewEventsHandler(gdb *gorm.DB, ingest *images.Processor, baseURL string) *EventsHandler {
	return &EventsHandler{db: gdb, ingest: ingest, baseURL: baseURL}
}

// parseEventDate accepts the two formats clients actually send: full RFC3339
// timestamps and bare dates.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Create ingests the uploaded image first and only writes the event row once
// the blob is durable, so a listed event can never hold a dangling image
// reference.
func (h *EventsHandler) Create(ctx *gin.Context) {
	file, err := ctx.FormFile("image")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	price, err := strconv.ParseFloat(ctx.PostForm("price"), 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": "price must be a number"})
		return
	}

	date, err := parseEventDate(ctx.PostForm("date"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": "date must be a date value"})
		return
	}

	src, err := file.Open()

	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Image processing failed"})
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(src)

	if err != nil {
		log.Printf("Failed to read uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Image processing failed"})
		return
	}

	reference, err := h.ingest.Ingest(ctx.Request.Context(), raw, file.Filename)

	if err != nil {
		switch {
		case errors.Is(err, images.ErrNoFile):
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		case errors.Is(err, images.ErrProcessing):
			log.Printf("Image processing failed: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Image processing failed"})
		default:
			log.Printf("Failed to store image: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload file"})
		}
		return
	}

	event := models.Event{
		Title:       ctx.PostForm("title"),
		Date:        date,
		Location:    ctx.PostForm("location"),
		Description: ctx.PostForm("description"),
		Price:       price,
		Image:       reference,
	}

	if err := h.db.Create(&event).Error; err != nil {
		log.Printf("Failed to create event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create event"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Event created successfully!",
		"event":   h.eventResponse(event),
	})
}

func (h *EventsHandler) List(ctx *gin.Context) {
	var events []models.Event

	if err := h.db.Find(&events).Error; err != nil {
		log.Printf("Failed to fetch events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch events"})
		return
	}

	response := make([]types.EventResponse, 0, len(events))

	for _, event := range events {
		response = append(response, h.eventResponse(event))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *EventsHandler) eventResponse(event models.Event) types.EventResponse {
	return types.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Date:        event.Date,
		Location:    event.Location,
		Description: event.Description,
		Price:       event.Price,
		Image:       event.Image,
		ImageURL:    h.baseURL + "/file/" + event.Image,
	}
}
