package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ticketbase-dev/ticketbase/internal/models"
	"github.com/ticketbase-dev/ticketbase/internal/types"
	"github.com/ticketbase-dev/ticketbase/internal/utils"
	"gorm.io/gorm"
)

type BookingsHandler struct {
	db      *gorm.DB
	baseURL string
}

func NewBookingsHandler(gdb *gorm.DB, baseURL string) *BookingsHandler {
	return &BookingsHandler{db: gdb, baseURL: baseURL}
}

// Create inserts a booking unconditionally: no duplicate check and no
// existence check on the event. Dangling references are resolved at read
// time instead.
func (h *BookingsHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventId"), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": "eventId must be numeric"})
		return
	}

	booking := models.Booking{
		UserID:  userID,
		EventID: uint(eventID),
	}

	if err := h.db.Create(&booking).Error; err != nil {
		log.Printf("Failed to create booking: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Booking successful",
		"booking": types.BookingResponse{
			ID:      booking.ID,
			UserID:  booking.UserID,
			EventID: booking.EventID,
		},
	})
}

// List returns the user's bookings joined with their events. A booking whose
// event no longer resolves is returned with a null event rather than failing
// the whole listing.
func (h *BookingsHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookings, eventsByID, err := h.bookingsWithEvents(userID)

	if err != nil {
		log.Printf("Failed to fetch bookings: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]types.BookingResponse, 0, len(bookings))

	for _, booking := range bookings {
		entry := types.BookingResponse{
			ID:      booking.ID,
			UserID:  booking.UserID,
			EventID: booking.EventID,
		}

		if event, ok := eventsByID[booking.EventID]; ok {
			resp := h.eventResponse(event)
			entry.Event = &resp
		}

		response = append(response, entry)
	}

	ctx.JSON(http.StatusOK, response)
}

// UserEvents returns summaries of the events the user has booked. Bookings
// whose event no longer resolves are skipped.
func (h *BookingsHandler) UserEvents(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookings, eventsByID, err := h.bookingsWithEvents(userID)

	if err != nil {
		log.Printf("Failed to fetch user events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]types.EventResponse, 0, len(bookings))

	for _, booking := range bookings {
		if event, ok := eventsByID[booking.EventID]; ok {
			response = append(response, h.eventResponse(event))
		}
	}

	ctx.JSON(http.StatusOK, response)
}

// Delete removes exactly one booking matching (user, event). Duplicate
// bookings of the same event survive until deleted one at a time.
func (h *BookingsHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventId"), 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": "eventId must be numeric"})
		return
	}

	var booking models.Booking

	err = h.db.Where("user_id = ? AND event_id = ?", userID, uint(eventID)).First(&booking).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		log.Printf("Failed to fetch booking: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := h.db.Delete(&booking).Error; err != nil {
		log.Printf("Failed to delete booking: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Event removed successfully"})
}

func (h *BookingsHandler) bookingsWithEvents(userID uint) ([]models.Booking, map[uint]models.Event, error) {
	var bookings []models.Booking

	if err := h.db.Where("user_id = ?", userID).Find(&bookings).Error; err != nil {
		return nil, nil, err
	}

	if len(bookings) == 0 {
		return bookings, map[uint]models.Event{}, nil
	}

	eventIDs := make([]uint, 0, len(bookings))

	for _, booking := range bookings {
		eventIDs = append(eventIDs, booking.EventID)
	}

	var events []models.Event

	if err := h.db.Where("id IN ?", eventIDs).Find(&events).Error; err != nil {
		return nil, nil, err
	}

	eventsByID := make(map[uint]models.Event, len(events))

	for _, event := range events {
		eventsByID[event.ID] = event
	}

	return bookings, eventsByID, nil
}

func (h *BookingsHandler) eventResponse(event models.Event) types.EventResponse {
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
