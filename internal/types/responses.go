package types

import "time"

type UserResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type EventResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	ImageURL    string    `json:"imageUrl"`
}

// BookingResponse joins a booking with its event. Event is null when the
// referenced event no longer resolves.
type BookingResponse struct {
	ID      uint           `json:"id"`
	UserID  uint           `json:"userId"`
	EventID uint           `json:"eventId"`
	Event   *EventResponse `json:"event"`
}
