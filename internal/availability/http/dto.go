package http

import (
	"github.com/servipro-app/servipro-backend/internal/availability"
)

// WindowPayload is one open interval in a day replacement request.
type WindowPayload struct {
	Start string `json:"start" binding:"required"` // "HH:MM"
	End   string `json:"end" binding:"required"`   // "HH:MM"
}

// SetWindowsRequest replaces all windows for one weekday.
type SetWindowsRequest struct {
	Windows []WindowPayload `json:"windows" binding:"required"`
}

// WindowResponse is one window in API responses.
type WindowResponse struct {
	ID      string `json:"id"`
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func NewWindowResponse(w availability.Window) WindowResponse {
	return WindowResponse{
		ID:      w.ID,
		Weekday: w.Weekday,
		Start:   availability.FormatClock(w.StartMinute),
		End:     availability.FormatClock(w.EndMinute),
	}
}
