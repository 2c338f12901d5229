package request

import (
	"strings"

	"staybook/internal/pkg/patch"
	"staybook/internal/usecase/commands"

	"github.com/google/uuid"
)

// Dates accept YYYY-MM-DD or an RFC3339 date-time, which is reduced to the
// property's local date.
type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	RoomID     uuid.UUID `json:"roomId" binding:"required"`
	CheckIn    string    `json:"checkIn" binding:"required"`
	CheckOut   string    `json:"checkOut" binding:"required"`
	Guests     int       `json:"guests" binding:"required,min=1"`
	Notes      *string   `json:"notes,omitempty"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	cmd := commands.CreateBookingRequest{
		PropertyID: r.PropertyID,
		RoomID:     r.RoomID,
		CheckIn:    strings.TrimSpace(r.CheckIn),
		CheckOut:   strings.TrimSpace(r.CheckOut),
		Guests:     r.Guests,
		Notes:      strings.TrimSpace(patch.Coalesce(r.Notes, "")),
	}
	return cmd
}

type PaymentProofRequest struct {
	ProofRef string `json:"proofRef" binding:"required"`
}

type ListBookingsQuery struct {
	Limit int    `form:"limit"`
	After string `form:"after"`
}
