package response

import (
	"time"

	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	PropertyID      uuid.UUID `json:"propertyId"`
	RoomID          uuid.UUID `json:"roomId"`
	CheckIn         string    `json:"checkIn"`
	CheckOut        string    `json:"checkOut"`
	Nights          int       `json:"nights"`
	Guests          int       `json:"guests"`
	TotalPrice      int64     `json:"totalPrice"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	PaymentProofRef *string   `json:"paymentProofRef,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookingListItemResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	RoomID     uuid.UUID `json:"roomId"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	TotalPrice int64     `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Bookings   []BookingListItemResponse `json:"bookings"`
	NextCursor *string                   `json:"nextCursor,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var res BookingResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) *BookingListResponse {
	res := &BookingListResponse{Bookings: make([]BookingListItemResponse, 0, len(items))}
	if len(items) > 0 {
		_ = copier.Copy(&res.Bookings, items)
	}
	if next != nil {
		res.NextCursor = &next.After
	}
	return res
}
