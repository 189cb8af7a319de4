package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Booking is a buyer's request to purchase a product at a given price.
// Paid and TransactionID are written once by the payment flow. Any other
// field the buyer posts is kept in Attributes and written back flat.
type Booking struct {
	ID            uuid.UUID
	Email         string
	ProductID     string
	ProductName   string
	BuyerName     string
	Phone         string
	Location      string
	ResalePrice   float64
	Paid          bool
	TransactionID string
	Attributes    map[string]any
	CreatedAt     time.Time
}

type bookingFields struct {
	Email       string `json:"email"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	BuyerName   string `json:"buyerName"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	ResalePrice Price  `json:"resalePrice"`
}

var reservedBookingKeys = []string{
	"_id", "email", "productId", "productName", "buyerName", "phone", "location",
	"resalePrice", "paid", "transactionId", "createdAt",
}

func (b Booking) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Attributes)+len(reservedBookingKeys))
	for k, v := range b.Attributes {
		out[k] = v
	}
	for _, k := range reservedBookingKeys {
		delete(out, k)
	}
	out["_id"] = b.ID
	out["email"] = b.Email
	out["productId"] = b.ProductID
	out["resalePrice"] = b.ResalePrice
	out["paid"] = b.Paid
	out["createdAt"] = b.CreatedAt
	for k, v := range map[string]string{
		"productName":   b.ProductName,
		"buyerName":     b.BuyerName,
		"phone":         b.Phone,
		"location":      b.Location,
		"transactionId": b.TransactionID,
	} {
		if v != "" {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a booking as posted by a buyer. _id, createdAt, paid
// and transactionId are assigned by the server and ignored here.
func (b *Booking) UnmarshalJSON(data []byte) error {
	var f bookingFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	var rest map[string]any
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	for _, k := range reservedBookingKeys {
		delete(rest, k)
	}
	b.Email = f.Email
	b.ProductID = f.ProductID
	b.ProductName = f.ProductName
	b.BuyerName = f.BuyerName
	b.Phone = f.Phone
	b.Location = f.Location
	b.ResalePrice = float64(f.ResalePrice)
	b.Attributes = rest
	return nil
}

type Payment struct {
	ID            uuid.UUID `json:"_id"`
	BookingID     uuid.UUID `json:"bookingId"`
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	Users        int64 `json:"users"`
	Products     int64 `json:"products"`
	Bookings     int64 `json:"bookings"`
	PaidBookings int64 `json:"paidBookings"`
}
