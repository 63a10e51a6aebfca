package bookings

import (
	"errors"
	"time"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/pricing"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/rooms"
)

var (
	ErrNotFound      = errors.New("bookings: not found")
	ErrAlreadyBooked = errors.New("bookings: draft already booked")
	ErrNotPayable    = errors.New("bookings: draft is not awaiting payment")
)

type DraftStatus string

const (
	DraftPendingPayment DraftStatus = "pending_payment"
	DraftPaid           DraftStatus = "paid"
	DraftBooked         DraftStatus = "booked"
	DraftNeedsSupport   DraftStatus = "needs_support" // оплата прошла, бронь не создалась
	DraftFailed         DraftStatus = "failed"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Payload то, что уходит в бэкенд бронирования и платёжку.
type Payload struct {
	TourID             int64                `json:"tourId"`
	DepartureDate      string               `json:"departureDate"`
	Adults             int                  `json:"adults"`
	ChildrenWithBed    int                  `json:"childrenWithBed"`
	ChildrenWithoutBed int                  `json:"childrenWithoutBed"`
	RoomConfiguration  *rooms.Configuration `json:"roomConfiguration"`
	Addons             []string             `json:"addons"`
	pricing.Breakdown
	Customer Customer `json:"customer"`
}

// Draft черновик брони, живёт между созданием платежа и его подтверждением.
type Draft struct {
	Reference string
	Provider  string
	OrderID   string
	Status    DraftStatus
	Payload   Payload
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Booking struct {
	ID              int64     `json:"id"`
	Reference       string    `json:"reference"`
	Payload         Payload   `json:"booking"`
	PaymentProvider string    `json:"paymentProvider"`
	PaymentID       string    `json:"paymentId"`
	CreatedAt       time.Time `json:"createdAt"`
}
