package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/booking"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/payments"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/reports"
)

type BookingService interface {
	Tour(ctx context.Context, id int64) (*tours.Tour, error)
	RoomRate() int64
	Quote(ctx context.Context, s booking.Session) (booking.Quote, error)
	Checkout(ctx context.Context, s booking.Session) (booking.Checkout, error)
	ConfirmPayment(ctx context.Context, c payments.Confirmation) (*bookings.Booking, error)
	Booking(ctx context.Context, reference string) (*bookings.Booking, error)
}

type BookingLister interface {
	ListCreated(ctx context.Context, from, to time.Time) ([]bookings.Booking, error)
}

type Archive interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Deps struct {
	Log         *slog.Logger
	Service     BookingService
	Tiers       reports.TierStore
	Bookings    BookingLister
	Archive     Archive // nil: выгрузки не архивируются
	JWTSecret   string
	CORSOrigins []string
}

type Handler struct {
	log      *slog.Logger
	svc      BookingService
	tiers    reports.TierStore
	bookings BookingLister
	archive  Archive
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog(d.Log))

	corsCfg := cors.DefaultConfig()
	if len(d.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = d.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	h := &Handler{
		log:      d.Log,
		svc:      d.Service,
		tiers:    d.Tiers,
		bookings: d.Bookings,
		archive:  d.Archive,
	}

	api := r.Group("/api")
	api.GET("/tours/:id", h.getTour)
	api.GET("/tours/:id/rooms", h.roomOptions)
	api.POST("/tours/:id/quote", h.quote)
	api.POST("/bookings", h.checkout)
	api.GET("/bookings/:reference", h.getBooking)
	api.POST("/payments/verify", h.verifyPayment)
	api.POST("/payments/hdfc/return", h.hdfcReturn)

	admin := api.Group("/admin", RequireRole(d.JWTSecret, RoleAdmin))
	admin.GET("/tours/:id/tiers.xlsx", h.exportTiers)
	admin.POST("/tours/:id/tiers", h.importTiers)
	admin.GET("/bookings.xlsx", h.exportBookings)

	return r
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
