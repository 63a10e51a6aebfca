package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/booking"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/rooms"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/payments"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/storage"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/reports"
)

const xlsxContentType = storage.XLSXContentType

func tourID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tour id"})
		return 0, false
	}
	return id, true
}

// fail переводит ошибки домена в HTTP-ответ.
func (h *Handler) fail(c *gin.Context, err error) {
	var verrs booking.ValidationErrors
	var support *booking.SupportError
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verrs})
	case errors.As(err, &support):
		c.JSON(http.StatusConflict, gin.H{
			"status":    string(bookings.DraftNeedsSupport),
			"reference": support.Reference,
			"error":     fmt.Sprintf("Your payment was received but we could not confirm the booking. Please contact support with reference %s.", support.Reference),
		})
	case errors.Is(err, bookings.ErrNotPayable):
		c.JSON(http.StatusConflict, gin.H{"error": "booking is no longer awaiting payment, please start a new checkout"})
	case errors.Is(err, tours.ErrNotFound), errors.Is(err, bookings.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, booking.ErrUnknownProvider):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, payments.ErrInvalidSignature), errors.Is(err, payments.ErrNotCaptured):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment could not be verified"})
	default:
		h.log.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) getTour(c *gin.Context) {
	id, ok := tourID(c)
	if !ok {
		return
	}
	t, err := h.svc.Tour(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// roomOptions ?adults=2&childrenWithBed=1
func (h *Handler) roomOptions(c *gin.Context) {
	if _, ok := tourID(c); !ok {
		return
	}
	adults, _ := strconv.Atoi(c.Query("adults"))
	cwb, _ := strconv.Atoi(c.Query("childrenWithBed"))

	options := rooms.GenerateWithRate(rooms.BedsNeeded(adults, cwb), h.svc.RoomRate())
	recommended := []string{}
	for _, r := range rooms.Recommended(options) {
		recommended = append(recommended, r.ID)
	}
	c.JSON(http.StatusOK, gin.H{"options": options, "recommended": recommended})
}

func (h *Handler) quote(c *gin.Context) {
	id, ok := tourID(c)
	if !ok {
		return
	}
	var s booking.Session
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	s.TourID = id

	q, err := h.svc.Quote(c.Request.Context(), s)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) checkout(c *gin.Context) {
	var s booking.Session
	if err := c.ShouldBindJSON(&s); err != nil || s.TourID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	co, err := h.svc.Checkout(c.Request.Context(), s)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

func (h *Handler) getBooking(c *gin.Context) {
	b, err := h.svc.Booking(c.Request.Context(), c.Param("reference"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) verifyPayment(c *gin.Context) {
	var conf payments.Confirmation
	if err := c.ShouldBindJSON(&conf); err != nil || conf.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.confirm(c, conf)
}

// hdfcReturn колбэк банка (form POST); order_id = "HDFC-" + reference.
func (h *Handler) hdfcReturn(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}
	fields := make(map[string]string, len(c.Request.PostForm))
	for k := range c.Request.PostForm {
		fields[k] = c.Request.PostForm.Get(k)
	}
	orderID := fields["order_id"]
	ref := strings.TrimPrefix(orderID, "HDFC-")
	if ref == "" || ref == orderID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_id"})
		return
	}
	h.confirm(c, payments.Confirmation{
		Reference: ref,
		OrderID:   orderID,
		PaymentID: fields["txn_id"],
		Fields:    fields,
	})
}

func (h *Handler) confirm(c *gin.Context, conf payments.Confirmation) {
	b, err := h.svc.ConfirmPayment(c.Request.Context(), conf)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(bookings.DraftBooked), "booking": b})
}

func (h *Handler) exportTiers(c *gin.Context) {
	id, ok := tourID(c)
	if !ok {
		return
	}
	data, err := reports.ExportTiers(c.Request.Context(), h.tiers, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	name := fmt.Sprintf("tiers_%d_%s.xlsx", id, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// importTiers multipart поле "file" с отредактированной выгрузкой.
func (h *Handler) importTiers(c *gin.Context) {
	id, ok := tourID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}

	res, err := reports.ImportTiers(c.Request.Context(), h.tiers, id, data)
	var rerr *reports.RowError
	if errors.As(err, &rerr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rerr.Error(), "result": res})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("tiers imported", "tour_id", id, "subject", c.GetString("subject"), "updated", res.Updated, "created", res.Created, "deleted", res.Deleted)
	c.JSON(http.StatusOK, res)
}

// exportBookings ?from=YYYY-MM-DD&to=YYYY-MM-DD (to не включительно), по умолчанию последние 30 дней.
// archive=1 дополнительно кладёт файл в бакет и возвращает ссылку.
func (h *Handler) exportBookings(c *gin.Context) {
	to := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -30)
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(tours.DateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(tours.DateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return
		}
	}

	list, err := h.bookings.ListCreated(c.Request.Context(), from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	data, err := reports.ExportBookings(list)
	if err != nil {
		h.fail(c, err)
		return
	}

	name := fmt.Sprintf("bookings_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	if c.Query("archive") == "1" {
		if h.archive == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report archive is not configured"})
			return
		}
		url, err := h.archive.Put(c.Request.Context(), "bookings/"+name, xlsxContentType, data)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url, "count": len(list)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}
