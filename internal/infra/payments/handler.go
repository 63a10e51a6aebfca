package payments

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
)

type Confirmer interface {
	ConfirmPayment(ctx context.Context, c Confirmation) (*bookings.Booking, error)
}

// supportReferencer ошибка "оплата прошла, брони нет" отдаёт референс для поддержки.
type supportReferencer interface {
	SupportReference() string
}

type Handler struct {
	log     *slog.Logger
	sandbox *Sandbox
	confirm Confirmer
}

func NewHandler(log *slog.Logger, sandbox *Sandbox, confirm Confirmer) *Handler {
	return &Handler{
		log:     log,
		sandbox: sandbox,
		confirm: confirm,
	}
}

// ServeHTTP эмулирует "успешную оплату":
// /payments/pay?booking=REF -> подписываем платёж как платёжка и подтверждаем бронь.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ref := r.URL.Query().Get("booking")
	if ref == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("missing booking parameter"))
		return
	}

	orderID := h.sandbox.OrderID(ref)
	paymentID := "sandbox_pay_" + uuid.NewString()
	b, err := h.confirm.ConfirmPayment(ctx, Confirmation{
		Reference: ref,
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: h.sandbox.Sign(orderID, paymentID),
	})

	var support supportReferencer
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("booking not found"))
		return
	case errors.Is(err, bookings.ErrNotPayable):
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("booking is no longer awaiting payment"))
		return
	case errors.As(err, &support):
		h.log.Error("sandbox payment captured but booking failed",
			"reference", ref,
			"payment_id", paymentID,
			"err", err,
		)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusConflict)
		_, _ = fmt.Fprintf(w,
			"<html><body><h1>Payment received</h1><p>We could not confirm your booking. Please contact support with reference <b>%s</b>.</p></body></html>",
			html.EscapeString(support.SupportReference()),
		)
		return
	default:
		h.log.Error("sandbox payment failed",
			"reference", ref,
			"err", err,
		)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("failed to confirm payment"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w,
		"<html><body><h1>Payment successful</h1><p>Booking <b>%s</b> is confirmed.</p></body></html>",
		html.EscapeString(b.Reference),
	)
}
