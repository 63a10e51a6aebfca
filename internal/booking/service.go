package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/pricing"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/rooms"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/metrics"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/infra/payments"
)

var ErrUnknownProvider = errors.New("booking: unknown payment provider")

type TourStore interface {
	Get(ctx context.Context, id int64) (*tours.Tour, error)
}

type BookingStore interface {
	SaveDraft(ctx context.Context, d bookings.Draft) error
	GetDraft(ctx context.Context, reference string) (*bookings.Draft, error)
	SetDraftStatus(ctx context.Context, reference string, status bookings.DraftStatus) error
	Create(ctx context.Context, reference, paymentID string) (*bookings.Booking, error)
	GetByReference(ctx context.Context, reference string) (*bookings.Booking, error)
}

// SupportError оплата подтверждена, но запись брони не создана.
// Клиенту показываем референс и просим связаться с поддержкой; повторов нет.
type SupportError struct {
	Reference string
	PaymentID string
	Err       error
}

func (e *SupportError) Error() string {
	return fmt.Sprintf("booking %s: payment %s captured but booking failed: %v", e.Reference, e.PaymentID, e.Err)
}

func (e *SupportError) Unwrap() error { return e.Err }

func (e *SupportError) SupportReference() string { return e.Reference }

type Service struct {
	log             *slog.Logger
	tours           TourStore
	bookings        BookingStore
	gateways        payments.Registry
	roomRate        int64
	defaultProvider string
	newReference    func() string
}

func NewService(
	log *slog.Logger,
	tourStore TourStore,
	bookingStore BookingStore,
	gateways payments.Registry,
	roomRate int64,
	defaultProvider string,
) *Service {
	if roomRate <= 0 {
		roomRate = rooms.DefaultRoomRate
	}
	return &Service{
		log:             log,
		tours:           tourStore,
		bookings:        bookingStore,
		gateways:        gateways,
		roomRate:        roomRate,
		defaultProvider: defaultProvider,
		newReference:    uuid.NewString,
	}
}

func (s *Service) RoomRate() int64 { return s.roomRate }

type Quote struct {
	Session     Session               `json:"session"`
	RoomOptions []rooms.Configuration `json:"roomOptions"`
	Recommended []string              `json:"recommended"`
	Breakdown   pricing.Breakdown     `json:"breakdown"`
	Addons      []pricing.Addon       `json:"addons"`
}

type Checkout struct {
	Reference string            `json:"reference"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	Order     payments.Order    `json:"order"`
}

// Tour тур для клиентов (виджет, бот).
func (s *Service) Tour(ctx context.Context, id int64) (*tours.Tour, error) {
	return s.tours.Get(ctx, id)
}

// Quote пересчитывает варианты размещения и стоимость под текущий выбор.
// Выбранный номер, не подходящий под число мест, снимается.
func (s *Service) Quote(ctx context.Context, sess Session) (Quote, error) {
	t, err := s.tours.Get(ctx, sess.TourID)
	if err != nil {
		return Quote{}, err
	}
	sess = s.normalize(sess)
	pc := t.PricingContext(sess.DepartureDate)

	options := sess.RoomOptions(s.roomRate)
	recommended := make([]string, 0, 1)
	for _, c := range rooms.Recommended(options) {
		recommended = append(recommended, c.ID)
	}

	metrics.Quotes.Inc()
	return Quote{
		Session:     sess,
		RoomOptions: options,
		Recommended: recommended,
		Breakdown:   sess.Breakdown(pc),
		Addons:      pc.Addons,
	}, nil
}

// Checkout проверяет выбор, сохраняет черновик и создаёт заказ в платёжке.
func (s *Service) Checkout(ctx context.Context, sess Session) (Checkout, error) {
	t, err := s.tours.Get(ctx, sess.TourID)
	if err != nil {
		return Checkout{}, err
	}
	sess = s.normalize(sess)

	provider := sess.Provider
	if provider == "" {
		provider = s.defaultProvider
	}
	gw, ok := s.gateways.Get(provider)

	if err := Validate(t, sess); err != nil {
		metrics.Checkouts.WithLabelValues(provider, metrics.ResultInvalid).Inc()
		return Checkout{}, err
	}
	if !ok {
		metrics.Checkouts.WithLabelValues(provider, metrics.ResultInvalid).Inc()
		return Checkout{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	pc := t.PricingContext(sess.DepartureDate)
	sess = knownAddons(sess, pc)
	breakdown := sess.Breakdown(pc)
	draft := bookings.Draft{
		Reference: s.newReference(),
		Provider:  provider,
		Status:    bookings.DraftPendingPayment,
		Payload:   sess.Payload(breakdown),
	}
	if err := s.bookings.SaveDraft(ctx, draft); err != nil {
		metrics.Checkouts.WithLabelValues(provider, metrics.ResultError).Inc()
		return Checkout{}, fmt.Errorf("save draft: %w", err)
	}

	order, err := gw.CreateOrder(ctx, payments.OrderRequest{
		Reference:   draft.Reference,
		Amount:      breakdown.TotalPrice,
		Currency:    t.Currency,
		Description: t.Name,
		Customer: payments.Customer{
			Name:  sess.Customer.Name,
			Email: sess.Customer.Email,
			Phone: sess.Customer.Phone,
		},
	})
	if err != nil {
		metrics.Checkouts.WithLabelValues(provider, metrics.ResultError).Inc()
		if serr := s.bookings.SetDraftStatus(ctx, draft.Reference, bookings.DraftFailed); serr != nil {
			s.log.Warn("failed to mark draft failed", "reference", draft.Reference, "err", serr)
		}
		return Checkout{}, fmt.Errorf("create %s order: %w", provider, err)
	}

	draft.OrderID = order.OrderID
	if err := s.bookings.SaveDraft(ctx, draft); err != nil {
		metrics.Checkouts.WithLabelValues(provider, metrics.ResultError).Inc()
		return Checkout{}, fmt.Errorf("save draft order: %w", err)
	}

	s.log.Info("checkout created",
		"reference", draft.Reference,
		"provider", provider,
		"order_id", order.OrderID,
		"total", breakdown.TotalPrice,
	)
	metrics.Checkouts.WithLabelValues(provider, metrics.ResultOK).Inc()
	return Checkout{Reference: draft.Reference, Breakdown: breakdown, Order: order}, nil
}

// ConfirmPayment проверяет подпись платёжки и создаёт бронь.
// Если бронь не создалась после успешной оплаты, черновик уходит в needs_support
// и возвращается *SupportError.
func (s *Service) ConfirmPayment(ctx context.Context, c payments.Confirmation) (*bookings.Booking, error) {
	draft, err := s.bookings.GetDraft(ctx, c.Reference)
	if err != nil {
		return nil, err
	}

	switch draft.Status {
	case bookings.DraftBooked:
		return s.bookings.GetByReference(ctx, draft.Reference)
	case bookings.DraftNeedsSupport:
		return nil, &SupportError{Reference: draft.Reference, PaymentID: c.PaymentID, Err: errors.New("already escalated")}
	case bookings.DraftPendingPayment, bookings.DraftPaid:
	default:
		metrics.Payments.WithLabelValues(draft.Provider, metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%w: %s is %s", bookings.ErrNotPayable, draft.Reference, draft.Status)
	}

	gw, ok := s.gateways.Get(draft.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, draft.Provider)
	}
	// подпись проверяется только для заказа этого черновика
	if draft.OrderID == "" {
		metrics.Payments.WithLabelValues(draft.Provider, metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%w: %s has no payment order", bookings.ErrNotPayable, draft.Reference)
	}
	if c.OrderID != draft.OrderID {
		metrics.Payments.WithLabelValues(draft.Provider, metrics.ResultRejected).Inc()
		return nil, payments.ErrInvalidSignature
	}
	if err := gw.Verify(c); err != nil {
		metrics.Payments.WithLabelValues(draft.Provider, metrics.ResultRejected).Inc()
		s.log.Warn("payment verification failed",
			"reference", draft.Reference,
			"provider", draft.Provider,
			"err", err,
		)
		return nil, err
	}

	if err := s.bookings.SetDraftStatus(ctx, draft.Reference, bookings.DraftPaid); err != nil {
		s.log.Warn("failed to mark draft paid", "reference", draft.Reference, "err", err)
	}

	b, err := s.bookings.Create(ctx, draft.Reference, c.PaymentID)
	if err != nil {
		// параллельное подтверждение уже создало бронь
		if existing, gerr := s.bookings.GetByReference(ctx, draft.Reference); gerr == nil {
			s.log.Info("booking already created by a concurrent confirmation",
				"reference", draft.Reference,
				"payment_id", c.PaymentID,
				"err", err,
			)
			return existing, nil
		}
		metrics.Payments.WithLabelValues(draft.Provider, metrics.ResultError).Inc()
		metrics.NeedsSupport.Inc()
		s.log.Error("payment captured but booking failed",
			"reference", draft.Reference,
			"provider", draft.Provider,
			"payment_id", c.PaymentID,
			"err", err,
		)
		if serr := s.bookings.SetDraftStatus(ctx, draft.Reference, bookings.DraftNeedsSupport); serr != nil {
			s.log.Error("failed to mark draft needs_support", "reference", draft.Reference, "err", serr)
		}
		return nil, &SupportError{Reference: draft.Reference, PaymentID: c.PaymentID, Err: err}
	}

	metrics.Payments.WithLabelValues(draft.Provider, metrics.ResultOK).Inc()
	metrics.BookingValue.Observe(float64(b.Payload.TotalPrice))
	s.log.Info("booking created",
		"reference", b.Reference,
		"booking_id", b.ID,
		"payment_id", c.PaymentID,
	)
	return b, nil
}

func (s *Service) Booking(ctx context.Context, reference string) (*bookings.Booking, error) {
	return s.bookings.GetByReference(ctx, reference)
}

// Status состояние брони по референсу: черновик и, если есть, созданная бронь.
type Status struct {
	Reference string               `json:"reference"`
	Draft     bookings.DraftStatus `json:"status"`
	Booking   *bookings.Booking    `json:"booking,omitempty"`
}

func (s *Service) Status(ctx context.Context, reference string) (Status, error) {
	draft, err := s.bookings.GetDraft(ctx, reference)
	if err != nil {
		return Status{}, err
	}
	st := Status{Reference: draft.Reference, Draft: draft.Status}
	if draft.Status == bookings.DraftBooked {
		b, err := s.bookings.GetByReference(ctx, reference)
		if err != nil {
			return Status{}, err
		}
		st.Booking = b
	}
	return st, nil
}

// normalize приводит выбранный номер к актуальному варианту из генератора:
// клиент присылает id, цену и состав берём у себя.
func (s *Service) normalize(sess Session) Session {
	if sess.Room == nil {
		return sess
	}
	id := sess.Room.ID
	if id == "" {
		id = rooms.Of(sess.Room.Single, sess.Room.Double, sess.Room.Twin, 0).ID
	}
	c, ok := rooms.Find(sess.BedsNeeded(), s.roomRate, id)
	if !ok {
		return sess.ClearRoom()
	}
	return sess.SelectRoom(c)
}

// knownAddons в заявку попадают только доступные для даты опции.
func knownAddons(sess Session, pc pricing.Context) Session {
	out := make([]string, 0, len(sess.Addons))
	for _, id := range sess.Addons {
		if pc.HasAddon(id) {
			out = append(out, id)
		}
	}
	sess.Addons = out
	return sess
}
