package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/rooms"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) SaveDraft(ctx context.Context, d Draft) error {
	pb, err := json.Marshal(d.Payload)
	if err != nil {
		return fmt.Errorf("marshal draft payload: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO booking_drafts (reference, tour_id, provider, order_id, status, total_price, payload)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (reference) DO UPDATE SET
		  provider=$3, order_id=$4, status=$5, total_price=$6, payload=$7, updated_at=now()
	`, d.Reference, d.Payload.TourID, d.Provider, d.OrderID, string(d.Status), d.Payload.TotalPrice, pb)
	return err
}

func (r *Repo) GetDraft(ctx context.Context, reference string) (*Draft, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT reference, provider, order_id, status, payload, created_at, updated_at
		FROM booking_drafts WHERE reference = $1
	`, reference)

	var d Draft
	var status string
	var raw []byte
	if err := row.Scan(&d.Reference, &d.Provider, &d.OrderID, &status, &raw, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d.Status = DraftStatus(status)
	if err := json.Unmarshal(raw, &d.Payload); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", reference, err)
	}
	return &d, nil
}

func (r *Repo) SetDraftStatus(ctx context.Context, reference string, status DraftStatus) error {
	// booked конечный статус: его меняет только Create
	tag, err := r.pool.Exec(ctx,
		`UPDATE booking_drafts SET status=$2, updated_at=now() WHERE reference=$1 AND status <> $3`,
		reference, string(status), string(DraftBooked))
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM booking_drafts WHERE reference=$1)`, reference,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrAlreadyBooked
	}
	return ErrNotFound
}

// Create переносит черновик в bookings и помечает его booked, всё в одной транзакции.
func (r *Repo) Create(ctx context.Context, reference, paymentID string) (*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var provider, status string
	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT provider, status, payload FROM booking_drafts WHERE reference=$1 FOR UPDATE`, reference,
	).Scan(&provider, &status, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	switch DraftStatus(status) {
	case DraftBooked:
		// второе подтверждение дождалось блокировки: бронь уже есть
		_ = tx.Rollback(ctx)
		return r.GetByReference(ctx, reference)
	case DraftPendingPayment, DraftPaid:
	default:
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPayable, reference, status)
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", reference, err)
	}

	var single, double, twin int
	if p.RoomConfiguration != nil {
		single, double, twin = p.RoomConfiguration.Single, p.RoomConfiguration.Double, p.RoomConfiguration.Twin
	}

	b := Booking{Reference: reference, Payload: p, PaymentProvider: provider, PaymentID: paymentID}
	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (
			reference, tour_id, departure_date, adults, children_with_bed, children_without_bed,
			room_single, room_double, room_twin, addons,
			base_price, children_price, room_price, addons_price, total_price,
			customer_name, customer_email, customer_phone, payment_provider, payment_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING id, created_at
	`, reference, p.TourID, p.DepartureDate, p.Adults, p.ChildrenWithBed, p.ChildrenWithoutBed,
		single, double, twin, p.Addons,
		p.BasePrice, p.ChildrenPrice, p.RoomPrice, p.AddonsPrice, p.TotalPrice,
		p.Customer.Name, p.Customer.Email, p.Customer.Phone, provider, paymentID,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE booking_drafts SET status=$2, updated_at=now() WHERE reference=$1`,
		reference, string(DraftBooked)); err != nil {
		return nil, fmt.Errorf("mark draft booked: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &b, nil
}

func (r *Repo) GetByReference(ctx context.Context, reference string) (*Booking, error) {
	rows, err := r.query(ctx, `WHERE b.reference = $1`, reference)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// ListCreated брони за период [from, to) для выгрузки.
func (r *Repo) ListCreated(ctx context.Context, from, to time.Time) ([]Booking, error) {
	return r.query(ctx, `WHERE b.created_at >= $1 AND b.created_at < $2`, from, to)
}

func (r *Repo) query(ctx context.Context, where string, args ...any) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.reference, b.tour_id, to_char(b.departure_date, 'YYYY-MM-DD'),
		       b.adults, b.children_with_bed, b.children_without_bed,
		       b.room_single, b.room_double, b.room_twin, b.addons,
		       b.base_price, b.children_price, b.room_price, b.addons_price, b.total_price,
		       b.customer_name, b.customer_email, b.customer_phone,
		       b.payment_provider, b.payment_id, b.created_at
		FROM bookings b
		`+where+`
		ORDER BY b.created_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		var single, double, twin int
		p := &b.Payload
		if err := rows.Scan(&b.ID, &b.Reference, &p.TourID, &p.DepartureDate,
			&p.Adults, &p.ChildrenWithBed, &p.ChildrenWithoutBed,
			&single, &double, &twin, &p.Addons,
			&p.BasePrice, &p.ChildrenPrice, &p.RoomPrice, &p.AddonsPrice, &p.TotalPrice,
			&p.Customer.Name, &p.Customer.Email, &p.Customer.Phone,
			&b.PaymentProvider, &b.PaymentID, &b.CreatedAt); err != nil {
			return nil, err
		}
		c := rooms.Of(single, double, twin, p.RoomPrice)
		p.RoomConfiguration = &c
		out = append(out, b)
	}
	return out, rows.Err()
}
