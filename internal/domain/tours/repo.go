package tours

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/pricing"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// TierRow ступень в том виде, как она лежит в pricing_tiers (для выгрузки/загрузки Excel).
type TierRow struct {
	ID             int64
	TourID         int64
	DepartureID    *int64
	DepartureDate  string
	Pax            int
	PricePerPerson float64
}

// Get тур целиком: выезды, ступени и доп. услуги (общие и по выездам).
func (r *Repo) Get(ctx context.Context, id int64) (*Tour, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, slug, name, description, currency, price_per_person,
		       child_with_bed_price, child_without_bed_price,
		       min_travelers, max_travelers, created_at
		FROM tours WHERE id = $1 AND active = TRUE
	`, id)

	var t Tour
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Description, &t.Currency, &t.PricePerPerson,
		&t.ChildWithBedPrice, &t.ChildWithoutBedPrice, &t.MinTravelers, &t.MaxTravelers, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tour %d: %w", id, err)
	}

	deps, err := r.departures(ctx, id)
	if err != nil {
		return nil, err
	}
	tiers, err := r.tiers(ctx, id)
	if err != nil {
		return nil, err
	}
	addons, err := r.addons(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Tiers = tiers[0]
	t.Addons = addons[0]
	for i := range deps {
		deps[i].Tiers = tiers[deps[i].ID]
		deps[i].Addons = addons[deps[i].ID]
	}
	t.Departures = deps
	return &t, nil
}

func (r *Repo) List(ctx context.Context) ([]Tour, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, name, currency, min_travelers, max_travelers
		FROM tours WHERE active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tour
	for rows.Next() {
		var t Tour
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.Currency, &t.MinTravelers, &t.MaxTravelers); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) departures(ctx context.Context, tourID int64) ([]Departure, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, departure_date, status, price_per_person, child_with_bed_price, child_without_bed_price
		FROM tour_departures
		WHERE tour_id = $1 AND departure_date >= CURRENT_DATE
		ORDER BY departure_date
	`, tourID)
	if err != nil {
		return nil, fmt.Errorf("list departures: %w", err)
	}
	defer rows.Close()

	var out []Departure
	for rows.Next() {
		var d Departure
		var status string
		if err := rows.Scan(&d.ID, &d.Date, &status, &d.PricePerPerson, &d.ChildWithBedPrice, &d.ChildWithoutBedPrice); err != nil {
			return nil, err
		}
		d.Status = DepartureStatus(status)
		out = append(out, d)
	}
	return out, rows.Err()
}

// tiers ключ 0: ступени тура, иначе id выезда.
func (r *Repo) tiers(ctx context.Context, tourID int64) (map[int64][]pricing.Tier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(departure_id, 0), pax, price_per_person
		FROM pricing_tiers
		WHERE tour_id = $1
		ORDER BY departure_id NULLS FIRST, pax ASC
	`, tourID)
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	defer rows.Close()

	out := map[int64][]pricing.Tier{}
	for rows.Next() {
		var depID int64
		var t pricing.Tier
		if err := rows.Scan(&depID, &t.Pax, &t.PricePerPerson); err != nil {
			return nil, err
		}
		out[depID] = append(out[depID], t)
	}
	return out, rows.Err()
}

func (r *Repo) addons(ctx context.Context, tourID int64) (map[int64][]pricing.Addon, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(departure_id, 0), code, name, price, COALESCE(description, '')
		FROM tour_addons
		WHERE tour_id = $1 AND active = TRUE
		ORDER BY departure_id NULLS FIRST, id
	`, tourID)
	if err != nil {
		return nil, fmt.Errorf("list addons: %w", err)
	}
	defer rows.Close()

	out := map[int64][]pricing.Addon{}
	for rows.Next() {
		var depID int64
		var a pricing.Addon
		if err := rows.Scan(&depID, &a.ID, &a.Name, &a.Price, &a.Description); err != nil {
			return nil, err
		}
		out[depID] = append(out[depID], a)
	}
	return out, rows.Err()
}

// ListTiers все ступени тура (общие и по выездам) для выгрузки.
func (r *Repo) ListTiers(ctx context.Context, tourID int64) ([]TierRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pt.id, pt.tour_id, pt.departure_id,
		       COALESCE(to_char(d.departure_date, 'YYYY-MM-DD'), ''),
		       pt.pax, pt.price_per_person
		FROM pricing_tiers pt
		LEFT JOIN tour_departures d ON d.id = pt.departure_id
		WHERE pt.tour_id = $1
		ORDER BY d.departure_date NULLS FIRST, pt.pax ASC
	`, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TierRow{}
	for rows.Next() {
		var t TierRow
		if err := rows.Scan(&t.ID, &t.TourID, &t.DepartureID, &t.DepartureDate, &t.Pax, &t.PricePerPerson); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertTier по (tour_id, departure_id, pax)
func (r *Repo) UpsertTier(ctx context.Context, t TierRow) (int64, error) {
	const q = `
		INSERT INTO pricing_tiers (tour_id, departure_id, pax, price_per_person)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tour_id, (COALESCE(departure_id, 0)), pax)
		DO UPDATE SET price_per_person = EXCLUDED.price_per_person, updated_at = NOW()
		RETURNING id;
	`
	var id int64
	err := r.pool.QueryRow(ctx, q, t.TourID, t.DepartureID, t.Pax, t.PricePerPerson).Scan(&id)
	return id, err
}

// UpdateTierPrice меняет цену ступени тура tourID; чужие ступени не трогаем.
func (r *Repo) UpdateTierPrice(ctx context.Context, tourID, id int64, price float64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pricing_tiers SET price_per_person = $3, updated_at = NOW() WHERE id = $1 AND tour_id = $2`,
		id, tourID, price)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteTier(ctx context.Context, tourID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pricing_tiers WHERE id = $1 AND tour_id = $2`, id, tourID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
