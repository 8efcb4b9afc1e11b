package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wedlux/planner-service/internal/entity"
)

type WeddingRepository struct {
	db *pgxpool.Pool
}

func NewWeddingRepository(db *pgxpool.Pool) *WeddingRepository {
	return &WeddingRepository{
		db: db,
	}
}

// создаем свадьбу
func (r *WeddingRepository) Create(ctx context.Context, wedding *entity.Wedding) (*entity.Wedding, error) {

	query := `
	INSERT INTO weddings (id, organizer_id, wedding_title, partner1_name, partner2_name, wedding_date, location)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, organizer_id, wedding_title, partner1_name, partner2_name, wedding_date, location, created_at
	`

	var created entity.Wedding

	err := r.db.QueryRow(ctx, query,
		wedding.ID,
		wedding.OrganizerID,
		wedding.WeddingTitle,
		wedding.Partner1Name,
		wedding.Partner2Name,
		wedding.WeddingDate,
		wedding.Location,
	).Scan(
		&created.ID,
		&created.OrganizerID,
		&created.WeddingTitle,
		&created.Partner1Name,
		&created.Partner2Name,
		&created.WeddingDate,
		&created.Location,
		&created.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &created, nil
}

// получаем свадьбу по id
func (r *WeddingRepository) GetById(ctx context.Context, id string) (*entity.Wedding, error) {
	query := `
	SELECT id, organizer_id, wedding_title, partner1_name, partner2_name, wedding_date, location, created_at
	FROM weddings
	WHERE id = $1
	`
	var wedding entity.Wedding

	err := r.db.QueryRow(ctx, query, id).Scan(
		&wedding.ID,
		&wedding.OrganizerID,
		&wedding.WeddingTitle,
		&wedding.Partner1Name,
		&wedding.Partner2Name,
		&wedding.WeddingDate,
		&wedding.Location,
		&wedding.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &wedding, nil
}

// GetEarliestByOrganizer - хронологически ближайшая свадьба организатора,
// дефолт, когда weddingId в запросе не передан
func (r *WeddingRepository) GetEarliestByOrganizer(ctx context.Context, organizerId string) (*entity.Wedding, error) {
	query := `
	SELECT id, organizer_id, wedding_title, partner1_name, partner2_name, wedding_date, location, created_at
	FROM weddings
	WHERE organizer_id = $1
	ORDER BY wedding_date ASC NULLS LAST
	LIMIT 1
	`
	var wedding entity.Wedding

	err := r.db.QueryRow(ctx, query, organizerId).Scan(
		&wedding.ID,
		&wedding.OrganizerID,
		&wedding.WeddingTitle,
		&wedding.Partner1Name,
		&wedding.Partner2Name,
		&wedding.WeddingDate,
		&wedding.Location,
		&wedding.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &wedding, nil
}

// ListByOrganizer - все свадьбы организатора
func (r *WeddingRepository) ListByOrganizer(ctx context.Context, organizerId string) ([]entity.Wedding, error) {
	query := `
	SELECT id, organizer_id, wedding_title, partner1_name, partner2_name, wedding_date, location, created_at
	FROM weddings
	WHERE organizer_id = $1
	ORDER BY wedding_date ASC NULLS LAST
	`

	rows, err := r.db.Query(ctx, query, organizerId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weddings []entity.Wedding
	for rows.Next() {
		var wedding entity.Wedding
		err := rows.Scan(
			&wedding.ID,
			&wedding.OrganizerID,
			&wedding.WeddingTitle,
			&wedding.Partner1Name,
			&wedding.Partner2Name,
			&wedding.WeddingDate,
			&wedding.Location,
			&wedding.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		weddings = append(weddings, wedding)
	}

	return weddings, rows.Err()
}

// ListClientIds - привязанные к свадьбе клиенты
func (r *WeddingRepository) ListClientIds(ctx context.Context, weddingId string) ([]string, error) {
	query := `
	SELECT client_id
	FROM wedding_clients
	WHERE wedding_id = $1
	`

	rows, err := r.db.Query(ctx, query, weddingId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
