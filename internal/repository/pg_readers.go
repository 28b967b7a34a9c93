package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeongjo/reminderhub/internal/domain"
)

// The events / users / user_settings tables are owned by the CRUD
// collaborators; no migration here creates them and nothing here
// writes to them.

type pgEventReader struct {
	pool *pgxpool.Pool
}

func NewPgEventReader(pool *pgxpool.Pool) EventReader {
	return &pgEventReader{pool: pool}
}

func (r *pgEventReader) GetEvent(ctx context.Context, id int64) (*domain.CalendarEvent, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, category, start_at, location, status
		FROM events WHERE id = $1`, id)

	var e domain.CalendarEvent
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Category, &e.StartAt, &e.Location, &e.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

type pgPreferenceReader struct {
	pool *pgxpool.Pool
}

func NewPgPreferenceReader(pool *pgxpool.Pool) PreferenceReader {
	return &pgPreferenceReader{pool: pool}
}

func (r *pgPreferenceReader) GetPreferences(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT u.id,
		       COALESCE(s.push_enabled, TRUE),
		       COALESCE(s.category_opt_outs, '{}'),
		       COALESCE(u.device_token, '')
		FROM users u
		LEFT JOIN user_settings s ON s.user_id = u.id
		WHERE u.id = $1`, userID)

	var p domain.UserPreference
	var optOuts []string
	err := row.Scan(&p.UserID, &p.PushEnabled, &optOuts, &p.DeviceToken)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	p.CategoryOptOuts = make([]domain.Category, 0, len(optOuts))
	for _, c := range optOuts {
		p.CategoryOptOuts = append(p.CategoryOptOuts, domain.Category(c))
	}
	return &p, nil
}
