package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeongjo/reminderhub/internal/clock"
	"github.com/gyeongjo/reminderhub/internal/domain"
)

type pgQueue struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

// NewPgQueue returns a DeferredQueue backed by the scheduled_tasks table.
func NewPgQueue(pool *pgxpool.Pool, clk clock.Clock) DeferredQueue {
	return &pgQueue{pool: pool, clock: clk}
}

func (q *pgQueue) Enqueue(ctx context.Context, kind domain.TaskKind, payload any, fireAt time.Time) (Handle, error) {
	if !kind.IsValid() {
		return Handle{}, domain.ErrInvalidKind
	}
	if !fireAt.After(q.clock.Now()) {
		return Handle{}, domain.ErrFireAtInPast
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Handle{}, fmt.Errorf("marshal task payload: %w", err)
	}

	id := uuid.New().String()
	_, err = q.pool.Exec(ctx, `
		INSERT INTO scheduled_tasks (id, kind, payload, fire_at, status, created_at)
		VALUES ($1, $2, $3, $4, 'pending', NOW())`,
		id, kind, body, fireAt,
	)
	if err != nil {
		return Handle{}, fmt.Errorf("insert scheduled task: %w", err)
	}

	return Handle{ID: id, Kind: kind, FireAt: fireAt}, nil
}

// ClaimDue flips due pending rows to claimed and returns them.
// FOR UPDATE SKIP LOCKED lets multiple service instances poll the same
// table without handing a task to two workers at once.
func (q *pgQueue) ClaimDue(ctx context.Context, limit int) ([]*Task, error) {
	rows, err := q.pool.Query(ctx, `
		UPDATE scheduled_tasks
		SET status = 'claimed', claimed_at = NOW()
		WHERE id IN (
			SELECT id FROM scheduled_tasks
			WHERE status = 'pending' AND fire_at <= NOW()
			ORDER BY fire_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, payload, fire_at`, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Kind, &t.Payload, &t.FireAt); err != nil {
			return nil, fmt.Errorf("scan claimed task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

func (q *pgQueue) Complete(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `
		UPDATE scheduled_tasks
		SET status = 'done', finished_at = NOW()
		WHERE id = $1`, id)
	return err
}

func (q *pgQueue) Fail(ctx context.Context, id, reason string) error {
	_, err := q.pool.Exec(ctx, `
		UPDATE scheduled_tasks
		SET status = 'failed', finished_at = NOW(), last_error = $1
		WHERE id = $2`, reason, id)
	return err
}

func (q *pgQueue) Release(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `
		UPDATE scheduled_tasks
		SET status = 'pending', claimed_at = NULL
		WHERE id = $1 AND status = 'claimed'`, id)
	return err
}

func (q *pgQueue) ReleaseStale(ctx context.Context, ttl time.Duration) (int, error) {
	tag, err := q.pool.Exec(ctx, `
		UPDATE scheduled_tasks
		SET status = 'pending', claimed_at = NULL
		WHERE status = 'claimed' AND claimed_at < NOW() - $1::interval`,
		fmt.Sprintf("%f seconds", ttl.Seconds()),
	)
	if err != nil {
		return 0, fmt.Errorf("release stale claims: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (q *pgQueue) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := q.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM scheduled_tasks WHERE status = 'pending'`).Scan(&n)
	return n, err
}

// compile-time check
var _ DeferredQueue = (*pgQueue)(nil)
