package repository

import (
	"context"
	"time"

	"pod-booking-core/internal/domain/hold"
	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const holdColumns = `id, room_id, check_in, check_out, session_id, user_id, stage, hold_expiry, converted, reservation_id, created_at`

type HoldRepository struct {
	pool *pgxpool.Pool
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{pool: pool}
}

func (r *HoldRepository) Create(ctx context.Context, h *hold.Hold) error {
	const stmt = `
INSERT INTO holds (id, room_id, check_in, check_out, session_id, user_id, stage, hold_expiry, converted, reservation_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := exec(ctx, r.pool, stmt,
		h.ID(),
		h.RoomID(),
		h.StayRange().CheckIn(),
		h.StayRange().CheckOut(),
		h.SessionID(),
		h.UserID(),
		h.Stage().String(),
		h.HoldExpiry(),
		h.Converted(),
		h.ReservationID(),
		h.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create hold", err)
	}
	return nil
}

func (r *HoldRepository) FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	const q = `SELECT ` + holdColumns + ` FROM holds WHERE id = $1`

	h, err := scanHold(queryRow(ctx, r.pool, q, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find hold by id", err)
	}
	return h, nil
}

func (r *HoldRepository) FindActiveOverlapping(ctx context.Context, roomID uuid.UUID, rng stay.Range, excludeSession *uuid.UUID, now time.Time) ([]*hold.Hold, error) {
	// Active means unconverted and unexpired at now; expired rows that the
	// sweep has not purged yet must never count.
	const q = `
SELECT ` + holdColumns + `
FROM holds
WHERE room_id = $1
  AND converted = FALSE
  AND hold_expiry > $2
  AND check_in < $3
  AND check_out > $4
  AND ($5::uuid IS NULL OR session_id <> $5)
ORDER BY created_at`

	rows, err := query(ctx, r.pool, q, roomID, now, rng.CheckOut(), rng.CheckIn(), excludeSession)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping holds", err)
	}
	defer rows.Close()

	var holds []*hold.Hold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan hold", err)
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate holds", err)
	}
	return holds, nil
}

func (r *HoldRepository) AdvanceStage(ctx context.Context, holdID uuid.UUID, stage hold.Stage, newExpiry time.Time) error {
	const stmt = `
UPDATE holds
SET stage = $2, hold_expiry = $3
WHERE id = $1 AND converted = FALSE`

	tag, err := exec(ctx, r.pool, stmt, holdID, stage.String(), newExpiry)
	if err != nil {
		return infra.WrapRepoErr("failed to advance hold stage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *HoldRepository) MarkConverted(ctx context.Context, holdID uuid.UUID, reservationID uuid.UUID) error {
	const stmt = `
UPDATE holds
SET converted = TRUE, reservation_id = $2
WHERE id = $1 AND converted = FALSE`

	tag, err := exec(ctx, r.pool, stmt, holdID, reservationID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark hold converted", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *HoldRepository) Release(ctx context.Context, holdID uuid.UUID) error {
	const stmt = `DELETE FROM holds WHERE id = $1`

	// Deleting an already-released hold is a no-op, not an error.
	if _, err := exec(ctx, r.pool, stmt, holdID); err != nil {
		return infra.WrapRepoErr("failed to release hold", err)
	}
	return nil
}

func (r *HoldRepository) ReleaseBySession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	const stmt = `DELETE FROM holds WHERE session_id = $1 AND converted = FALSE`

	tag, err := exec(ctx, r.pool, stmt, sessionID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release session holds", err)
	}
	return tag.RowsAffected(), nil
}

func (r *HoldRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	// Converted holds are the audit trail of their reservation and are never
	// purged. The delete is idempotent; concurrent sweeps just split the rows.
	const stmt = `DELETE FROM holds WHERE converted = FALSE AND hold_expiry <= $1`

	tag, err := exec(ctx, r.pool, stmt, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge expired holds", err)
	}
	return tag.RowsAffected(), nil
}

func scanHold(row pgx.Row) (*hold.Hold, error) {
	var (
		id, roomID, sessionID uuid.UUID
		userID, reservationID *uuid.UUID
		checkIn, checkOut     time.Time
		stage                 string
		holdExpiry, createdAt time.Time
		converted             bool
	)
	err := row.Scan(&id, &roomID, &checkIn, &checkOut, &sessionID, &userID, &stage, &holdExpiry, &converted, &reservationID, &createdAt)
	if err != nil {
		return nil, err
	}
	rng, err := stay.NewRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return hold.ReconstructHold(id, roomID, rng, sessionID, userID, hold.Stage(stage), holdExpiry, converted, reservationID, createdAt), nil
}
