package repo

import (
	"context"
	"time"

	dom "github.com/Samridhilal/MoodBoard/internal/domain"
)

// MoodBoardRepo provides mood board persistence. Create is the single
// serialization point for the one-board-per-day rule: the table carries
// UNIQUE (user_id, day), so of two concurrent inserts for the same day
// exactly one wins and the other gets a unique violation.
type MoodBoardRepo interface {
	Create(ctx context.Context, b dom.MoodBoard) (dom.MoodBoard, error)
	GetByDay(ctx context.Context, userID int64, day time.Time) (dom.MoodBoard, error)
	ListByUser(ctx context.Context, userID int64) ([]dom.MoodBoard, error)
}

// PGMoodBoardRepo implements MoodBoardRepo with Postgres.
type PGMoodBoardRepo struct {
	db PgxPool
}

// NewPGMoodBoardRepo returns a new PGMoodBoardRepo.
func NewPGMoodBoardRepo(db PgxPool) *PGMoodBoardRepo {
	return &PGMoodBoardRepo{db: db}
}

// Create inserts a new board. No existence pre-check: on a duplicate
// (user_id, day) the unique index rejects the insert and the raw pgconn
// error is returned for callers to detect with utils.IsPGUniqueViolation.
func (r *PGMoodBoardRepo) Create(ctx context.Context, b dom.MoodBoard) (dom.MoodBoard, error) {
	query := `
		INSERT INTO mood_boards (user_id, day, emojis, image_url, color, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, day, emojis, image_url, color, note, created_at`
	var out dom.MoodBoard
	err := r.db.QueryRow(ctx, query, b.UserID, b.Day, b.Emojis, b.ImageURL, b.Color, b.Note).Scan(
		&out.ID, &out.UserID, &out.Day, &out.Emojis, &out.ImageURL, &out.Color, &out.Note,
		&out.CreatedAt,
	)
	return out, err
}

// GetByDay returns the board for (userID, day).
func (r *PGMoodBoardRepo) GetByDay(ctx context.Context, userID int64, day time.Time) (dom.MoodBoard, error) {
	query := `
		SELECT id, user_id, day, emojis, image_url, color, note, created_at
		FROM mood_boards WHERE user_id = $1 AND day = $2`
	var b dom.MoodBoard
	err := r.db.QueryRow(ctx, query, userID, day).Scan(
		&b.ID, &b.UserID, &b.Day, &b.Emojis, &b.ImageURL, &b.Color, &b.Note, &b.CreatedAt,
	)
	return b, err
}

// ListByUser returns all boards for the user, newest day first.
func (r *PGMoodBoardRepo) ListByUser(ctx context.Context, userID int64) ([]dom.MoodBoard, error) {
	query := `
		SELECT id, user_id, day, emojis, image_url, color, note, created_at
		FROM mood_boards WHERE user_id = $1 ORDER BY day DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.MoodBoard
	for rows.Next() {
		var b dom.MoodBoard
		if err := rows.Scan(&b.ID, &b.UserID, &b.Day, &b.Emojis, &b.ImageURL, &b.Color, &b.Note,
			&b.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
