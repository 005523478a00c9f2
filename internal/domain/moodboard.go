package domain

import "time"

// NoteMaxLen caps the optional note on a board, in runes.
const NoteMaxLen = 200

// MoodBoard is one mood record. Exactly one may exist per (UserID, Day);
// the mood_boards table enforces that with a unique index.
type MoodBoard struct {
	ID       int64
	UserID   int64
	Day      time.Time // midnight in the reference zone, see DayKeyOf
	Emojis   []string
	ImageURL string
	Color    string
	Note     string

	CreatedAt time.Time
}

// DayKeyOf truncates t to the start of its calendar day in loc. It is the
// single normalization rule for "today": every write and every read of a
// board's day slot must go through it, otherwise boards created near
// midnight could land on different days depending on the caller's zone.
func DayKeyOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
