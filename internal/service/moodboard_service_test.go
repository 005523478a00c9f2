package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	dom "github.com/Samridhilal/MoodBoard/internal/domain"
	"github.com/Samridhilal/MoodBoard/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakeBoardRepo mimics the mood_boards table with its unique (user_id, day)
// index: check and insert happen under one lock, and the loser of a
// duplicate insert gets the same pgconn error Postgres would raise.
type fakeBoardRepo struct {
	mu     sync.Mutex
	byKey  map[string]dom.MoodBoard
	nextID int64
}

var _ repo.MoodBoardRepo = (*fakeBoardRepo)(nil)

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{byKey: map[string]dom.MoodBoard{}, nextID: 1}
}

func boardKey(userID int64, day time.Time) string {
	return strconv.FormatInt(userID, 10) + "/" + day.Format("2006-01-02")
}

func (f *fakeBoardRepo) Create(_ context.Context, b dom.MoodBoard) (dom.MoodBoard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := boardKey(b.UserID, b.Day)
	if _, exists := f.byKey[key]; exists {
		return dom.MoodBoard{}, &pgconn.PgError{Code: "23505", ConstraintName: "mood_boards_user_day_key"}
	}
	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now()
	f.byKey[key] = b
	return b, nil
}

func (f *fakeBoardRepo) GetByDay(_ context.Context, userID int64, day time.Time) (dom.MoodBoard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byKey[boardKey(userID, day)]
	if !ok {
		return dom.MoodBoard{}, pgx.ErrNoRows
	}
	return b, nil
}

func (f *fakeBoardRepo) ListByUser(_ context.Context, userID int64) ([]dom.MoodBoard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []dom.MoodBoard
	for _, b := range f.byKey {
		if b.UserID == userID {
			list = append(list, b)
		}
	}
	// newest day first, as the SQL ORDER BY does
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if list[j].Day.After(list[i].Day) {
				list[i], list[j] = list[j], list[i]
			}
		}
	}
	return list, nil
}

func newBoardService() (*MoodBoardService, *fakeBoardRepo) {
	r := newFakeBoardRepo()
	return NewMoodBoardService(r, nil, time.UTC), r
}

func validPayload() ([]string, string, string, string) {
	return []string{"🙂"}, "http://x/img.png", "#FF0000", "fine day"
}

func TestMoodBoardService_Create_FirstSucceedsSecondConflicts(t *testing.T) {
	s, _ := newBoardService()
	ctx := context.Background()
	emojis, img, color, note := validPayload()

	b, err := s.Create(ctx, 1, emojis, img, color, note)
	require.NoError(t, err)
	require.NotZero(t, b.ID)

	// Different payload, same identity and day: still rejected.
	_, err = s.Create(ctx, 1, []string{"😡"}, "http://x/other.png", "#00FF00", "")
	require.ErrorIs(t, err, ErrAlreadyPostedToday)

	// Another user is unaffected.
	_, err = s.Create(ctx, 2, emojis, img, color, note)
	require.NoError(t, err)
}

func TestMoodBoardService_Create_ConcurrentSameDay(t *testing.T) {
	s, _ := newBoardService()
	ctx := context.Background()
	emojis, img, color, note := validPayload()

	const n = 20
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(ctx, 1, emojis, img, color, note)
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyPostedToday):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, n-1, conflict)

	list, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestMoodBoardService_Create_Validation(t *testing.T) {
	s, _ := newBoardService()
	ctx := context.Background()

	cases := []struct {
		name   string
		emojis []string
		img    string
		color  string
		note   string
		field  string
	}{
		{"no emojis", nil, "http://x/img.png", "#FF0000", "", "emojis"},
		{"blank emoji", []string{" "}, "http://x/img.png", "#FF0000", "", "emojis"},
		{"no image", []string{"🙂"}, "  ", "#FF0000", "", "imageUrl"},
		{"no color", []string{"🙂"}, "http://x/img.png", "", "", "color"},
		{"long note", []string{"🙂"}, "http://x/img.png", "#FF0000", strings.Repeat("a", 201), "note"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, 1, tc.emojis, tc.img, tc.color, tc.note)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestMoodBoardService_Create_NoteBoundary(t *testing.T) {
	s, _ := newBoardService()
	ctx := context.Background()

	// Exactly 200 runes is allowed; multibyte runes count as one each.
	note := strings.Repeat("ñ", 200)
	_, err := s.Create(ctx, 1, []string{"🙂"}, "http://x/img.png", "#FF0000", note)
	require.NoError(t, err)
}

func TestMoodBoardService_GetToday(t *testing.T) {
	s, _ := newBoardService()
	ctx := context.Background()

	_, err := s.GetToday(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)

	emojis, img, color, note := validPayload()
	created, err := s.Create(ctx, 1, emojis, img, color, note)
	require.NoError(t, err)

	got, err := s.GetToday(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Emojis, got.Emojis)
}

func TestMoodBoardService_List_NewestFirst(t *testing.T) {
	s, r := newBoardService()
	ctx := context.Background()

	today := dom.DayKeyOf(time.Now(), time.UTC)
	for _, daysAgo := range []int{2, 0, 1} {
		_, err := r.Create(ctx, dom.MoodBoard{
			UserID:   1,
			Day:      today.AddDate(0, 0, -daysAgo),
			Emojis:   []string{"🙂"},
			ImageURL: "http://x/img.png",
			Color:    "#FF0000",
		})
		require.NoError(t, err)
	}

	list, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		require.True(t, list[i-1].Day.After(list[i].Day))
	}

	// No boards is an empty timeline, not an error.
	list, err = s.List(ctx, 9)
	require.NoError(t, err)
	require.Empty(t, list)
}
