package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Samridhilal/MoodBoard/internal/cache"
	dom "github.com/Samridhilal/MoodBoard/internal/domain"
	"github.com/Samridhilal/MoodBoard/internal/repo"
	"github.com/Samridhilal/MoodBoard/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrAlreadyPostedToday is the user-facing form of the unique
	// violation on (user_id, day). A client seeing it must not retry.
	ErrAlreadyPostedToday = errors.New("you can only create one mood board per day")
)

// ValidationError names the request field that failed a check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// MoodBoardService orchestrates board creation and reads. All "today"
// decisions are made in loc, the fixed reference zone.
type MoodBoardService struct {
	repo  repo.MoodBoardRepo
	cache *cache.MoodBoardCache
	loc   *time.Location
	sf    singleflight.Group
}

// NewMoodBoardService creates a MoodBoardService. If c is nil, caching is
// disabled. A nil loc means UTC.
func NewMoodBoardService(r repo.MoodBoardRepo, c *cache.MoodBoardCache, loc *time.Location) *MoodBoardService {
	if loc == nil {
		loc = time.UTC
	}
	return &MoodBoardService{repo: r, cache: c, loc: loc}
}

// Create validates the payload and inserts today's board. There is no
// "does today's board exist" pre-check: two concurrent calls both reach
// the insert, the unique index lets exactly one through, and the loser's
// violation is mapped to ErrAlreadyPostedToday.
func (s *MoodBoardService) Create(ctx context.Context, userID int64, emojis []string, imageURL, color, note string) (dom.MoodBoard, error) {
	imageURL = strings.TrimSpace(imageURL)
	color = strings.TrimSpace(color)

	if len(emojis) == 0 {
		return dom.MoodBoard{}, &ValidationError{Field: "emojis", Reason: "at least one emoji required"}
	}
	for _, e := range emojis {
		if strings.TrimSpace(e) == "" {
			return dom.MoodBoard{}, &ValidationError{Field: "emojis", Reason: "empty emoji"}
		}
	}
	if imageURL == "" {
		return dom.MoodBoard{}, &ValidationError{Field: "imageUrl", Reason: "required"}
	}
	if color == "" {
		return dom.MoodBoard{}, &ValidationError{Field: "color", Reason: "required"}
	}
	if utf8.RuneCountInString(note) > dom.NoteMaxLen {
		return dom.MoodBoard{}, &ValidationError{
			Field:  "note",
			Reason: fmt.Sprintf("must be at most %d characters", dom.NoteMaxLen),
		}
	}

	b, err := s.repo.Create(ctx, dom.MoodBoard{
		UserID:   userID,
		Day:      dom.DayKeyOf(time.Now(), s.loc),
		Emojis:   emojis,
		ImageURL: imageURL,
		Color:    color,
		Note:     note,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.MoodBoard{}, ErrAlreadyPostedToday
		}
		return dom.MoodBoard{}, err
	}
	s.invalidateCache(ctx, userID)
	return b, nil
}

// GetToday returns the board for the current day in the reference zone.
func (s *MoodBoardService) GetToday(ctx context.Context, userID int64) (dom.MoodBoard, error) {
	day := dom.DayKeyOf(time.Now(), s.loc)
	b, err := s.repo.GetByDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.MoodBoard{}, ErrNotFound
		}
		return dom.MoodBoard{}, err
	}
	return b, nil
}

// List returns all boards for the user, newest day first. The timeline is
// append-only within a day, so a short cache TTL is safe.
func (s *MoodBoardService) List(ctx context.Context, userID int64) ([]dom.MoodBoard, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetTimeline(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetTimeline(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.MoodBoard), nil
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *MoodBoardService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
