package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Samridhilal/MoodBoard/internal/auth"
	dom "github.com/Samridhilal/MoodBoard/internal/domain"
	"github.com/Samridhilal/MoodBoard/internal/repo"
	"github.com/Samridhilal/MoodBoard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// In-memory repos standing in for Postgres, duplicate inserts failing
// with the pgconn error the real unique indexes would raise.

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]dom.User
	nextID  int64
}

var _ repo.UserRepo = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byEmail == nil {
		f.byEmail = map[string]dom.User{}
		f.nextID = 1
	}
	if _, exists := f.byEmail[email]; exists {
		return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}
	for _, u := range f.byEmail {
		if u.Username == username {
			return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	u := dom.User{ID: f.nextID, Username: username, Email: email, PasswordHash: passwordHash}
	f.nextID++
	f.byEmail[email] = u
	return u, nil
}

type fakeBoardRepo struct {
	mu     sync.Mutex
	byKey  map[string]dom.MoodBoard
	nextID int64
}

var _ repo.MoodBoardRepo = (*fakeBoardRepo)(nil)

func boardKey(userID int64, day time.Time) string {
	return strconv.FormatInt(userID, 10) + "/" + day.Format("2006-01-02")
}

func (f *fakeBoardRepo) Create(_ context.Context, b dom.MoodBoard) (dom.MoodBoard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byKey == nil {
		f.byKey = map[string]dom.MoodBoard{}
		f.nextID = 1
	}
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
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if list[j].Day.After(list[i].Day) {
				list[i], list[j] = list[j], list[i]
			}
		}
	}
	return list, nil
}

// newTestRouter wires real handlers and services over in-memory repos,
// mirroring app.Setup without Postgres, Redis or swagger.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)
	userSvc := service.NewUserService(&fakeUserRepo{}, bcrypt.MinCost)
	boardSvc := service.NewMoodBoardService(&fakeBoardRepo{}, nil, time.UTC)

	r := gin.New()
	api := r.Group("/api")

	ah := NewAuthHandler(codec, userSvc)
	api.POST("/auth/signup", ah.Signup)
	api.POST("/auth/login", ah.Login)

	protected := api.Group("", auth.RequireAuth(codec))
	bh := NewMoodBoardHandler(boardSvc)
	protected.POST("/moodboards", bh.Create)
	protected.GET("/moodboards", bh.List)
	protected.GET("/moodboards/today", bh.GetToday)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func signup(t *testing.T, r *gin.Engine, username, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
