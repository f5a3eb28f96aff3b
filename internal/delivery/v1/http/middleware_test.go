package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otkirbek-shop/go-storefront/internal/infrastructure/telegram"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

type fakeVerifier struct {
	verifyFn func(initData string) (*telegram.InitDataUser, error)
}

func (f *fakeVerifier) Verify(initData string) (*telegram.InitDataUser, error) {
	return f.verifyFn(initData)
}

type fakeSessionRepo struct {
	active map[int64]bool
	set    []int64
}

func (f *fakeSessionRepo) SetAdminSession(_ context.Context, userID int64, _ time.Duration) error {
	f.set = append(f.set, userID)
	return nil
}

func (f *fakeSessionRepo) HasAdminSession(_ context.Context, userID int64) (bool, error) {
	return f.active[userID], nil
}

func withUser(r *http.Request, user *telegram.InitDataUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userCtxKey, user))
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("валидный initData кладет пользователя в контекст", func(t *testing.T) {
		verifier := &fakeVerifier{
			verifyFn: func(initData string) (*telegram.InitDataUser, error) {
				assert.Equal(t, "signed-init-data", initData)
				return &telegram.InitDataUser{ID: 99, FirstName: "Алишер"}, nil
			},
		}
		mw := NewAuthMiddleware(verifier, logger.NewSlogLogger())

		var got *telegram.InitDataUser
		handler := mw.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := userFromCtx(r.Context())
			require.NoError(t, err)
			got = user
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("X-Telegram-Init-Data", "signed-init-data")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, int64(99), got.ID)
	})

	t.Run("невалидный initData — 401, хендлер не вызывается", func(t *testing.T) {
		verifier := &fakeVerifier{
			verifyFn: func(string) (*telegram.InitDataUser, error) {
				return nil, e.ErrInvalidInitData
			},
		}
		mw := NewAuthMiddleware(verifier, logger.NewSlogLogger())

		called := false
		handler := mw.Handle(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}

func TestAdminMiddleware(t *testing.T) {
	adminIDs := []int64{100}

	t.Run("не-админ получает 403", func(t *testing.T) {
		sessions := &fakeSessionRepo{active: map[int64]bool{}}
		mw := NewAdminMiddleware(adminIDs, sessions, time.Hour, logger.NewSlogLogger())

		called := false
		handler := mw.Handle(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", nil), &telegram.InitDataUser{ID: 7})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)
		assert.Empty(t, sessions.set)
	})

	t.Run("админ проходит, первая сессия помечается", func(t *testing.T) {
		sessions := &fakeSessionRepo{active: map[int64]bool{}}
		mw := NewAdminMiddleware(adminIDs, sessions, time.Hour, logger.NewSlogLogger())

		called := false
		handler := mw.Handle(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", nil), &telegram.InitDataUser{ID: 100})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, []int64{100}, sessions.set)
	})

	t.Run("активная сессия не перезаписывается", func(t *testing.T) {
		sessions := &fakeSessionRepo{active: map[int64]bool{100: true}}
		mw := NewAdminMiddleware(adminIDs, sessions, time.Hour, logger.NewSlogLogger())

		handler := mw.Handle(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", nil), &telegram.InitDataUser{ID: 100})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, sessions.set)
	})

	t.Run("запрос без пользователя в контексте — 401", func(t *testing.T) {
		mw := NewAdminMiddleware(adminIDs, &fakeSessionRepo{active: map[int64]bool{}}, time.Hour, logger.NewSlogLogger())

		handler := mw.Handle(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
