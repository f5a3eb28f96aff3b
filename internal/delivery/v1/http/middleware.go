package http

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/otkirbek-shop/go-storefront/internal/infrastructure/telegram"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// InitDataVerifier проверяет подпись Telegram initData из заголовка.
type InitDataVerifier interface {
	Verify(initData string) (*telegram.InitDataUser, error)
}

type ctxKey string

const userCtxKey ctxKey = "telegram_user"

// userFromCtx возвращает пользователя, положенного auth-middleware.
func userFromCtx(ctx context.Context) (*telegram.InitDataUser, error) {
	user, ok := ctx.Value(userCtxKey).(*telegram.InitDataUser)
	if !ok || user == nil {
		return nil, e.ErrInitDataRequired
	}
	return user, nil
}

// AuthMiddleware проверяет initData в каждом запросе и кладет
// пользователя в контекст. Mini App передает initData в заголовке
// X-Telegram-Init-Data при каждом вызове API.
type AuthMiddleware struct {
	verifier InitDataVerifier
	logger   logger.Logger
}

func NewAuthMiddleware(verifier InitDataVerifier, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

func (m *AuthMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.verifier.Verify(r.Header.Get("X-Telegram-Init-Data"))
		if err != nil {
			m.logger.Warnf("initData verification failed: %v", err)
			WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey, user)))
	})
}

// AdminMiddleware пускает дальше только пользователей из списка
// администраторов. Первый успешный вход за время жизни сессии
// логируется и помечается в Redis.
type AdminMiddleware struct {
	adminIDs    []int64
	sessionRepo usecase.SessionRepository
	sessionTTL  time.Duration
	logger      logger.Logger
}

func NewAdminMiddleware(adminIDs []int64, sessionRepo usecase.SessionRepository, sessionTTL time.Duration, logger logger.Logger) *AdminMiddleware {
	return &AdminMiddleware{
		adminIDs:    adminIDs,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (m *AdminMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := userFromCtx(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}

		if !slices.Contains(m.adminIDs, user.ID) {
			m.logger.Warnf("Admin access denied for user %d", user.ID)
			WriteError(w, e.ErrNotAdmin)
			return
		}

		active, err := m.sessionRepo.HasAdminSession(r.Context(), user.ID)
		if err != nil {
			// Redis недоступен — не повод блокировать админа
			m.logger.Warnf("Admin session check failed: %v", err)
		}
		if !active {
			m.logger.Infof("Admin session started for user %d", user.ID)
			if err := m.sessionRepo.SetAdminSession(r.Context(), user.ID, m.sessionTTL); err != nil {
				m.logger.Warnf("Failed to store admin session: %v", err)
			}
		}

		next.ServeHTTP(w, r)
	})
}
