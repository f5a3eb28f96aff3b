package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

// InitDataUser — пользователь из поля user проверенного initData.
type InitDataUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// DisplayName возвращает человекочитаемое имя пользователя.
func (u *InitDataUser) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}

// InitDataVerifier проверяет подпись initData, которую Telegram
// передает Mini App при открытии. Схема из Bot API: секрет —
// HMAC-SHA256("WebAppData", токен бота), подпись — HMAC-SHA256
// секретом отсортированной строки key=value без поля hash.
type InitDataVerifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewInitDataVerifier(botToken string, ttl time.Duration) *InitDataVerifier {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))

	return &InitDataVerifier{
		secret: mac.Sum(nil),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Verify проверяет подпись и свежесть initData и возвращает пользователя.
func (v *InitDataVerifier) Verify(initData string) (*InitDataUser, error) {
	if strings.TrimSpace(initData) == "" {
		return nil, e.ErrInitDataRequired
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, e.ErrInvalidInitData
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, e.ErrInvalidInitData
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strings.Join(pairs, "\n")))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(hash)) {
		return nil, e.ErrInvalidInitData
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, e.ErrInvalidInitData
	}
	if v.ttl > 0 && v.now().Sub(time.Unix(authDate, 0)) > v.ttl {
		return nil, e.ErrInitDataExpired
	}

	var user InitDataUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return nil, e.ErrInvalidInitData
	}
	if user.ID == 0 {
		return nil, e.ErrInvalidInitData
	}

	return &user, nil
}
