package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

const testBotToken = "123456:ABC-DEF1234ghIkl"

// signInitData собирает initData и подписывает его по той же схеме,
// что и Telegram: HMAC-SHA256 секретом из токена бота.
func signInitData(t *testing.T, botToken string, values url.Values) string {
	t.Helper()

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secretMAC := hmac.New(sha256.New, []byte("WebAppData"))
	secretMAC.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secretMAC.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func validInitData(t *testing.T, authDate time.Time) string {
	t.Helper()

	values := url.Values{}
	values.Set("user", `{"id":99,"first_name":"Алишер","last_name":"Усманов","username":"alisher"}`)
	values.Set("auth_date", fmt.Sprintf("%d", authDate.Unix()))
	values.Set("query_id", "AAH9mZEbAAAAAP2ZkRtZiCWN")

	return signInitData(t, testBotToken, values)
}

func TestInitDataVerifier_Verify(t *testing.T) {
	verifier := NewInitDataVerifier(testBotToken, time.Hour)

	t.Run("валидная подпись", func(t *testing.T) {
		user, err := verifier.Verify(validInitData(t, time.Now()))

		require.NoError(t, err)
		assert.Equal(t, int64(99), user.ID)
		assert.Equal(t, "Алишер Усманов", user.DisplayName())
	})

	t.Run("пустой initData", func(t *testing.T) {
		_, err := verifier.Verify("   ")

		assert.ErrorIs(t, err, e.ErrInitDataRequired)
	})

	t.Run("подмена поля ломает подпись", func(t *testing.T) {
		initData := validInitData(t, time.Now())
		tampered := strings.Replace(initData, "alisher", "intruder", 1)

		_, err := verifier.Verify(tampered)

		assert.ErrorIs(t, err, e.ErrInvalidInitData)
	})

	t.Run("подпись чужим токеном", func(t *testing.T) {
		values := url.Values{}
		values.Set("user", `{"id":99,"first_name":"Алишер"}`)
		values.Set("auth_date", fmt.Sprintf("%d", time.Now().Unix()))
		initData := signInitData(t, "000000:other-bot-token", values)

		_, err := verifier.Verify(initData)

		assert.ErrorIs(t, err, e.ErrInvalidInitData)
	})

	t.Run("отсутствующий hash", func(t *testing.T) {
		_, err := verifier.Verify("user=%7B%22id%22%3A99%7D&auth_date=1")

		assert.ErrorIs(t, err, e.ErrInvalidInitData)
	})

	t.Run("просроченный auth_date", func(t *testing.T) {
		_, err := verifier.Verify(validInitData(t, time.Now().Add(-2*time.Hour)))

		assert.ErrorIs(t, err, e.ErrInitDataExpired)
	})

	t.Run("нулевой TTL отключает проверку свежести", func(t *testing.T) {
		eternal := NewInitDataVerifier(testBotToken, 0)

		user, err := eternal.Verify(validInitData(t, time.Now().Add(-24*time.Hour)))

		require.NoError(t, err)
		assert.Equal(t, int64(99), user.ID)
	})

	t.Run("пользователь без id", func(t *testing.T) {
		values := url.Values{}
		values.Set("user", `{"first_name":"Без Айди"}`)
		values.Set("auth_date", fmt.Sprintf("%d", time.Now().Unix()))
		initData := signInitData(t, testBotToken, values)

		_, err := verifier.Verify(initData)

		assert.ErrorIs(t, err, e.ErrInvalidInitData)
	})
}

func TestInitDataUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user InitDataUser
		want string
	}{
		{"имя и фамилия", InitDataUser{FirstName: "Алишер", LastName: "Усманов"}, "Алишер Усманов"},
		{"только имя", InitDataUser{FirstName: "Алишер"}, "Алишер"},
		{"фоллбэк на username", InitDataUser{Username: "alisher"}, "alisher"},
		{"все пусто", InitDataUser{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}
