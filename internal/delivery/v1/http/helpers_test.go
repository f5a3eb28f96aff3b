package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"ошибка валидации", e.ErrInvalidPhone, http.StatusBadRequest},
		{"пустая корзина", e.ErrCartEmpty, http.StatusBadRequest},
		{"товар не найден", e.ErrProductNotFound, http.StatusNotFound},
		{"заказ не найден", e.ErrOrderNotFound, http.StatusNotFound},
		{"недопустимый переход", e.ErrInvalidTransition, http.StatusConflict},
		{"нет initData", e.ErrInitDataRequired, http.StatusUnauthorized},
		{"просроченный initData", e.ErrInitDataExpired, http.StatusUnauthorized},
		{"не админ", e.ErrNotAdmin, http.StatusForbidden},
		{"каталог недоступен", e.ErrCatalogUnavailable, http.StatusServiceUnavailable},
		{"неизвестная ошибка", errors.New("boom"), http.StatusInternalServerError},
		{"обернутая ошибка распознается", e.Wrap("OrderUseCase.CreateOrder", e.ErrCartEmpty), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestParsePriceToTiyin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{"целые сумы", "12000", 1_200_000, nil},
		{"с тийинами", "12000.50", 1_200_050, nil},
		{"один знак после точки", "12000.5", 1_200_050, nil},
		{"пусто", "", 0, e.ErrInvalidPrice},
		{"не число", "дорого", 0, e.ErrInvalidPrice},
		{"ноль", "0", 0, e.ErrPriceMustBePositive},
		{"отрицательная", "-5", 0, e.ErrPriceMustBePositive},
		{"слишком большая", "1000000001", 0, e.ErrInvalidPrice},
		{"точнее тийина", "12000.005", 0, e.ErrPricePrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceToTiyin(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
