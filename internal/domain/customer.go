package domain

import (
	"regexp"
	"strings"

	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

// phoneRe — узбекский номер: константный код страны +998 и ровно 9 цифр.
var phoneRe = regexp.MustCompile(`^\+998\d{9}$`)

// CustomerInfo — контактные данные покупателя из формы оформления заказа.
type CustomerInfo struct {
	Phone    string
	Location string // координаты "lat,lon" или текстовое описание
	Address  string
	Name     string
}

// NormalizePhone убирает из номера пробелы, дефисы и скобки,
// которые допускаются при вводе ("+998 90 123 45 67").
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, phone)
}

// Validate проверяет обязательные поля формы. Телефон нормализуется
// перед проверкой; адрес и имя необязательны.
func (c *CustomerInfo) Validate() error {
	if strings.TrimSpace(c.Phone) == "" {
		return e.ErrPhoneRequired
	}

	if !phoneRe.MatchString(NormalizePhone(c.Phone)) {
		return e.ErrInvalidPhone
	}

	if strings.TrimSpace(c.Location) == "" {
		return e.ErrLocationRequired
	}

	return nil
}
