package domain

import "time"

// TelegramUser — пользователь Mini App, идентифицированный хост-средой Telegram.
type TelegramUser struct {
	ID        int64
	Name      string
	Phone     string
	CreatedAt time.Time
}

func NewTelegramUser(id int64, name, phone string) *TelegramUser {
	return &TelegramUser{
		ID:    id,
		Name:  name,
		Phone: phone,
	}
}
