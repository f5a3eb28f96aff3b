package main

import "github.com/otkirbek-shop/go-storefront/internal/app"

//	@title			Storefront API
//	@version		1.0
//	@description	BFF Telegram Mini App магазина: каталог, корзина, заказы, избранное.

//	@BasePath	/api/v1

func main() {
	app.Run()
}
