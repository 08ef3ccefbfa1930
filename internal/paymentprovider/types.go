package paymentprovider

import "math"

// LineItem - позиция оплачиваемой корзины.
type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64 // в минимальных единицах валюты (центах)
}

// SessionRequest - запрос на создание страницы оплаты.
type SessionRequest struct {
	UserID    string
	CourseIDs []string
	Items     []LineItem
}

// Session - созданная сессия оплаты.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// providerError - тело ошибки провайдера.
type providerError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ToCents переводит цену в центы с округлением до ближайшего.
func ToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
