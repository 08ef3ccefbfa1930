package models

import "time"

// Purchase фиксирует покупку курса пользователем.
type Purchase struct {
	ID          string    `json:"id"`
	UserID      string    `json:"korisnikId"`
	CourseID    string    `json:"kursId"`
	Price       float64   `json:"cena"`
	PurchasedAt time.Time `json:"datumKupovine"`
}

// PurchasedCourse - покупка вместе с данными курса.
type PurchasedCourse struct {
	Purchase
	Course Course `json:"kurs"`
}

// CheckoutItem - позиция корзины.
type CheckoutItem struct {
	ID string `json:"id" validate:"required,uuid"`
}

// CheckoutRequest - корзина клиента.
type CheckoutRequest struct {
	Items []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

// CheckoutCompleted - событие завершённой оплаты от платёжного провайдера.
type CheckoutCompleted struct {
	SessionID string
	UserID    string
	CourseIDs []string
}

// PurchaseEvent публикуется в брокер после записи покупок.
type PurchaseEvent struct {
	UserID    string    `json:"korisnikId"`
	CourseIDs []string  `json:"kursIds"`
	SessionID string    `json:"sessionId"`
	At        time.Time `json:"vreme"`
}
