package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	ChaletID   int64     // ID шале
	CheckIn    time.Time // Дата заезда (включительно)
	CheckOut   time.Time // Дата выезда (не включительно)
	GuestPhone string    // Телефон гостя, он же идентификатор гостя
	TotalPrice float64   // Полная стоимость, считается вне сервиса
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	Reference  string    // Номер брони для гостя
	ChaletID   int64     // ID шале
	GuestPhone string    // Телефон гостя
	CheckIn    time.Time // Дата заезда
	CheckOut   time.Time // Дата выезда
	Nights     int       // Количество ночей
	TotalPrice float64   // Полная стоимость
	Status     string    // Статус бронирования (всегда pending)

	CreatedAt time.Time // Время создания
}
