package chaletservice

import "github.com/m04kA/SMC-ChaletBookingService/internal/domain"

// Chalet модель шале из каталога
type Chalet struct {
	ID           int64   `json:"id"`
	NightlyPrice float64 `json:"nightlyPrice"`
	Title        Title   `json:"title"`
}

// Title локализованное название шале
type Title struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

// ErrorResponse модель ошибки от каталога шале
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (c *Chalet) ToDomain() *domain.Chalet {
	return &domain.Chalet{
		ID:           c.ID,
		NightlyPrice: c.NightlyPrice,
		TitleAr:      c.Title.Ar,
		TitleEn:      c.Title.En,
	}
}
