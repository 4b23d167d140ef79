package domain

// Chalet данные шале из каталога, нужные для подсказки депозита и отображения
type Chalet struct {
	ID           int64
	NightlyPrice float64
	TitleAr      string
	TitleEn      string
}

// Title возвращает название на нужном языке, с откатом на другой язык
func (c *Chalet) Title(lang string) string {
	if lang == "ar" && c.TitleAr != "" {
		return c.TitleAr
	}
	if c.TitleEn != "" {
		return c.TitleEn
	}
	return c.TitleAr
}

// SuggestDeposit подсказка депозита для формы подтверждения
// Цена одной ночи из каталога, если она известна, иначе полная стоимость брони.
// Только подсказка: подтверждение принимает любой депозит, переданный вызывающим
func SuggestDeposit(b *Booking, chalet *Chalet) float64 {
	if chalet != nil && chalet.NightlyPrice > 0 {
		return chalet.NightlyPrice
	}
	return b.TotalPrice
}

// Commission комиссия платформы как доля от полной стоимости
// rate <= 0 означает, что комиссия не считается
func Commission(total float64, rate float64) *float64 {
	if rate <= 0 || total <= 0 {
		return nil
	}
	c := roundCents(total * rate)
	return &c
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
