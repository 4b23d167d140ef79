package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// Service индекс доступности шале
// Занятость определяется только активными (pending, confirmed) бронированиями,
// каталог шале здесь не участвует: неизвестное шале просто свободно
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// IsAvailable проверяет, свободен ли полуоткрытый интервал [checkIn, checkOut)
// День выезда существующей брони может быть днём заезда новой
func (s *Service) IsAvailable(ctx context.Context, chaletID int64, checkIn, checkOut time.Time) (bool, error) {
	stay, err := domain.NewDateRange(checkIn, checkOut)
	if err != nil {
		s.logger.Warn("IsAvailable: invalid range for chalet=%d: %v", chaletID, err)
		return false, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	active, err := s.bookingRepo.GetActiveByChalet(ctx, chaletID, &stay)
	if err != nil {
		s.logger.Error("IsAvailable: repository error for chalet=%d: %v", chaletID, err)
		return false, fmt.Errorf("%w: IsAvailable - repository error: %v", ErrInternal, err)
	}

	for _, b := range active {
		if b.IsActive() && b.Range().Overlaps(stay) {
			s.logger.Info("IsAvailable: chalet=%d %s..%s conflicts with booking id=%d",
				chaletID, stay.CheckIn.Format(domain.DateFormat), stay.CheckOut.Format(domain.DateFormat), b.ID)
			return false, nil
		}
	}

	return true, nil
}

// BookedDates возвращает занятые дни шале по возрастанию, без повторов
// День выезда не считается занятым. Если задано окно, дни ограничиваются [window.CheckIn, window.CheckOut)
func (s *Service) BookedDates(ctx context.Context, chaletID int64, window *domain.DateRange) ([]time.Time, error) {
	active, err := s.bookingRepo.GetActiveByChalet(ctx, chaletID, window)
	if err != nil {
		s.logger.Error("BookedDates: repository error for chalet=%d: %v", chaletID, err)
		return nil, fmt.Errorf("%w: BookedDates - repository error: %v", ErrInternal, err)
	}

	seen := make(map[time.Time]struct{})
	dates := make([]time.Time, 0)

	for _, b := range active {
		if !b.IsActive() {
			continue
		}

		stay := b.Range()
		if window != nil {
			clipped, ok := stay.Clip(window.CheckIn, window.CheckOut)
			if !ok {
				continue
			}
			stay = clipped
		}

		for _, d := range stay.Days() {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	s.logger.Info("BookedDates: chalet=%d has %d booked days", chaletID, len(dates))
	return dates, nil
}
