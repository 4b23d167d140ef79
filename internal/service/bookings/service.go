package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ChaletBookingService/internal/service/bookings/models"
)

// DefaultListLimit размер страницы списка, если limit не указан
const DefaultListLimit = 50

// Config бизнес-настройки сервиса
type Config struct {
	// CommissionRate доля комиссии платформы от полной стоимости; 0 - комиссия не считается
	CommissionRate float64
}

// Service сервис управления бронированиями: просмотр, подтверждение, отмена
type Service struct {
	bookingRepo  BookingRepository
	chaletClient ChaletServiceClient
	publisher    EventPublisher
	metrics      Metrics
	config       Config
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	chaletClient ChaletServiceClient,
	publisher EventPublisher,
	metrics Metrics,
	config Config,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		chaletClient: chaletClient,
		publisher:    publisher,
		metrics:      metrics,
		config:       config,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по фильтру
// Сортировка по дате заезда и ID, размер страницы ограничен domain.MaxListLimit
//
// Примеры использования:
// - Все брони шале: List(ctx, &ListBookingsRequest{ChaletID: ptr.Ptr(int64(7))})
// - Только ожидающие: Status = "pending"
// - Заезды за период: From и To (включительно)
// - Брони гостя: GuestPhone
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > domain.MaxListLimit {
		filter.Limit = domain.MaxListLimit
	}

	s.logger.Info("List: fetching bookings, limit=%d, offset=%d", filter.Limit, filter.Offset)

	bookings, err := s.bookingRepo.Query(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, filter.Limit, filter.Offset), nil
}

// Confirm подтверждает ожидающую бронь после получения депозита
// Возвращает *domain.InvalidTransitionError, если бронь уже не в статусе pending
func (s *Service) Confirm(ctx context.Context, bookingID int64, req *models.ConfirmBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d, deposit=%.2f", bookingID, req.UserID, req.DepositAmount)

	change, err := domain.NewConfirmChange(req.DepositAmount, req.PaymentReference, req.UserID, s.timeProvider.Now().UTC())
	if err != nil {
		s.logger.Warn("Confirm: invalid input for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if s.config.CommissionRate > 0 {
		booking, err := s.getBooking(ctx, "Confirm", bookingID)
		if err != nil {
			return nil, err
		}
		change.CommissionAmount = domain.Commission(booking.TotalPrice, s.config.CommissionRate)
	}

	return s.transition(ctx, "Confirm", bookingID, change)
}

// Cancel отменяет бронь (pending или confirmed)
// Отменять может только владелец или администратор
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d, role=%s", bookingID, req.UserID, req.Role)

	role, ok := domain.ParseRole(req.Role)
	if !ok || !role.CanManageBookings() {
		s.logger.Warn("Cancel: user=%d with role=%q is not allowed to cancel booking id=%d", req.UserID, req.Role, bookingID)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, "Cancel", bookingID, domain.NewCancelChange(req.UserID, s.timeProvider.Now().UTC()))
}

// SuggestDeposit подсказка депозита: цена ночи из каталога или полная стоимость брони
// Недоступность каталога не является ошибкой, используется полная стоимость
func (s *Service) SuggestDeposit(ctx context.Context, bookingID int64) (*models.DepositSuggestionResponse, error) {
	booking, err := s.getBooking(ctx, "SuggestDeposit", bookingID)
	if err != nil {
		return nil, err
	}

	chalet, err := s.chaletClient.GetChaletWithGracefulDegradation(ctx, booking.ChaletID)
	if err != nil {
		s.logger.Warn("SuggestDeposit: chalet id=%d unavailable, falling back to total price: %v", booking.ChaletID, err)
		chalet = nil
	}

	resp := &models.DepositSuggestionResponse{
		BookingID:        booking.ID,
		SuggestedDeposit: domain.SuggestDeposit(booking, chalet),
		Source:           models.DepositSourceTotalPrice,
	}

	if chalet != nil {
		if chalet.NightlyPrice > 0 {
			resp.Source = models.DepositSourceNightlyPrice
		}
		if chalet.TitleAr != "" {
			resp.ChaletTitleAr = &chalet.TitleAr
		}
		if chalet.TitleEn != "" {
			resp.ChaletTitleEn = &chalet.TitleEn
		}
	}

	s.logger.Info("SuggestDeposit: booking id=%d suggested=%.2f source=%s", booking.ID, resp.SuggestedDeposit, resp.Source)
	return resp, nil
}

// transition выполняет атомарную смену статуса и публикует событие
func (s *Service) transition(ctx context.Context, op string, bookingID int64, change domain.StatusChange) (*models.BookingResponse, error) {
	updated, err := s.bookingRepo.UpdateStatus(ctx, bookingID, change)
	if err != nil {
		s.metrics.ObserveTransition(change.To.String(), false)

		var ite *domain.InvalidTransitionError
		switch {
		case errors.As(err, &ite):
			s.logger.Warn("%s: booking id=%d is %s, cannot move to %s", op, bookingID, ite.Current, ite.Requested)
			return nil, ite
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		default:
			s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	s.metrics.ObserveTransition(change.To.String(), true)
	s.logger.Info("%s: booking id=%d is now %s", op, updated.ID, updated.Status)

	if err := s.publisher.PublishStatusChanged(ctx, updated); err != nil {
		s.logger.Error("%s: failed to publish event for booking id=%d: %v", op, updated.ID, err)
	}

	return models.FromDomainBooking(updated), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
