package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/internal/infra/storage/booking"
)

// Repository реестр бронирований в памяти процесса
// Повторяет контракт PostgreSQL-репозитория, включая ошибки пакета booking,
// поэтому сервисы работают с ним без изменений (локальный запуск, тесты)
type Repository struct {
	mu         sync.RWMutex
	nextID     int64
	bookings   map[int64]*domain.Booking
	references map[string]int64
}

// NewRepository создает пустой реестр
func NewRepository() *Repository {
	return &Repository{
		bookings:   make(map[int64]*domain.Booking),
		references: make(map[string]int64),
	}
}

// Create сохраняет новое бронирование и присваивает ему ID
// Как и exclusion-ограничение в БД, отклоняет пересечение с активной бронью того же шале
func (r *Repository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.references[b.Reference]; exists {
		return nil, fmt.Errorf("%w: Create - reference %s", booking.ErrDuplicateReference, b.Reference)
	}

	if b.Status.IsActive() {
		for _, existing := range r.bookings {
			if existing.ChaletID == b.ChaletID && existing.IsActive() && existing.Range().Overlaps(b.Range()) {
				return nil, fmt.Errorf("%w: Create - chalet id=%d overlaps booking id=%d",
					booking.ErrDatesOverlap, b.ChaletID, existing.ID)
			}
		}
	}

	r.nextID++
	stored := b.Clone()
	stored.ID = r.nextID
	stored.CheckIn = domain.DateOnly(stored.CheckIn)
	stored.CheckOut = domain.DateOnly(stored.CheckOut)

	r.bookings[stored.ID] = stored
	r.references[stored.Reference] = stored.ID

	b.ID = stored.ID
	return stored.Clone(), nil
}

// GetByID возвращает копию бронирования
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return b.Clone(), nil
}

// GetActiveByChalet возвращает активные бронирования шале, пересекающие окно (если оно задано)
func (r *Repository) GetActiveByChalet(_ context.Context, chaletID int64, window *domain.DateRange) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ChaletID != chaletID || !b.IsActive() {
			continue
		}
		if window != nil && !b.Range().Overlaps(*window) {
			continue
		}
		result = append(result, b.Clone())
	}

	sortByCheckIn(result)
	return result, nil
}

// LockChalet в памяти создание брони уже сериализовано TxManager, достаточно проверить транзакцию
func (r *Repository) LockChalet(ctx context.Context, _ int64) error {
	if !inTransaction(ctx) {
		return fmt.Errorf("%w: LockChalet - must be called inside a transaction", booking.ErrTransaction)
	}
	return nil
}

// Query возвращает бронирования по фильтру, отсортированные по дате заезда и ID
func (r *Repository) Query(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Matches(b) {
			result = append(result, b.Clone())
		}
	}

	sortByCheckIn(result)

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*domain.Booking{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// ListStalePending возвращает ID бронирований pending, созданных не позже cutoff
func (r *Repository) ListStalePending(_ context.Context, cutoff time.Time) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stale := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.Status == domain.StatusPending && !b.CreatedAt.After(cutoff) {
			stale = append(stale, b)
		}
	}

	sort.Slice(stale, func(i, j int) bool {
		if !stale[i].CreatedAt.Equal(stale[j].CreatedAt) {
			return stale[i].CreatedAt.Before(stale[j].CreatedAt)
		}
		return stale[i].ID < stale[j].ID
	})

	ids := make([]int64, len(stale))
	for i, b := range stale {
		ids[i] = b.ID
	}
	return ids, nil
}

// UpdateStatus атомарно применяет смену статуса под блокировкой реестра
// При отказе бронирование не меняется, возвращается *domain.InvalidTransitionError
func (r *Repository) UpdateStatus(_ context.Context, id int64, change domain.StatusChange) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}

	// Apply меняет бронирование только в случае успеха
	if err := b.Apply(change); err != nil {
		return nil, err
	}

	return b.Clone(), nil
}

func sortByCheckIn(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CheckIn.Equal(bookings[j].CheckIn) {
			return bookings[i].CheckIn.Before(bookings[j].CheckIn)
		}
		return bookings[i].ID < bookings[j].ID
	})
}
