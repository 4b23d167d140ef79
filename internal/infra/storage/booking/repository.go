package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChaletBookingService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// Коды ошибок PostgreSQL
const (
	pqUniqueViolation         = "23505"
	pqExclusionViolation      = "23P01"
	pqSerializationFailure    = "40001"
	pqDeadlockDetected        = "40P01"
	uniqueReferenceConstraint = "bookings_reference_key"
)

var bookingColumns = []string{
	"id",
	"reference",
	"chalet_id",
	"guest_phone",
	"check_in_date",
	"check_out_date",
	"total_price",
	"deposit_amount",
	"payment_reference",
	"commission_amount",
	"status",
	"confirmed_by",
	"confirmed_at",
	"cancelled_by",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение дат с активной бронью дополнительно защищено exclusion-ограничением в БД
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"reference",
			"chalet_id",
			"guest_phone",
			"check_in_date",
			"check_out_date",
			"total_price",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			booking.Reference,
			booking.ChaletID,
			booking.GuestPhone,
			booking.CheckIn,
			booking.CheckOut,
			booking.TotalPrice,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		return nil, classifyError("Create - execute insert", err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveByChalet получает активные (pending, confirmed) бронирования шале
// Если указано окно, возвращает только бронирования, пересекающие [window.CheckIn, window.CheckOut).
// Внутри транзакции строки блокируются (FOR UPDATE) - так создание брони видит согласованное состояние
func (r *Repository) GetActiveByChalet(ctx context.Context, chaletID int64, window *domain.DateRange) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"chalet_id": chaletID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})

	// Полуоткрытые интервалы: check_in < window.out AND check_out > window.in
	if window != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Lt{"check_in_date": window.CheckOut}).
			Where(squirrel.Gt{"check_out_date": window.CheckIn})
	}

	selectBuilder = selectBuilder.OrderBy("check_in_date ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByChalet - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByChalet - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// LockChalet берёт транзакционную advisory-блокировку на шале
// Два параллельных создания брони для одного шале выполняются последовательно,
// даже если строк для FOR UPDATE ещё нет. Работает только внутри транзакции
func (r *Repository) LockChalet(ctx context.Context, chaletID int64) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockChalet - must be called inside a transaction", ErrTransaction)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", chaletID); err != nil {
		return classifyError("LockChalet - acquire advisory lock", err)
	}

	return nil
}

// Query получает бронирования по фильтру
// Сортировка: check_in_date ASC, id ASC - детерминированная для пагинации
//
// Примеры использования:
//
// 1. Все бронирования шале:
//    filter := domain.BookingFilter{ChaletID: ptr.Ptr(int64(7))}
//
// 2. Только ожидающие подтверждения:
//    filter := domain.BookingFilter{Status: ptr.Ptr(domain.StatusPending)}
//
// 3. Заезды за март:
//    filter := domain.BookingFilter{CheckInFrom: &march1, CheckInTo: &march31}
func (r *Repository) Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From(tableBookings)

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.ChaletID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"chalet_id": *filter.ChaletID})
	}
	if filter.CheckInFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"check_in_date": domain.DateOnly(*filter.CheckInFrom)})
	}
	if filter.CheckInTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"check_in_date": domain.DateOnly(*filter.CheckInTo)})
	}
	if filter.GuestPhone != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"guest_phone": *filter.GuestPhone})
	}

	selectBuilder = selectBuilder.OrderBy("check_in_date ASC", "id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Query - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Query - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListStalePending возвращает ID бронирований в статусе pending, созданных не позже cutoff
func (r *Repository) ListStalePending(ctx context.Context, cutoff time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From(tableBookings).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.LtOrEq{"created_at": cutoff}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStalePending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStalePending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListStalePending - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStalePending - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// UpdateStatus атомарно меняет статус бронирования (compare-and-set по текущему статусу)
// UPDATE выполняется только если текущий статус входит в domain.AllowedFrom(change.To),
// поэтому параллельные confirm/cancel/автоотмена не затирают друг друга: выигрывает ровно один.
// Если ни одна строка не обновлена, перечитывает бронирование, чтобы отличить
// ErrBookingNotFound от *domain.InvalidTransitionError
func (r *Repository) UpdateStatus(ctx context.Context, id int64, change domain.StatusChange) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	allowed := domain.AllowedFrom(change.To)
	if len(allowed) == 0 {
		return nil, r.rejectTransition(ctx, id, change.To)
	}

	updateBuilder := psqlbuilder.Update(tableBookings).
		Set("status", change.To).
		Set("updated_at", change.At)

	switch change.To {
	case domain.StatusConfirmed:
		updateBuilder = updateBuilder.
			Set("deposit_amount", change.DepositAmount).
			Set("payment_reference", change.PaymentReference).
			Set("commission_amount", change.CommissionAmount).
			Set("confirmed_by", change.ActorID).
			Set("confirmed_at", change.At)
	case domain.StatusCancelled:
		// Депозит хранится только у подтверждённых бронирований
		updateBuilder = updateBuilder.
			Set("deposit_amount", nil).
			Set("cancelled_by", change.ActorID).
			Set("cancelled_at", change.At)
	case domain.StatusAutoCancelled:
		updateBuilder = updateBuilder.
			Set("cancelled_at", change.At)
	case domain.StatusPending:
		// AllowedFrom(pending) пуст, сюда не доходим
	}

	updateBuilder = updateBuilder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(allowed)})

	if change.CreatedBefore != nil {
		updateBuilder = updateBuilder.Where(squirrel.LtOrEq{"created_at": *change.CreatedBefore})
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.rejectTransition(ctx, id, change.To)
	}
	if err != nil {
		return nil, classifyError("UpdateStatus - execute update", err)
	}

	return booking, nil
}

// rejectTransition определяет, почему UPDATE не затронул строк
func (r *Repository) rejectTransition(ctx context.Context, id int64, requested domain.BookingStatus) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return &domain.InvalidTransitionError{
		BookingID: id,
		Current:   current.Status,
		Requested: requested,
	}
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ChaletID,
		&booking.GuestPhone,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.TotalPrice,
		&booking.DepositAmount,
		&booking.PaymentReference,
		&booking.CommissionAmount,
		&booking.Status,
		&booking.ConfirmedBy,
		&booking.ConfirmedAt,
		&booking.CancelledBy,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CheckIn = domain.DateOnly(booking.CheckIn)
	booking.CheckOut = domain.DateOnly(booking.CheckOut)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// classifyError переводит ошибки PostgreSQL в ошибки репозитория
func classifyError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation:
			return fmt.Errorf("%w: %s: %v", ErrDatesOverlap, op, err)
		case pqUniqueViolation:
			if pqErr.Constraint == uniqueReferenceConstraint {
				return fmt.Errorf("%w: %s: %v", ErrDuplicateReference, op, err)
			}
		case pqSerializationFailure, pqDeadlockDetected:
			return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
