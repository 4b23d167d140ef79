package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking.repository: %w", domain.ErrNotFound)

	// ErrDatesOverlap возвращается, когда exclusion-ограничение БД отклонило пересекающиеся даты
	ErrDatesOverlap = fmt.Errorf("booking.repository: overlaps an active booking: %w", domain.ErrConflict)

	// ErrDuplicateReference возвращается при коллизии номера брони
	ErrDuplicateReference = errors.New("booking.repository: duplicate booking reference")

	// ErrSerialization возвращается, когда PostgreSQL отменил сериализуемую транзакцию
	ErrSerialization = errors.New("booking.repository: serialization failure")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
