package lock

import "errors"

var (
	// ErrNotAcquired блокировка занята другим экземпляром сервиса
	ErrNotAcquired = errors.New("lock: already held by another owner")

	// ErrRedis ошибка обращения к Redis
	ErrRedis = errors.New("lock: redis error")
)
