package lock

import (
	"context"
	"sync"
	"time"
)

// Взаимное исключение по строковому ключу агрегата (заявка, граф проекта).
// Закрывает гонку read-modify-write между конкурентными запросами одного процесса:
// safeCode выполняется только владельцем ключа, проверки состояния внутри
// safeCode делаются по свежепрочитанным данным.

var lockMap sync.Map

// WithDelay пытается захватить ключ в течение wait и выполняет safeCode под ним.
// success=false - ключ занят всё время ожидания либо контекст завершён.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(50 * time.Millisecond)
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}
