package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`свободный ключ захватывается и освобождается`, func(t *testing.T) {
		done := false
		success, err := WithDelay(context.Background(), "key-1", time.Second, func() error {
			done = true
			return nil
		})
		require.Nil(t, err)
		require.True(t, success)
		require.True(t, done)

		// ключ освобождён, повторный захват проходит
		success, err = WithDelay(context.Background(), "key-1", time.Second, func() error { return nil })
		require.Nil(t, err)
		require.True(t, success)
	})

	t.Run(`занятый ключ не захватывается в течение wait`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "key-2", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		success, err := WithDelay(context.Background(), "key-2", 100*time.Millisecond, func() error {
			t.Error("critical section must not run")
			return nil
		})
		require.Nil(t, err)
		require.False(t, success)
		close(release)
	})

	t.Run(`конкуренты выполняются строго по одному`, func(t *testing.T) {
		var inside int32
		var total int32
		wg := sync.WaitGroup{}
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				success, err := WithDelay(context.Background(), "key-3", 5*time.Second, func() error {
					require.Equal(t, int32(1), atomic.AddInt32(&inside, 1))
					time.Sleep(10 * time.Millisecond)
					atomic.AddInt32(&inside, -1)
					atomic.AddInt32(&total, 1)
					return nil
				})
				require.Nil(t, err)
				require.True(t, success)
			}()
		}
		wg.Wait()
		require.Equal(t, int32(10), total)
	})

	t.Run(`завершённый контекст прекращает ожидание`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "key-4", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		success, _ := WithDelay(ctx, "key-4", time.Second, func() error { return nil })
		require.False(t, success)
		close(release)
	})

	t.Run(`ошибка критической секции возвращается вызывающему`, func(t *testing.T) {
		wantErr := context.DeadlineExceeded
		success, err := WithDelay(context.Background(), "key-5", time.Second, func() error {
			return wantErr
		})
		require.True(t, success)
		require.ErrorIs(t, err, wantErr)
	})
}
