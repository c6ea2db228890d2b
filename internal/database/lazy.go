package database

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Lazy 延遲建立並快取一個連線 handle。
// 同時間的多個呼叫共用同一次連線嘗試；失敗不會被快取，下一次呼叫會重新嘗試。
// 每次成功連線都會產生新的 generation，Reset 只對目前的 generation 生效。
type Lazy[T any] struct {
	dial  func(ctx context.Context) (T, error)
	close func(T)

	group singleflight.Group
	mu    sync.RWMutex
	value T
	gen   uint64
	ready bool
}

// handle 隨 singleflight 傳遞的 handle 與其 generation
type handle[T any] struct {
	value T
	gen   uint64
}

// NewLazy close 可為 nil
func NewLazy[T any](dial func(ctx context.Context) (T, error), close func(T)) *Lazy[T] {
	return &Lazy[T]{dial: dial, close: close}
}

// Get 回傳目前的 handle 與其 generation；呼叫端遇到連線錯誤時以此 generation 呼叫 Reset
func (l *Lazy[T]) Get(ctx context.Context) (T, uint64, error) {
	if h, ok := l.cached(); ok {
		return h.value, h.gen, nil
	}

	v, err, _ := l.group.Do("connect", func() (any, error) {
		if h, ok := l.cached(); ok {
			return h, nil
		}

		v, err := l.dial(ctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.gen++
		l.value = v
		l.ready = true
		h := handle[T]{value: v, gen: l.gen}
		l.mu.Unlock()
		return h, nil
	})
	if err != nil {
		var zero T
		return zero, 0, err
	}
	h := v.(handle[T])
	return h.value, h.gen, nil
}

func (l *Lazy[T]) cached() (handle[T], bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return handle[T]{value: l.value, gen: l.gen}, l.ready
}

// Reset 丟棄 generation 為 gen 的 handle，下一次 Get 會重新連線。
// gen 已被取代時不做任何事，回傳 false。
func (l *Lazy[T]) Reset(gen uint64) bool {
	l.mu.Lock()
	if !l.ready || l.gen != gen {
		l.mu.Unlock()
		return false
	}
	old := l.value
	var zero T
	l.value = zero
	l.ready = false
	l.mu.Unlock()

	if l.close != nil {
		l.close(old)
	}
	return true
}

// Close 釋放目前的 handle（若已建立）
func (l *Lazy[T]) Close() {
	l.mu.RLock()
	gen := l.gen
	l.mu.RUnlock()
	l.Reset(gen)
}
