package core

import "context"

// Window keeps the most recent values added to it, up to a capacity fixed at creation.
// It is not safe for concurrent use.
type Window[T any] struct {
	buf   []T
	start int
	n     int
}

// NewWindow creates a window holding at most capacity values. A capacity below 1 is
// raised to 1.
func NewWindow[T any](capacity int) *Window[T] {
	return &Window[T]{buf: make([]T, max(capacity, 1))}
}

// Add appends v, evicting the oldest value when the window is full, and returns a
// snapshot of the window.
func (w *Window[T]) Add(v T) []T {
	if w.n < len(w.buf) {
		w.buf[(w.start+w.n)%len(w.buf)] = v
		w.n++
	} else {
		w.buf[w.start] = v
		w.start = (w.start + 1) % len(w.buf)
	}
	return w.Snapshot()
}

// Snapshot returns the values oldest first. The slice is not shared with the window.
func (w *Window[T]) Snapshot() []T {
	out := make([]T, w.n)
	for i := range out {
		out[i] = w.buf[(w.start+i)%len(w.buf)]
	}
	return out
}

// Len returns the number of values held.
func (w *Window[T]) Len() int { return w.n }

// Cap returns the capacity.
func (w *Window[T]) Cap() int { return len(w.buf) }

// CacheLatest forwards, for every result read from in, the latest n results oldest
// first. The returned channel is closed once in is closed or ctx is done.
func CacheLatest(ctx context.Context, in <-chan PingResult, n int) <-chan []PingResult {
	out := make(chan []PingResult)
	go func() {
		defer close(out)
		w := NewWindow[PingResult](n)
		for {
			var res PingResult
			select {
			case r, ok := <-in:
				if !ok {
					return
				}
				res = r
			case <-ctx.Done():
				return
			}

			select {
			case out <- w.Add(res):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
