// Package stream implements a small single-producer/single-consumer
// pull stream: a caller-provided refill callback fills a bounded
// buffer on demand, and a Reader lets a consumer peek, read, or
// advance through the buffered values one at a time.
//
// It is the shared abstraction between pkg/compiler/lexer (the
// producer, appending tokens) and pkg/compiler/parser (the consumer,
// pulling one token of lookahead at a time). Translated from the
// synchronous C++ Stream<T>/StreamReader<T> pair this project was
// distilled from.
package stream

// FillFunc appends zero or more values to buf and reports whether the
// producer has more values available. Returning false marks the
// producer finished; it is never called again afterward.
type FillFunc[T any] func(buf *[]T) bool

// defaultCapacity is the target buffer size a Fill call tries to
// reach before returning, mirroring the original's default of 10.
const defaultCapacity = 10

// Stream is a bounded FIFO buffer of T backed by a refill callback.
// It is not safe for concurrent use; the pipeline it serves is
// strictly single-threaded and synchronous.
type Stream[T any] struct {
	fill     FillFunc[T]
	capacity int
	buf      []T
	finished bool
}

// New creates a stream with the given fill callback and buffer
// capacity. A capacity <= 0 uses the default of 10.
func New[T any](fill FillFunc[T], capacity int) *Stream[T] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Stream[T]{fill: fill, capacity: capacity}
}

// MakeReader returns a new Reader over the stream.
func (s *Stream[T]) MakeReader() *Reader[T] { return &Reader[T]{stream: s} }

// refill requests more values from the producer until the buffer
// reaches capacity or the producer reports it is finished. At most
// one outstanding refill happens per call; the producer is never
// polled again once it has returned false.
func (s *Stream[T]) refill() {
	if s.finished {
		return
	}
	for len(s.buf) < s.capacity {
		if !s.fill(&s.buf) {
			s.finished = true
			return
		}
	}
}

// Reader is a single consumer's view onto a Stream.
type Reader[T any] struct {
	stream *Stream[T]
}

// Peek ensures the buffer is non-empty (refilling as needed) and
// returns the front element without consuming it. ok is false iff the
// producer is finished and the buffer is empty.
func (r *Reader[T]) Peek() (value T, ok bool) {
	r.stream.refill()
	if len(r.stream.buf) == 0 {
		return value, false
	}
	return r.stream.buf[0], true
}

// Read consumes and returns the front element, like Peek but
// advancing past it.
func (r *Reader[T]) Read() (value T, ok bool) {
	r.stream.refill()
	if len(r.stream.buf) == 0 {
		return value, false
	}
	value = r.stream.buf[0]
	r.stream.buf = r.stream.buf[1:]
	return value, true
}

// Advance consumes the front element, discarding its value. It
// reports whether an element was available to consume.
func (r *Reader[T]) Advance() bool {
	r.stream.refill()
	if len(r.stream.buf) == 0 {
		return false
	}
	r.stream.buf = r.stream.buf[1:]
	return true
}

// Finished reports whether the producer has signaled it has no more
// values (the buffer may still hold values already produced).
func (r *Reader[T]) Finished() bool {
	r.stream.refill()
	return r.stream.finished
}

// Empty reports whether the buffer currently holds no values.
func (r *Reader[T]) Empty() bool {
	r.stream.refill()
	return len(r.stream.buf) == 0
}

// Depleted reports whether the stream is both finished and empty,
// i.e. no further values will ever be available.
func (r *Reader[T]) Depleted() bool {
	return r.Finished() && r.Empty()
}
