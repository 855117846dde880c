package stream_test

import (
	"testing"

	"github.com/lattice-lang/pyfront/pkg/compiler/stream"
)

// counter fills the stream with 0, 1, 2, ..., n-1 then stops.
func counter(n int) stream.FillFunc[int] {
	next := 0
	return func(buf *[]int) bool {
		if next >= n {
			return false
		}
		*buf = append(*buf, next)
		next++
		return true
	}
}

func TestPeekIsIdempotent(t *testing.T) {
	r := stream.New(counter(3), 2).MakeReader()
	v1, ok1 := r.Peek()
	v2, ok2 := r.Peek()
	if !ok1 || !ok2 || v1 != v2 || v1 != 0 {
		t.Fatalf("peek not idempotent: (%v,%v) (%v,%v)", v1, ok1, v2, ok2)
	}
}

func TestReadIsFIFO(t *testing.T) {
	r := stream.New(counter(5), 2).MakeReader()
	for i := 0; i < 5; i++ {
		v, ok := r.Read()
		if !ok || v != i {
			t.Fatalf("Read() = (%v, %v), want (%v, true)", v, ok, i)
		}
	}
	if _, ok := r.Read(); ok {
		t.Fatalf("expected depleted stream to return ok=false")
	}
}

func TestAdvanceConsumesWithoutReturning(t *testing.T) {
	r := stream.New(counter(2), 4).MakeReader()
	if !r.Advance() {
		t.Fatalf("expected Advance to succeed")
	}
	v, ok := r.Peek()
	if !ok || v != 1 {
		t.Fatalf("Peek() after Advance = (%v, %v), want (1, true)", v, ok)
	}
}

func TestDepleted(t *testing.T) {
	r := stream.New(counter(0), 4).MakeReader()
	if !r.Depleted() {
		t.Fatalf("expected empty producer to report depleted immediately")
	}
}

func TestFinishedButNotEmpty(t *testing.T) {
	r := stream.New(counter(1), 4).MakeReader()
	if r.Depleted() {
		t.Fatalf("stream with a buffered value must not be depleted")
	}
	if !r.Finished() {
		t.Fatalf("expected producer to already be finished after a single small fill")
	}
	r.Advance()
	if !r.Depleted() {
		t.Fatalf("expected depleted after consuming the last value")
	}
}

func TestProducerNeverPolledAfterDone(t *testing.T) {
	calls := 0
	fill := func(buf *[]int) bool {
		calls++
		if calls > 1 {
			t.Fatalf("producer polled again after signaling done")
		}
		return false
	}
	r := stream.New(fill, 4).MakeReader()
	r.Peek()
	r.Peek()
	r.Read()
	if calls != 1 {
		t.Fatalf("expected exactly one fill call, got %d", calls)
	}
}
