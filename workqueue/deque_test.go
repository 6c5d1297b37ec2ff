package workqueue

import "testing"

func TestRingDeque(t *testing.T) {
	t.Run("fifo order", func(t *testing.T) {
		var d ringDeque[int]
		for i := range 10 {
			d.pushBack(i)
		}
		if d.len() != 10 {
			t.Fatalf("len = %d, want 10", d.len())
		}
		for i := range 10 {
			v, ok := d.popFront()
			if !ok || v != i {
				t.Fatalf("popFront = (%d, %v), want (%d, true)", v, ok, i)
			}
		}
		if _, ok := d.popFront(); ok {
			t.Error("popFront on empty deque should report false")
		}
	})

	t.Run("wraparound", func(t *testing.T) {
		var d ringDeque[int]
		// Stagger pushes and pops so head walks around the ring several
		// times without triggering growth.
		next := 0
		for i := range 100 {
			d.pushBack(i)
			v, ok := d.popFront()
			if !ok || v != next {
				t.Fatalf("popFront = (%d, %v), want (%d, true)", v, ok, next)
			}
			next++
		}
		if d.len() != 0 {
			t.Errorf("len = %d, want 0", d.len())
		}
	})

	t.Run("growth preserves order", func(t *testing.T) {
		var d ringDeque[int]
		// Offset head first so growth has to unwrap a wrapped ring.
		for i := range minDequeCapacity {
			d.pushBack(i)
		}
		for range minDequeCapacity / 2 {
			d.popFront()
		}
		for i := minDequeCapacity; i < 10*minDequeCapacity; i++ {
			d.pushBack(i)
		}

		next := minDequeCapacity / 2
		for d.len() > 0 {
			v, _ := d.popFront()
			if v != next {
				t.Fatalf("popFront = %d, want %d", v, next)
			}
			next++
		}
		if next != 10*minDequeCapacity {
			t.Errorf("drained up to %d, want %d", next, 10*minDequeCapacity)
		}
	})

	t.Run("next power of two", func(t *testing.T) {
		cases := map[int]int{-1: 1, 0: 1, 1: 1, 2: 2, 3: 4, 16: 16, 17: 32, 1000: 1024}
		for in, want := range cases {
			if got := nextPowerOfTwo(in); got != want {
				t.Errorf("nextPowerOfTwo(%d) = %d, want %d", in, got, want)
			}
		}
	})
}
