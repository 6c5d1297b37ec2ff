package workqueue

// minDequeCapacity is the smallest ring allocation; always a power of two
// so the index math stays a mask.
const minDequeCapacity = 16

// ringDeque is a growable ring buffer used as the pending-task queue.
// It is not safe for concurrent use; callers hold the pool lock.
type ringDeque[T any] struct {
	buf  []T
	head int
	size int
}

func (d *ringDeque[T]) len() int { return d.size }

// pushBack appends v to the back of the queue, growing the ring if full.
func (d *ringDeque[T]) pushBack(v T) {
	if d.size == len(d.buf) {
		d.grow()
	}
	d.buf[(d.head+d.size)&(len(d.buf)-1)] = v
	d.size++
}

// popFront removes and returns the front of the queue. The vacated slot is
// zeroed so the ring does not pin popped values for the GC.
func (d *ringDeque[T]) popFront() (T, bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) & (len(d.buf) - 1)
	d.size--
	return v, true
}

func (d *ringDeque[T]) grow() {
	capacity := minDequeCapacity
	if len(d.buf) > 0 {
		capacity = len(d.buf) * 2
	}
	buf := make([]T, nextPowerOfTwo(capacity))
	for i := 0; i < d.size; i++ {
		buf[i] = d.buf[(d.head+i)&(len(d.buf)-1)]
	}
	d.buf = buf
	d.head = 0
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	if n&(n-1) == 0 {
		return n
	}

	power := 1
	for power < n {
		power *= 2
	}
	return power
}
