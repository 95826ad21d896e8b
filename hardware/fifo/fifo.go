// This file is part of GopherKey.
//
// GopherKey is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherKey is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherKey.  If not, see <https://www.gnu.org/licenses/>.

// Package fifo implements the byte queue that sits between the frame
// decoder and the host read port.
//
// The queue is a fixed-capacity FIFO with a drop-newest overflow policy: a
// push to a full queue discards the pushed byte and leaves the queue
// contents untouched. This matches the original silicon, which has no way
// of exerting backpressure on a keyboard.
package fifo

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/logger"
)

// Capacity of the byte queue in the reference configuration.
const Capacity = 4

// EmptyQueue is returned by Pop() when there is nothing to pop. Test with
// curated.Is().
const EmptyQueue = "fifo: empty queue"

// Queue is a fixed-capacity FIFO of decoded bytes. Mutated by exactly two
// actors: the frame decoder pushes, the read port pops.
type Queue struct {
	entries []uint8
	cap     int
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue(capacity int) *Queue {
	return &Queue{
		entries: make([]uint8, 0, capacity),
		cap:     capacity,
	}
}

func (q *Queue) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("fifo (%d/%d):", len(q.entries), q.cap))
	for _, e := range q.entries {
		s.WriteString(fmt.Sprintf(" %#02x", e))
	}
	return s.String()
}

// Snapshot makes a copy of the Queue.
func (q *Queue) Snapshot() *Queue {
	cp := *q
	cp.entries = make([]uint8, len(q.entries), q.cap)
	copy(cp.entries, q.entries)
	return &cp
}

// Reset empties the queue.
func (q *Queue) Reset() {
	q.entries = q.entries[:0]
}

// Push a byte onto the back of the queue. If the queue is full the byte is
// silently discarded (drop-newest) and the queue contents are unchanged.
// Returns true if the byte was accepted.
func (q *Queue) Push(v uint8) bool {
	if q.IsFull() {
		logger.Logf("fifo", "full: dropping %#02x", v)
		return false
	}
	q.entries = append(q.entries, v)
	return true
}

// Pop the byte at the front of the queue, oldest first. Fails with the
// EmptyQueue error if the queue is empty.
func (q *Queue) Pop() (uint8, error) {
	if q.IsEmpty() {
		return 0, curated.Errorf(EmptyQueue)
	}
	v := q.entries[0]
	q.entries = q.entries[1:]
	return v, nil
}

// Len returns the current occupancy of the queue.
func (q *Queue) Len() int {
	return len(q.entries)
}

// IsEmpty is true when there is nothing to pop.
func (q *Queue) IsEmpty() bool {
	return len(q.entries) == 0
}

// IsFull is true when occupancy has reached capacity.
func (q *Queue) IsFull() bool {
	return len(q.entries) >= q.cap
}
