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

package fifo_test

import (
	"testing"

	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/hardware/fifo"
	"github.com/jetsetilly/gopherkey/test"
)

func TestQueueOrder(t *testing.T) {
	q := fifo.NewQueue(fifo.Capacity)

	test.Equate(t, q.IsEmpty(), true)

	test.Equate(t, q.Push(0x01), true)
	test.Equate(t, q.Push(0x02), true)
	test.Equate(t, q.Len(), 2)

	v, err := q.Pop()
	test.ExpectedSuccess(t, err == nil)
	test.Equate(t, v, 0x01)

	v, err = q.Pop()
	test.ExpectedSuccess(t, err == nil)
	test.Equate(t, v, 0x02)

	test.Equate(t, q.IsEmpty(), true)
}

func TestEmptyQueue(t *testing.T) {
	q := fifo.NewQueue(fifo.Capacity)

	_, err := q.Pop()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, fifo.EmptyQueue))
}

func TestDropNewest(t *testing.T) {
	q := fifo.NewQueue(fifo.Capacity)

	for i := 0; i < fifo.Capacity; i++ {
		test.Equate(t, q.Push(uint8(0xa0+i)), true)
	}
	test.Equate(t, q.IsFull(), true)

	// a push to a full queue is rejected and the queue is unchanged
	test.Equate(t, q.Push(0xff), false)
	test.Equate(t, q.Len(), fifo.Capacity)

	for i := 0; i < fifo.Capacity; i++ {
		v, err := q.Pop()
		test.ExpectedSuccess(t, err == nil)
		test.Equate(t, v, 0xa0+i)
	}
}

func TestReset(t *testing.T) {
	q := fifo.NewQueue(fifo.Capacity)

	q.Push(0x01)
	q.Push(0x02)
	q.Reset()

	test.Equate(t, q.IsEmpty(), true)
	_, err := q.Pop()
	test.ExpectedFailure(t, err)
}

func TestSnapshot(t *testing.T) {
	q := fifo.NewQueue(fifo.Capacity)
	q.Push(0x01)

	s := q.Snapshot()
	q.Push(0x02)

	test.Equate(t, q.Len(), 2)
	test.Equate(t, s.Len(), 1)
}
