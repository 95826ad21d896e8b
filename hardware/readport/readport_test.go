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

package readport_test

import (
	"testing"

	"github.com/jetsetilly/gopherkey/hardware/fifo"
	"github.com/jetsetilly/gopherkey/hardware/readport"
	"github.com/jetsetilly/gopherkey/test"
)

func TestSingleRead(t *testing.T) {
	p := readport.NewPort()
	q := fifo.NewQueue(fifo.Capacity)
	q.Push(0xc2)

	test.Equate(t, p.OutputEnable, false)

	p.Step(true, q)
	test.Equate(t, p.OutputEnable, true)
	test.Equate(t, p.Bus, 0xc2)

	p.Step(false, q)
	test.Equate(t, p.OutputEnable, false)
}

func TestHeldStrobePopsOnce(t *testing.T) {
	p := readport.NewPort()
	q := fifo.NewQueue(fifo.Capacity)
	q.Push(0x44)
	q.Push(0x55)

	// only the rising edge pops. holding the line does nothing more
	for i := 0; i < 1000; i++ {
		p.Step(true, q)
		test.Equate(t, p.OutputEnable, true)
		test.Equate(t, p.Bus, 0x44)
	}
	test.Equate(t, q.Len(), 1)

	p.Step(false, q)
	test.Equate(t, p.OutputEnable, false)

	p.Step(true, q)
	test.Equate(t, p.Bus, 0x55)
	test.Equate(t, q.IsEmpty(), true)
}

func TestEmptyRead(t *testing.T) {
	p := readport.NewPort()
	q := fifo.NewQueue(fifo.Capacity)

	// a strobe against an empty queue drives nothing for its whole duration
	for i := 0; i < 10; i++ {
		p.Step(true, q)
		test.Equate(t, p.OutputEnable, false)
	}
	p.Step(false, q)
	test.Equate(t, p.OutputEnable, false)
}

func TestDiscreteStrobes(t *testing.T) {
	p := readport.NewPort()
	q := fifo.NewQueue(fifo.Capacity)
	for i := 0; i < 3; i++ {
		q.Push(uint8(0x10 + i))
	}

	for i := 0; i < 3; i++ {
		p.Step(true, q)
		test.Equate(t, p.Bus, 0x10+i)
		test.Equate(t, p.OutputEnable, true)
		p.Step(false, q)
		test.Equate(t, p.OutputEnable, false)
	}
}

func TestReset(t *testing.T) {
	p := readport.NewPort()
	q := fifo.NewQueue(fifo.Capacity)
	q.Push(0xee)

	p.Step(true, q)
	test.Equate(t, p.OutputEnable, true)

	p.Reset()
	test.Equate(t, p.OutputEnable, false)
	test.Equate(t, p.Bus, 0x00)

	// the strobe level before the reset leaves no phantom edge
	q.Push(0xee)
	p.Step(false, q)
	test.Equate(t, p.OutputEnable, false)
	test.Equate(t, q.Len(), 1)
}
