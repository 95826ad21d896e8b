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

package uart_test

import (
	"testing"

	"github.com/jetsetilly/gopherkey/hardware/uart"
	"github.com/jetsetilly/gopherkey/test"
)

// a small divisor keeps the tests quick. the reporter behaves identically at
// any divisor
const testDivisor = 8

// sampler deserialises the TX line, sampling each bit at its centre.
type sampler struct {
	divisor int
	prev    bool

	receiving bool
	countdown int
	bitCt     int
	value     uint8

	bytes []uint8
}

func newSampler(divisor int) *sampler {
	return &sampler{divisor: divisor, prev: true}
}

func (s *sampler) tick(level bool) {
	falling := s.prev && !level
	s.prev = level

	if !s.receiving {
		if falling {
			s.receiving = true
			s.bitCt = 0
			s.value = 0
			s.countdown = s.divisor + s.divisor/2
		}
		return
	}

	s.countdown--
	if s.countdown > 0 {
		return
	}

	if s.bitCt < 8 {
		if level {
			s.value |= 0x01 << s.bitCt
		}
		s.bitCt++
		s.countdown = s.divisor
		return
	}

	s.receiving = false
	s.bytes = append(s.bytes, s.value)
}

// run the reporter and sampler together for n ticks.
func run(rep *uart.Reporter, s *sampler, n int) {
	for i := 0; i < n; i++ {
		rep.Step()
		s.tick(rep.TX())
	}
}

func TestIdle(t *testing.T) {
	rep := uart.NewReporter(testDivisor, 4)

	test.Equate(t, rep.TX(), true)
	test.Equate(t, rep.Busy(), false)

	for i := 0; i < 1000; i++ {
		rep.Step()
		test.Equate(t, rep.TX(), true)
	}
}

func TestSingleReport(t *testing.T) {
	rep := uart.NewReporter(testDivisor, 4)
	s := newSampler(testDivisor)

	rep.Queue(uart.Report{Status: 0x07, Data: 0xab})
	test.Equate(t, rep.Busy(), true)

	run(rep, s, 30*testDivisor)

	test.Equate(t, rep.Busy(), false)
	test.Equate(t, rep.TX(), true)
	test.Equate(t, len(s.bytes), 2)
	test.Equate(t, s.bytes[0], 0x07)
	test.Equate(t, s.bytes[1], 0xab)
}

func TestReportsInOrder(t *testing.T) {
	rep := uart.NewReporter(testDivisor, 4)
	s := newSampler(testDivisor)

	rep.Queue(uart.Report{Status: 0x07, Data: 0x10})
	rep.Queue(uart.Report{Status: 0x07, Data: 0x11})
	rep.Queue(uart.Report{Status: 0x0f, Data: 0x12})

	run(rep, s, 80*testDivisor)

	test.Equate(t, len(s.bytes), 6)
	test.Equate(t, s.bytes[1], 0x10)
	test.Equate(t, s.bytes[3], 0x11)
	test.Equate(t, s.bytes[4], 0x0f)
	test.Equate(t, s.bytes[5], 0x12)
}

func TestDropOldest(t *testing.T) {
	rep := uart.NewReporter(testDivisor, 4)
	s := newSampler(testDivisor)

	// five reports queued before the first bit is sent. the pending queue
	// holds four so the oldest is dropped
	for i := 0; i < 5; i++ {
		rep.Queue(uart.Report{Status: 0x07, Data: uint8(0x20 + i)})
	}

	run(rep, s, 110*testDivisor)

	test.Equate(t, len(s.bytes), 8)
	for i := 0; i < 4; i++ {
		test.Equate(t, s.bytes[i*2+1], 0x21+i)
	}
}

type observed struct {
	reports []uart.Report
}

func (o *observed) Report(r uart.Report) {
	o.reports = append(o.reports, r)
}

func TestObserver(t *testing.T) {
	rep := uart.NewReporter(testDivisor, 4)
	s := newSampler(testDivisor)
	o := &observed{}
	rep.AddObserver(o)

	rep.Queue(uart.Report{Status: 0x07, Data: 0x42})
	rep.Queue(uart.Report{Status: 0x07, Data: 0x43})

	run(rep, s, 60*testDivisor)

	test.Equate(t, len(o.reports), 2)
	test.Equate(t, o.reports[0].Data, 0x42)
	test.Equate(t, o.reports[1].Data, 0x43)
}

func TestReset(t *testing.T) {
	rep := uart.NewReporter(testDivisor, 4)

	rep.Queue(uart.Report{Status: 0x07, Data: 0x42})
	rep.Step()
	rep.Step()

	rep.Reset()
	test.Equate(t, rep.Busy(), false)
	test.Equate(t, rep.TX(), true)
}
