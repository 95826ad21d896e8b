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

// Package readport implements the host-facing read interface of the
// interface core.
//
// The port is edge sensitive. A rising edge on the select strobe pops
// exactly one byte from the byte queue and drives it onto the output bus
// for as long as the strobe is held. Holding the strobe does not pop again:
// a host that holds the line high for a thousand ticks still consumes
// exactly one byte. The output enable signal is low outside an active read
// so the bus can be shared.
//
// A strobe that arrives while the queue is empty is a no-op: the bus is not
// driven and output enable stays low for the whole of that strobe.
package readport

import (
	"fmt"

	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/hardware/fifo"
	"github.com/jetsetilly/gopherkey/hardware/trace"
	"github.com/jetsetilly/gopherkey/logger"
)

// Port is the strobe-driven read port. It implements the hardware.Ticker
// interface.
type Port struct {
	// the host select strobe, sampled once per tick
	Select trace.Trace

	// the value latched onto the output bus. only meaningful while
	// OutputEnable is true
	Bus uint8

	// OutputEnable is true while the bus is being driven. it is never true
	// outside of an active strobe
	OutputEnable bool
}

// NewPort is the preferred method of initialisation for the Port type.
func NewPort() *Port {
	p := &Port{
		Select: trace.NewTrace("select"),
	}

	// the select line idles low, unlike the keyboard lines
	p.Select.Tick(false)
	p.Select.Tick(false)

	return p
}

func (p *Port) String() string {
	if !p.OutputEnable {
		return "readport: idle"
	}
	return fmt.Sprintf("readport: driving %#02x", p.Bus)
}

// Snapshot makes a copy of the Port.
func (p *Port) Snapshot() *Port {
	n := *p
	n.Select = *p.Select.Snapshot()
	return &n
}

// Reset returns the port to the idle, undriven state.
func (p *Port) Reset() {
	p.Select.Reset()
	p.Select.Tick(false)
	p.Select.Tick(false)
	p.Bus = 0
	p.OutputEnable = false
}

// Step the port one tick, sampling the select strobe level. queue is the
// byte queue that a rising strobe edge pops from.
func (p *Port) Step(sel bool, queue *fifo.Queue) {
	p.Select.Tick(sel)

	if p.Select.Rising() {
		v, err := queue.Pop()
		if err != nil {
			if !curated.Is(err, fifo.EmptyQueue) {
				logger.Logf("readport", "unexpected pop error: %v", err)
			}
			// empty read. nothing is driven for the whole of this strobe
			p.OutputEnable = false
			return
		}
		p.Bus = v
		p.OutputEnable = true
		return
	}

	// the bus value is frozen while the strobe is held. releasing the
	// strobe releases the bus
	if p.Select.Lo() {
		p.OutputEnable = false
	}
}
