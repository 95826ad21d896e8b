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

// Package testbench drives a KeyCore from the outside, the way a bench
// harness drives the real silicon. It owns all three external surfaces: the
// keyboard serial pair, the host read port lines and the serial report line.
//
// The bench steps the core tick by tick. Keyboard frames are clocked in at a
// configurable keyboard clock rate; the report line is sampled every tick by
// a Receiver so that a scenario can assert on exactly what a listening host
// would have seen.
package testbench

import (
	"github.com/jetsetilly/gopherkey/hardware"
	"github.com/jetsetilly/gopherkey/hardware/clocks"
)

// Frame describes one keyboard frame to be clocked into the core. The
// zero value of the fault fields produces a well-formed frame.
type Frame struct {
	Data uint8

	// fault injection. BadStart sends a high start bit; BadParity inverts
	// the parity bit; BadStop sends a low stop bit
	BadStart  bool
	BadParity bool
	BadStop   bool

	// if non-zero, clocking stops after this many data bits and the lines
	// are released. the decoder will be left parked mid-frame
	Truncate int
}

// bits expands the frame into the bit sequence that will appear on the data
// line, one entry per falling clock edge.
func (f Frame) bits() []bool {
	b := make([]bool, 0, 11)

	b = append(b, f.BadStart)

	parity := true
	for i := 0; i < 8; i++ {
		v := f.Data>>i&0x01 == 0x01
		if v {
			parity = !parity
		}
		b = append(b, v)
	}

	if f.Truncate > 0 {
		return b[:1+f.Truncate]
	}

	if f.BadParity {
		parity = !parity
	}
	b = append(b, parity)

	b = append(b, !f.BadStop)

	return b
}

// Bench binds a KeyCore to a keyboard line driver and a report line
// receiver.
type Bench struct {
	Core *hardware.KeyCore
	RX   *Receiver

	// called after every tick of the core, if set. used by harnesses that
	// sample line activity, the wavwriter for instance
	OnStep func()

	// half the keyboard clock period, in internal ticks
	halfPeriod int
}

// NewBench is the preferred method of initialisation for the Bench type.
// The keyboard clock defaults to the typical rate.
func NewBench() *Bench {
	b := &Bench{
		Core: hardware.NewKeyCore(),
		RX:   NewReceiver(clocks.TxDivisor),
	}
	b.SetKeyboardClk(clocks.KeyboardClkTypical)
	return b
}

// SetKeyboardClk sets the keyboard clock rate, in Hz, used by subsequent
// calls to Send.
func (b *Bench) SetKeyboardClk(hz int) {
	b.halfPeriod = clocks.Internal / hz / 2
}

// Step the core one tick, feeding the report line into the receiver.
func (b *Bench) Step() {
	b.Core.Step()
	b.RX.Tick(b.Core.UART.TX())
	if b.OnStep != nil {
		b.OnStep()
	}
}

// Run the core for n ticks.
func (b *Bench) Run(n int) {
	for i := 0; i < n; i++ {
		b.Step()
	}
}

// Send clocks one frame into the core at the current keyboard clock rate.
// The keyboard lines are left idle (high) afterwards.
func (b *Bench) Send(f Frame) {
	for _, bit := range f.bits() {
		b.Core.Pins.PS2Data = bit

		// data is presented while the keyboard clock is high and sampled by
		// the core on the falling edge
		b.Core.Pins.PS2Clk = true
		b.Run(b.halfPeriod)
		b.Core.Pins.PS2Clk = false
		b.Run(b.halfPeriod)
	}

	b.Core.Pins.PS2Clk = true
	b.Core.Pins.PS2Data = true
	b.Run(b.halfPeriod)
}

// SendByte clocks a well-formed frame for the value into the core.
func (b *Bench) SendByte(v uint8) {
	b.Send(Frame{Data: v})
}

// Read strobes the select line for hold ticks and returns the bus value and
// output enable level observed at the end of the strobe. The strobe is
// released before returning.
func (b *Bench) Read(hold int) (uint8, bool) {
	b.Core.Pins.Select = true
	b.Run(hold)

	v := b.Core.Port.Bus
	oe := b.Core.Port.OutputEnable

	b.Core.Pins.Select = false
	b.Run(hold)

	return v, oe
}

// ReadByte strobes the select line with a short hold.
func (b *Bench) ReadByte() (uint8, bool) {
	return b.Read(10)
}

// ClearInterrupt pulses the clear line.
func (b *Bench) ClearInterrupt() {
	b.Core.Pins.Clear = true
	b.Run(4)
	b.Core.Pins.Clear = false
	b.Run(4)
}

// Reset pulses the external reset line and releases it.
func (b *Bench) Reset() {
	b.Core.Pins.ResetN = false
	b.Step()
	b.Core.Pins.ResetN = true
	b.Core.Pins.PS2Clk = true
	b.Core.Pins.PS2Data = true
	b.Core.Pins.Select = false
	b.Core.Pins.Clear = false
}

// AwaitReports runs the core until the receiver has seen n complete reports
// or the tick limit is exhausted. Returns true if the reports arrived.
func (b *Bench) AwaitReports(n int, limit int) bool {
	for i := 0; i < limit; i++ {
		if len(b.RX.Reports) >= n {
			return true
		}
		b.Step()
	}
	return len(b.RX.Reports) >= n
}
