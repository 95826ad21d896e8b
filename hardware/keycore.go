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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/gopherkey/hardware/clocks"
	"github.com/jetsetilly/gopherkey/hardware/fifo"
	"github.com/jetsetilly/gopherkey/hardware/ps2"
	"github.com/jetsetilly/gopherkey/hardware/readport"
	"github.com/jetsetilly/gopherkey/hardware/status"
	"github.com/jetsetilly/gopherkey/hardware/uart"
)

// Inputs are the external line levels presented to the core. They are
// asynchronous to the internal clock; the core samples them once per call
// to Step().
//
// The keyboard lines and ResetN idle high. Select and Clear idle low.
type Inputs struct {
	// the keyboard serial pair
	PS2Clk  bool
	PS2Data bool

	// host lines. Select strobes one byte from the queue onto the bus;
	// Clear holds the interrupt latch low
	Select bool
	Clear  bool

	// active-low reset. while low the core is held in its initial state
	ResetN bool
}

// KeyCore is the main container for the emulated components of the keyboard
// interface core.
type KeyCore struct {
	Decoder *ps2.Decoder
	FIFO    *fifo.Queue
	Status  *status.Status
	Port    *readport.Port
	UART    *uart.Reporter

	// the external line levels sampled on the next Step()
	Pins Inputs

	// number of ticks since creation or the last reset
	ticks uint64
}

// NewKeyCore creates a new KeyCore and everything associated with the
// hardware, in the reference configuration (25MHz internal clock, 115200
// baud report line, queue depth of 4).
func NewKeyCore() *KeyCore {
	kc := &KeyCore{
		Decoder: ps2.NewDecoder(),
		FIFO:    fifo.NewQueue(fifo.Capacity),
		Status:  &status.Status{},
		Port:    readport.NewPort(),
		UART:    uart.NewReporter(clocks.TxDivisor, fifo.Capacity),
	}

	kc.Pins = Inputs{
		PS2Clk:  true,
		PS2Data: true,
		ResetN:  true,
	}

	return kc
}

func (kc *KeyCore) String() string {
	return fmt.Sprintf("%s\n%s\n%s\n%s\nstatus: %s",
		kc.Decoder, kc.FIFO, kc.Port, kc.UART, kc.Status,
	)
}

// Reset returns every component to its initial state. Equivalent to pulsing
// the external reset line.
func (kc *KeyCore) Reset() {
	kc.Decoder.Reset()
	kc.FIFO.Reset()
	kc.Status.Reset()
	kc.Port.Reset()
	kc.UART.Reset()
	kc.ticks = 0
}

// Ticks returns the number of internal clock ticks since creation or the
// last reset.
func (kc *KeyCore) Ticks() uint64 {
	return kc.ticks
}

// Valid returns the decoded byte and true for the one tick following a
// well-formed frame.
func (kc *KeyCore) Valid() (uint8, bool) {
	return kc.Decoder.Valid()
}

// Step the core one internal clock tick. Every component updates once from
// the line levels in the Pins field.
func (kc *KeyCore) Step() {
	// the reset line is active-low and asynchronous. holding it low holds
	// the whole core in its initial state
	if !kc.Pins.ResetN {
		kc.Reset()
		return
	}

	// the read port pops before the decoder pushes. on the (rare) tick
	// where a strobe edge and a frame completion coincide, the status
	// signals below settle to the final occupancy, which is what the level
	// signals are defined to report
	kc.Port.Step(kc.Pins.Select, kc.FIFO)

	kc.Decoder.Step(kc.Pins.PS2Clk, kc.Pins.PS2Data)

	v, valid := kc.Decoder.Valid()
	if valid {
		// a full queue drops the byte but the decode event still happened:
		// the interrupt latch and the serial report below are unaffected
		kc.FIFO.Push(v)
	}

	kc.Status.Tick(valid, kc.Pins.Clear, kc.FIFO.Len(), fifo.Capacity)

	if valid {
		// the report snapshots the post-update status
		kc.UART.Queue(uart.Report{
			Status: kc.Status.ReportByte(),
			Data:   v,
		})
	}

	kc.UART.Step()

	kc.ticks++
}
