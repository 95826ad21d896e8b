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

// Package ps2 implements the frame decoder for the keyboard side of the
// interface core.
//
// A frame is one start bit (low), eight data bits LSB first, one odd parity
// bit and one stop bit (high). The keyboard drives both lines; a bit is
// valid on the falling transition of the keyboard clock. The keyboard clock
// is asynchronous to the internal clock so both lines are sampled through
// trace.Trace values and the decoder advances on detected edges, not on a
// timer. Any keyboard clock rate that the internal clock can oversample is
// therefore acceptable.
//
// A frame failing any of the three checks (start low, parity odd, stop
// high) is discarded without comment to the host. There is no timeout: a
// frame that stops arriving mid-transmission parks the decoder until the
// core is reset.
package ps2

import (
	"fmt"

	"github.com/jetsetilly/gopherkey/hardware/trace"
	"github.com/jetsetilly/gopherkey/logger"
)

// DecoderState records how incoming bits will be interpreted.
type DecoderState int

// List of valid DecoderState values.
const (
	DecoderIdle DecoderState = iota
	DecoderData
	DecoderParity
	DecoderStop
)

func (s DecoderState) String() string {
	switch s {
	case DecoderIdle:
		return "idle"
	case DecoderData:
		return "data"
	case DecoderParity:
		return "parity"
	case DecoderStop:
		return "stop"
	}
	panic("unknown decoder state")
}

// Decoder is the keyboard frame decoder. It implements the hardware.Ticker
// interface.
type Decoder struct {
	// the keyboard clock and data lines, sampled once per tick
	Clk  trace.Trace
	Data trace.Trace

	// incoming bits are interpreted depending on the state of the frame
	State DecoderState

	// data bits are shifted into Bits LSB first. see recvBit()
	Bits   uint8
	BitsCt int

	// running XOR of the data bits. the parity bit must be the complement
	// of this (odd parity)
	parity bool

	// the result of the most recent tick. valid is held for exactly one
	// tick
	value uint8
	valid bool
}

// NewDecoder is the preferred method of initialisation for the Decoder
// type.
func NewDecoder() *Decoder {
	return &Decoder{
		Clk:  trace.NewTrace("ps2 clk"),
		Data: trace.NewTrace("ps2 data"),
	}
}

func (dec *Decoder) String() string {
	return fmt.Sprintf("ps2: %s (bits=%d)", dec.State, dec.BitsCt)
}

// Snapshot makes a copy of the Decoder.
func (dec *Decoder) Snapshot() *Decoder {
	n := *dec
	n.Clk = *dec.Clk.Snapshot()
	n.Data = *dec.Data.Snapshot()
	return &n
}

// Reset returns the decoder to the idle state. The only way of recovering a
// decoder that is parked mid-frame.
func (dec *Decoder) Reset() {
	dec.Clk.Reset()
	dec.Data.Reset()
	dec.State = DecoderIdle
	dec.resetBits()
	dec.valid = false
	dec.value = 0
}

// Valid returns the decoded byte and true for the one tick following a
// well-formed frame.
func (dec *Decoder) Valid() (uint8, bool) {
	return dec.value, dec.valid
}

// recvBit shifts a sampled bit into the accumulator, LSB first, and updates
// the running parity. returns true once all eight data bits are in.
func (dec *Decoder) recvBit(v bool) bool {
	if v {
		dec.Bits |= 0x01 << dec.BitsCt
		dec.parity = !dec.parity
	}
	dec.BitsCt++
	return dec.BitsCt == 8
}

func (dec *Decoder) resetBits() {
	dec.Bits = 0
	dec.BitsCt = 0
	dec.parity = false
}

// Step the decoder one tick, sampling the keyboard clock and data line
// levels.
func (dec *Decoder) Step(clk bool, data bool) {
	// valid is a one-tick pulse
	dec.valid = false

	dec.Clk.Tick(clk)
	dec.Data.Tick(data)

	// bits are only sampled when the keyboard clock transitions to low
	if !dec.Clk.Falling() {
		return
	}

	bit := dec.Data.Hi()

	switch dec.State {
	case DecoderIdle:
		// a high bit in the idle state is not a start bit. stay idle
		if !bit {
			dec.resetBits()
			dec.State = DecoderData
		}

	case DecoderData:
		if dec.recvBit(bit) {
			dec.State = DecoderParity
		}

	case DecoderParity:
		// odd parity: the parity bit is the complement of the XOR of the
		// data bits
		if bit == dec.parity {
			logger.Logf("ps2", "bad parity: discarding frame (%#02x)", dec.Bits)
			dec.State = DecoderIdle
			return
		}
		dec.State = DecoderStop

	case DecoderStop:
		if !bit {
			logger.Logf("ps2", "bad stop bit: discarding frame (%#02x)", dec.Bits)
			dec.State = DecoderIdle
			return
		}
		dec.value = dec.Bits
		dec.valid = true
		dec.State = DecoderIdle
		logger.Logf("ps2", "decoded %#02x", dec.value)
	}
}
