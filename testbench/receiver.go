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

package testbench

import (
	"github.com/jetsetilly/gopherkey/hardware/trace"
	"github.com/jetsetilly/gopherkey/hardware/uart"
)

// Receiver deserialises the report line the way a listening host UART
// would: it waits for a start bit, samples each bit at its centre and
// pairs completed bytes into reports.
type Receiver struct {
	line    trace.Trace
	divisor int

	// while receiving, countdown to the next sample point
	receiving bool
	countdown int
	bitCt     int
	value     uint8

	// every byte in arrival order, and the same bytes paired into reports
	Bytes   []uint8
	Reports []uart.Report

	// count of frames where the stop bit sampled low
	FramingErrors int
}

// NewReceiver is the preferred method of initialisation for the Receiver
// type. divisor is the number of ticks per serial bit.
func NewReceiver(divisor int) *Receiver {
	return &Receiver{
		line:    trace.NewTrace("report tx"),
		divisor: divisor,
	}
}

// Tick samples the report line once.
func (rx *Receiver) Tick(level bool) {
	rx.line.Tick(level)

	if !rx.receiving {
		if rx.line.Falling() {
			rx.receiving = true
			rx.bitCt = 0
			rx.value = 0

			// first sample lands in the centre of data bit zero, one and a
			// half bit periods after the start edge
			rx.countdown = rx.divisor + rx.divisor/2
		}
		return
	}

	rx.countdown--
	if rx.countdown > 0 {
		return
	}

	if rx.bitCt < 8 {
		if rx.line.Hi() {
			rx.value |= 0x01 << rx.bitCt
		}
		rx.bitCt++
		rx.countdown = rx.divisor
		return
	}

	// stop bit
	if rx.line.Lo() {
		rx.FramingErrors++
	}
	rx.receiving = false

	rx.Bytes = append(rx.Bytes, rx.value)
	if len(rx.Bytes)%2 == 0 {
		rx.Reports = append(rx.Reports, uart.Report{
			Status: rx.Bytes[len(rx.Bytes)-2],
			Data:   rx.Bytes[len(rx.Bytes)-1],
		})
	}
}
