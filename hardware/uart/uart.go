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

// Package uart implements the serial reporter of the interface core.
//
// Every valid decode event produces a Report: a status byte followed by the
// decoded data byte. Reports are transmitted over an independent serial
// line, each byte framed as one start bit (low), eight data bits LSB first
// and one stop bit (high), at a fixed baud rate. Transmission is entirely
// decoupled from the host read port.
//
// Decode events can arrive faster than a report can be serialised so
// pending reports are queued. The pending queue has the same capacity as
// the byte queue but the opposite overflow policy: drop-oldest, so that a
// host listening to the report line always eventually sees the most recent
// traffic.
package uart

import (
	"fmt"

	"github.com/jetsetilly/gopherkey/logger"
)

// Report is the two-byte unit of transmission: a status snapshot and the
// decoded byte it describes.
type Report struct {
	Status uint8
	Data   uint8
}

func (r Report) String() string {
	return fmt.Sprintf("report: status=%#02x data=%#02x", r.Status, r.Data)
}

// Observer is notified of every report that completes transmission.
// Implementations must not block; they are called from the emulation loop.
type Observer interface {
	Report(r Report)
}

// number of bits in one serial frame: start + 8 data + stop.
const frameBits = 10

// Reporter serialises reports onto the TX line. It implements the
// hardware.Ticker interface.
type Reporter struct {
	// number of internal ticks per serial bit
	divisor int

	// reports waiting to begin transmission. the report currently on the
	// wire is not included
	pending []Report
	cap     int

	// the report currently on the wire
	sending bool
	current Report

	// the 10-bit frame being shifted out, LSB first, and progress through
	// it. byteIdx is 0 for the status byte, 1 for the data byte
	shift   uint16
	shiftCt int
	byteIdx int

	// countdown to the next bit boundary
	countdown int

	// the level of the TX line. idles high
	tx bool

	observers []Observer
}

// NewReporter is the preferred method of initialisation for the Reporter
// type. divisor is the number of internal ticks per serial bit; capacity is
// the depth of the pending report queue.
func NewReporter(divisor int, capacity int) *Reporter {
	return &Reporter{
		divisor: divisor,
		pending: make([]Report, 0, capacity),
		cap:     capacity,
		tx:      true,
	}
}

func (rep *Reporter) String() string {
	if !rep.sending {
		return fmt.Sprintf("uart: idle (%d pending)", len(rep.pending))
	}
	return fmt.Sprintf("uart: sending byte %d of %v (%d pending)", rep.byteIdx, rep.current, len(rep.pending))
}

// Snapshot makes a copy of the Reporter. Observers are shared, not copied.
func (rep *Reporter) Snapshot() *Reporter {
	n := *rep
	n.pending = make([]Report, len(rep.pending), rep.cap)
	copy(n.pending, rep.pending)
	return &n
}

// Reset abandons any transmission in progress and empties the pending
// queue. The TX line returns to the idle (high) state.
func (rep *Reporter) Reset() {
	rep.pending = rep.pending[:0]
	rep.sending = false
	rep.shift = 0
	rep.shiftCt = 0
	rep.byteIdx = 0
	rep.countdown = 0
	rep.tx = true
}

// AddObserver registers an observer of completed reports.
func (rep *Reporter) AddObserver(o Observer) {
	rep.observers = append(rep.observers, o)
}

// TX returns the current level of the serial report line.
func (rep *Reporter) TX() bool {
	return rep.tx
}

// Busy is true while a report is on the wire or waiting to be.
func (rep *Reporter) Busy() bool {
	return rep.sending || len(rep.pending) > 0
}

// Queue a report for transmission. If the pending queue is full the oldest
// pending report is dropped to make room (drop-oldest policy).
func (rep *Reporter) Queue(r Report) {
	if len(rep.pending) >= rep.cap {
		logger.Logf("uart", "pending queue full: dropping %v", rep.pending[0])
		rep.pending = rep.pending[1:]
	}
	rep.pending = append(rep.pending, r)
}

// frame builds the 10-bit serial frame for a byte: start bit (0) in bit 0,
// data bits LSB first, stop bit (1) in bit 9.
func frame(data uint8) uint16 {
	return uint16(data)<<1 | 1<<9
}

// Step the reporter one tick.
func (rep *Reporter) Step() {
	if !rep.sending {
		if len(rep.pending) == 0 {
			return
		}

		// begin transmission of the next report. the first bit of the
		// status byte frame (the start bit) goes on the wire now
		rep.current = rep.pending[0]
		rep.pending = rep.pending[1:]
		rep.sending = true
		rep.byteIdx = 0
		rep.beginByte(rep.current.Status)
		return
	}

	rep.countdown--
	if rep.countdown > 0 {
		return
	}

	if rep.shiftCt >= frameBits {
		// frame complete. move to the data byte or finish the report
		if rep.byteIdx == 0 {
			rep.byteIdx = 1
			rep.beginByte(rep.current.Data)
			return
		}

		rep.sending = false
		rep.tx = true
		for _, o := range rep.observers {
			o.Report(rep.current)
		}
		return
	}

	// next bit
	rep.tx = rep.shift&0x01 == 0x01
	rep.shift >>= 1
	rep.shiftCt++
	rep.countdown = rep.divisor
}

// beginByte starts the 10-bit frame for a byte, putting the start bit on
// the wire immediately.
func (rep *Reporter) beginByte(data uint8) {
	rep.shift = frame(data)
	rep.tx = rep.shift&0x01 == 0x01
	rep.shift >>= 1
	rep.shiftCt = 1
	rep.countdown = rep.divisor
}
