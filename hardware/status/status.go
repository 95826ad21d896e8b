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

// Package status implements the status/interrupt controller of the
// interface core.
//
// The controller maintains two kinds of signal. DataReady and FifoFull are
// level signals: pure functions of queue occupancy, recomputed every tick.
// Interrupt is a latched signal: it is set by a valid decode event and stays
// set until the host asserts the clear line (or the core is reset). The two
// kinds are deliberately distinct state - "an unserviced event occurred" is
// not the same thing as "data is currently present".
package status

import "fmt"

// bit positions in the report status byte.
const (
	maskValid     = 0b00000001
	maskInterrupt = 0b00000010
	maskDataReady = 0b00000100
	maskFifoFull  = 0b00001000
)

// Status is the observable status of the interface core.
type Status struct {
	// latched on a valid decode event. cleared by the clear line or reset
	Interrupt bool

	// level signals. updated every tick from queue occupancy
	DataReady bool
	FifoFull  bool
}

func (st Status) String() string {
	return fmt.Sprintf("int=%v rdy=%v full=%v", st.Interrupt, st.DataReady, st.FifoFull)
}

// Reset returns all signals to their initial (low) state.
func (st *Status) Reset() {
	st.Interrupt = false
	st.DataReady = false
	st.FifoFull = false
}

// Tick updates the controller. valid is the decoder's valid pulse for this
// tick; clear is the sampled level of the host clear line; occupancy and
// capacity describe the byte queue.
//
// The clear line dominates: while it is held the interrupt stays low, even
// against a simultaneous valid event.
func (st *Status) Tick(valid bool, clear bool, occupancy int, capacity int) {
	if valid {
		st.Interrupt = true
	}
	if clear {
		st.Interrupt = false
	}

	st.DataReady = occupancy > 0
	st.FifoFull = occupancy >= capacity
}

// ReportByte builds the status byte of a serial report. The valid bit is
// always set - reports only exist because a decode event happened - and the
// remaining bits are the post-update signal values.
func (st Status) ReportByte() uint8 {
	var v uint8 = maskValid
	if st.Interrupt {
		v |= maskInterrupt
	}
	if st.DataReady {
		v |= maskDataReady
	}
	if st.FifoFull {
		v |= maskFifoFull
	}
	return v
}
