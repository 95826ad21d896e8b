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

package status_test

import (
	"testing"

	"github.com/jetsetilly/gopherkey/hardware/status"
	"github.com/jetsetilly/gopherkey/test"
)

func TestInterruptLatch(t *testing.T) {
	st := &status.Status{}

	st.Tick(true, false, 1, 4)
	test.Equate(t, st.Interrupt, true)

	// the latch holds with no further events
	for i := 0; i < 100; i++ {
		st.Tick(false, false, 1, 4)
	}
	test.Equate(t, st.Interrupt, true)

	st.Tick(false, true, 1, 4)
	test.Equate(t, st.Interrupt, false)
}

func TestClearDominates(t *testing.T) {
	st := &status.Status{}

	// a valid event on the same tick as an asserted clear line loses
	st.Tick(true, true, 1, 4)
	test.Equate(t, st.Interrupt, false)

	// and releasing clear does not resurrect it
	st.Tick(false, false, 1, 4)
	test.Equate(t, st.Interrupt, false)
}

func TestLevels(t *testing.T) {
	st := &status.Status{}

	st.Tick(false, false, 0, 4)
	test.Equate(t, st.DataReady, false)
	test.Equate(t, st.FifoFull, false)

	st.Tick(false, false, 1, 4)
	test.Equate(t, st.DataReady, true)
	test.Equate(t, st.FifoFull, false)

	st.Tick(false, false, 4, 4)
	test.Equate(t, st.DataReady, true)
	test.Equate(t, st.FifoFull, true)

	// levels track occupancy with no latching
	st.Tick(false, false, 0, 4)
	test.Equate(t, st.DataReady, false)
	test.Equate(t, st.FifoFull, false)
}

func TestReportByte(t *testing.T) {
	st := &status.Status{}

	// the valid bit is always set in a report
	test.Equate(t, st.ReportByte(), 0x01)

	st.Tick(true, false, 1, 4)
	test.Equate(t, st.ReportByte(), 0x07)

	st.Tick(true, false, 4, 4)
	test.Equate(t, st.ReportByte(), 0x0f)

	st.Reset()
	test.Equate(t, st.ReportByte(), 0x01)
}
