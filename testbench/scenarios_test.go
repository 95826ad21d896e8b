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
	"testing"

	"github.com/jetsetilly/gopherkey/hardware/clocks"
	"github.com/jetsetilly/gopherkey/test"
)

func TestSingleByte(t *testing.T) {
	b := NewBench()

	b.SendByte(0xc2)

	test.Equate(t, b.Core.Status.Interrupt, true)
	test.Equate(t, b.Core.Status.DataReady, true)
	test.Equate(t, b.Core.Status.FifoFull, false)

	v, oe := b.ReadByte()
	test.Equate(t, oe, true)
	test.Equate(t, v, 0xc2)

	// queue drained, data_ready falls but the interrupt stays latched
	test.Equate(t, b.Core.Status.DataReady, false)
	test.Equate(t, b.Core.Status.Interrupt, true)

	b.ClearInterrupt()
	test.Equate(t, b.Core.Status.Interrupt, false)
}

func TestTwoBytes(t *testing.T) {
	b := NewBench()

	b.SendByte(0xf0)
	b.SendByte(0x15)

	test.Equate(t, b.Core.FIFO.Len(), 2)

	v, oe := b.ReadByte()
	test.Equate(t, oe, true)
	test.Equate(t, v, 0xf0)

	v, oe = b.ReadByte()
	test.Equate(t, oe, true)
	test.Equate(t, v, 0x15)

	test.Equate(t, b.Core.FIFO.IsEmpty(), true)
}

func TestBadParity(t *testing.T) {
	b := NewBench()

	b.Send(Frame{Data: 0xaa, BadParity: true})

	test.Equate(t, b.Core.FIFO.IsEmpty(), true)
	test.Equate(t, b.Core.Status.Interrupt, false)
	test.Equate(t, b.Core.Status.DataReady, false)

	// a good frame afterwards is unaffected
	b.SendByte(0x21)
	v, oe := b.ReadByte()
	test.Equate(t, oe, true)
	test.Equate(t, v, 0x21)
}

func TestBadStartBit(t *testing.T) {
	b := NewBench()

	b.Send(Frame{Data: 0x55, BadStart: true})

	// a high bit in the idle state is never a start bit so the frame never
	// assembles into a byte
	test.Equate(t, b.Core.FIFO.IsEmpty(), true)
	test.Equate(t, b.Core.Status.Interrupt, false)
}

func TestBadStopBit(t *testing.T) {
	b := NewBench()

	b.Send(Frame{Data: 0x33, BadStop: true})

	test.Equate(t, b.Core.FIFO.IsEmpty(), true)
	test.Equate(t, b.Core.Status.Interrupt, false)
}

func TestQueueOverflow(t *testing.T) {
	b := NewBench()

	for i := 0; i < 5; i++ {
		b.SendByte(uint8(0xa0 + i))
	}

	// the queue holds the first four bytes. the fifth was dropped
	test.Equate(t, b.Core.FIFO.Len(), 4)
	test.Equate(t, b.Core.Status.FifoFull, true)

	for i := 0; i < 4; i++ {
		v, oe := b.ReadByte()
		test.Equate(t, oe, true)
		test.Equate(t, v, 0xa0+i)
	}

	// a strobe against an empty queue drives nothing
	_, oe := b.ReadByte()
	test.Equate(t, oe, false)
	test.Equate(t, b.Core.Status.FifoFull, false)
}

func TestBackToBackFrames(t *testing.T) {
	b := NewBench()

	b.SendByte(0x1c)
	b.SendByte(0x1b)
	b.SendByte(0x23)

	for _, want := range []int{0x1c, 0x1b, 0x23} {
		v, oe := b.ReadByte()
		test.Equate(t, oe, true)
		test.Equate(t, v, want)
	}
}

func TestHeldSelect(t *testing.T) {
	b := NewBench()

	b.SendByte(0x44)
	b.SendByte(0x55)

	// hold the strobe high for a long time. exactly one byte is popped and
	// the bus is frozen for the duration
	b.Core.Pins.Select = true
	b.Run(10)
	test.Equate(t, b.Core.Port.OutputEnable, true)
	test.Equate(t, b.Core.Port.Bus, 0x44)

	b.Run(1000)
	test.Equate(t, b.Core.Port.OutputEnable, true)
	test.Equate(t, b.Core.Port.Bus, 0x44)
	test.Equate(t, b.Core.FIFO.Len(), 1)

	b.Core.Pins.Select = false
	b.Run(10)
	test.Equate(t, b.Core.Port.OutputEnable, false)

	v, oe := b.ReadByte()
	test.Equate(t, oe, true)
	test.Equate(t, v, 0x55)
}

func TestResetMidFrame(t *testing.T) {
	b := NewBench()

	// five data bits and then the keyboard goes quiet. there is no timeout
	// so the decoder is parked mid-frame
	b.Send(Frame{Data: 0xf0, Truncate: 5})
	b.Run(5000)
	test.Equate(t, b.Core.FIFO.IsEmpty(), true)

	b.Reset()

	b.SendByte(0x66)
	v, oe := b.ReadByte()
	test.Equate(t, oe, true)
	test.Equate(t, v, 0x66)
}

func TestBoundaryValues(t *testing.T) {
	b := NewBench()

	b.SendByte(0x00)
	b.SendByte(0xff)

	v, _ := b.ReadByte()
	test.Equate(t, v, 0x00)
	v, _ = b.ReadByte()
	test.Equate(t, v, 0xff)
}

func TestKeyboardClockRates(t *testing.T) {
	b := NewBench()

	b.SetKeyboardClk(clocks.KeyboardClkFast)
	b.SendByte(0x77)

	b.SetKeyboardClk(clocks.KeyboardClkSlow)
	b.SendByte(0x88)

	v, _ := b.ReadByte()
	test.Equate(t, v, 0x77)
	v, _ = b.ReadByte()
	test.Equate(t, v, 0x88)
}

func TestReport(t *testing.T) {
	b := NewBench()

	b.SendByte(0xab)

	ok := b.AwaitReports(1, 100000)
	test.Equate(t, ok, true)

	// valid, interrupt and data_ready bits set. fifo_full clear
	r := b.RX.Reports[0]
	test.Equate(t, r.Status, 0x07)
	test.Equate(t, r.Data, 0xab)
	test.Equate(t, b.RX.FramingErrors, 0)
}

func TestReportFifoFull(t *testing.T) {
	b := NewBench()

	for i := 0; i < 4; i++ {
		b.SendByte(uint8(0x10 + i))
	}
	b.SendByte(0x99)

	ok := b.AwaitReports(5, 200000)
	test.Equate(t, ok, true)

	// the first three reports see a part-filled queue
	for i := 0; i < 3; i++ {
		test.Equate(t, b.RX.Reports[i].Status, 0x07)
		test.Equate(t, b.RX.Reports[i].Data, 0x10+i)
	}

	// the fourth decode fills the queue and the fifth is dropped from it,
	// but both events still produce reports and both see a full queue
	test.Equate(t, b.RX.Reports[3].Status, 0x0f)
	test.Equate(t, b.RX.Reports[3].Data, 0x13)
	test.Equate(t, b.RX.Reports[4].Status, 0x0f)
	test.Equate(t, b.RX.Reports[4].Data, 0x99)
}

func TestClearAgainstSimultaneousEvent(t *testing.T) {
	b := NewBench()

	// holding the clear line suppresses the interrupt even as new decode
	// events arrive
	b.Core.Pins.Clear = true
	b.SendByte(0x42)
	test.Equate(t, b.Core.Status.Interrupt, false)
	test.Equate(t, b.Core.Status.DataReady, true)

	// releasing clear does not resurrect the suppressed event
	b.Core.Pins.Clear = false
	b.Run(10)
	test.Equate(t, b.Core.Status.Interrupt, false)

	// the byte itself was never at risk
	v, oe := b.ReadByte()
	test.Equate(t, oe, true)
	test.Equate(t, v, 0x42)
}
