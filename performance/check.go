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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/hardware/clocks"
	"github.com/jetsetilly/gopherkey/testbench"
)

// sentinel error returned when the performance check fails.
const CheckError = "performance: %v"

// Check measures the emulation rate of the core over the specified run time.
// The core is kept busy for the duration: a synthetic keyboard sends frames
// back-to-back at the fast clock rate and every byte is read back through
// the read port, so the whole pipeline is exercised, serial reporter
// included.
func Check(output io.Writer, profile bool, runTime string) error {
	duration, err := time.ParseDuration(runTime)
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	b := testbench.NewBench()
	b.SetKeyboardClk(clocks.KeyboardClkFast)

	// tick count at the start of the measured period
	var startTicks uint64

	err = cpuProfile(profile, "cpu.profile", func() error {
		// setup trigger that expires when duration has elapsed
		timesUp := make(chan bool)

		// force a two second leadtime to allow the tick rate to settle down
		// and then restart the timer for the specified duration
		go func() {
			time.AfterFunc(2*time.Second, func() {
				startTicks = b.Core.Ticks()
				time.AfterFunc(duration, func() {
					timesUp <- true
				})
			})
		}()

		var v uint8
		running := true
		for running {
			// one frame in, one byte out. roughly 30000 ticks per loop so
			// the channel is not checked too often
			b.SendByte(v)
			v++
			b.ReadByte()

			select {
			case <-timesUp:
				running = false
			default:
			}
		}
		return nil
	})
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	numTicks := b.Core.Ticks() - startTicks
	rate, accuracy := CalcRate(numTicks, duration.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2fMHz (%d ticks in %.2f seconds) %.1f%%\n",
		rate/1000000, numTicks, duration.Seconds(), accuracy)))

	return memProfile(profile, "mem.profile")
}

// CalcRate returns the tick rate in Hz and the rate as a percentage of the
// reference internal clock.
func CalcRate(numTicks uint64, seconds float64) (float64, float64) {
	if seconds <= 0 {
		return 0, 0
	}
	rate := float64(numTicks) / seconds
	return rate, 100 * rate / float64(clocks.Internal)
}
