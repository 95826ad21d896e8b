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

// Package clocks defines the constant values that define the speed of the
// internal clock of the interface core and the rates of the external serial
// lines.
//
// The internal clock is the reference 25MHz of the original silicon.
// Everything in the hardware package counts in ticks of this clock.
//
// Keyboards drive their own clock line somewhere in the 8kHz to 16kHz
// range. The decoder samples by edge detection so the exact rate does not
// matter to it, but the constants are useful to the testbench and to the
// interactive harness.
package clocks

// Internal is the internal clock of the core in Hz.
const Internal = 25000000

// Baud is the bit rate of the serial report line.
const Baud = 115200

// TxDivisor is the number of internal ticks per serial report bit.
const TxDivisor = Internal / Baud

// Typical keyboard clock rates in Hz. The decoder tolerates anything in the
// 8kHz to 16kHz range; these are the rates exercised by the regression
// scenarios.
const (
	KeyboardClkSlow    = 8000
	KeyboardClkTypical = 10000
	KeyboardClkFast    = 12000
)
