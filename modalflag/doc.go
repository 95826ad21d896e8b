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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient way of defining sub-modes on the command
// line. For example:
//
//	gopherkey PLAYBACK -kbd 12000 capture.wav
//
// In this example, PLAYBACK is the sub-mode and -kbd is a flag belonging to
// that sub-mode. The flow of the package is to create a Modes value, call
// NewArgs() with the command line arguments, add available sub-modes and
// flags, and call Parse(). Sub-modes can be nested by calling NewMode() and
// Parse() again.
package modalflag
