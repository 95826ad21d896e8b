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

// Package easyterm is a wrapper for "github.com/pkg/term/termios". It wraps
// termios methods in functions with friendlier names. Used by the
// interactive mode to read raw keypresses for the emulated keyboard.
package easyterm

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal is the main container for posix terminals.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	rawAttr    unix.Termios
	cbreakAttr unix.Termios
}

// Initialise the fields in the Terminal struct.
func (pt *Terminal) Initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil {
		return fmt.Errorf("easyterm: terminal requires an input file")
	}
	if outputFile == nil {
		return fmt.Errorf("easyterm: terminal requires an output file")
	}

	pt.input = inputFile
	pt.output = outputFile

	// prepare the attributes for the different terminal modes we'll be using
	termios.Tcgetattr(pt.input.Fd(), &pt.canAttr)
	termios.Cfmakecbreak(&pt.cbreakAttr)
	termios.Cfmakeraw(&pt.rawAttr)

	return nil
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (pt *Terminal) CanonicalMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// RawMode puts terminal into raw mode.
func (pt *Terminal) RawMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.rawAttr)
}

// CBreakMode puts terminal into cbreak mode.
func (pt *Terminal) CBreakMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}

// Flush makes sure the terminal's input/output buffers are empty.
func (pt *Terminal) Flush() error {
	if err := termios.Tcflush(pt.input.Fd(), termios.TCIFLUSH); err != nil {
		return err
	}
	if err := termios.Tcflush(pt.output.Fd(), termios.TCOFLUSH); err != nil {
		return err
	}
	return nil
}
