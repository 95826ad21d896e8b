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

// Package serialmirror forwards emulated serial reports to a real serial
// port, so that hardware expecting the original silicon can listen to the
// emulation instead.
package serialmirror

import (
	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/hardware/uart"
	"github.com/jetsetilly/gopherkey/logger"
	"github.com/tarm/serial"
)

// sentinel error returned when the mirror port cannot be opened.
const MirrorError = "serialmirror: %v"

// Mirror writes every completed report to a real serial port. It implements
// the uart.Observer interface.
type Mirror struct {
	port *serial.Port
}

// New opens the named serial device at the given baud rate.
func New(device string, baud int) (*Mirror, error) {
	p, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, curated.Errorf(MirrorError, err)
	}

	logger.Logf("serialmirror", "mirroring reports to %s at %d baud", device, baud)

	return &Mirror{port: p}, nil
}

// Report implements the uart.Observer interface.
func (m *Mirror) Report(r uart.Report) {
	// a write error is logged, not returned. the emulation must not stall
	// because a listener went away
	if _, err := m.port.Write([]byte{r.Status, r.Data}); err != nil {
		logger.Logf("serialmirror", "write: %v", err)
	}
}

// Close the serial port.
func (m *Mirror) Close() error {
	if err := m.port.Close(); err != nil {
		return curated.Errorf(MirrorError, err)
	}
	return nil
}
