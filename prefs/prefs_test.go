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

package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherkey/hardware/clocks"
	"github.com/jetsetilly/gopherkey/prefs"
	"github.com/jetsetilly/gopherkey/test"
)

func TestMissingFileIsDefaults(t *testing.T) {
	p, err := prefs.Load(filepath.Join(t.TempDir(), "no-such-file.toml"))
	test.ExpectedSuccess(t, err)
	test.Equate(t, p.KeyboardClk, clocks.KeyboardClkTypical)
	test.Equate(t, p.MirrorBaud, clocks.Baud)
	test.Equate(t, p.LogEcho, false)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopherkey.toml")

	p, err := prefs.Load(path)
	test.ExpectedSuccess(t, err)

	p.KeyboardClk = clocks.KeyboardClkFast
	p.LogEcho = true
	p.MirrorDevice = "/dev/ttyUSB0"

	test.ExpectedSuccess(t, prefs.Save(path, p))

	q, err := prefs.Load(path)
	test.ExpectedSuccess(t, err)
	test.Equate(t, q.KeyboardClk, clocks.KeyboardClkFast)
	test.Equate(t, q.LogEcho, true)
	test.Equate(t, q.MirrorDevice, "/dev/ttyUSB0")
}

func TestOutOfRangeClock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopherkey.toml")

	p, err := prefs.Load(path)
	test.ExpectedSuccess(t, err)

	p.KeyboardClk = 100
	test.ExpectedSuccess(t, prefs.Save(path, p))

	q, err := prefs.Load(path)
	test.ExpectedFailure(t, err)

	// defaults are returned alongside the error
	test.Equate(t, q.KeyboardClk, clocks.KeyboardClkTypical)
}
