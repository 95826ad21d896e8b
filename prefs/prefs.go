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

// Package prefs handles the loading and saving of user preferences, stored
// on disk as a TOML file.
package prefs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/hardware/clocks"
)

// sentinel error returned when preferences cannot be loaded or saved.
const PrefsError = "prefs: %v"

// Preferences for the emulation and its harnesses.
type Preferences struct {
	// the keyboard clock rate, in Hz, used when synthesising frames in the
	// interactive mode
	KeyboardClk int `toml:"keyboard_clk"`

	// echo log entries to stderr as they happen
	LogEcho bool `toml:"log_echo"`

	// device and baud rate for mirroring serial reports to a real port.
	// mirroring is off when the device is empty
	MirrorDevice string `toml:"mirror_device"`
	MirrorBaud   int    `toml:"mirror_baud"`
}

func defaults() Preferences {
	return Preferences{
		KeyboardClk: clocks.KeyboardClkTypical,
		MirrorBaud:  clocks.Baud,
	}
}

// DefaultPath returns the path preferences are kept at, creating the parent
// directory as required.
func DefaultPath() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", curated.Errorf(PrefsError, err)
	}
	d = filepath.Join(d, "gopherkey")
	if err := os.MkdirAll(d, 0700); err != nil {
		return "", curated.Errorf(PrefsError, err)
	}
	return filepath.Join(d, "gopherkey.toml"), nil
}

// Load preferences from path. A missing file is not an error: defaults are
// returned.
func Load(path string) (Preferences, error) {
	p := defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}

	if _, err := toml.DecodeFile(path, &p); err != nil {
		return defaults(), curated.Errorf(PrefsError, err)
	}

	if p.KeyboardClk < clocks.KeyboardClkSlow || p.KeyboardClk > 16000 {
		return defaults(), curated.Errorf(PrefsError, "keyboard_clk out of range")
	}

	return p, nil
}

// Save preferences to path.
func Save(path string, p Preferences) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf(PrefsError, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			rerr = curated.Errorf(PrefsError, err)
		}
	}()

	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return curated.Errorf(PrefsError, err)
	}

	return nil
}
