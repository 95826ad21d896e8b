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

// Package wavwriter allows recording of the keyboard line pair to disk as a
// two channel WAV file: the keyboard clock on the left channel and the data
// line on the right. A recording made this way can be played back through
// the capture package.
//
// Note that samples are buffered in memory in their entirety and written to
// disk on program end. It is therefore probably only suitable for testing
// purposes.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/hardware/clocks"
	"github.com/jetsetilly/gopherkey/logger"
)

// SampleRate of the recording in Hz. Comfortably oversamples the fastest
// keyboard clock.
const SampleRate = 44100

// 16 bit sample levels for the two line states.
const (
	levelHi = 16384
	levelLo = -16384
)

// LineWriter records the levels of the keyboard line pair. Tick() is to be
// called once per internal clock tick; the writer downsamples to the
// recording rate.
type LineWriter struct {
	filename string
	buf      *audio.IntBuffer

	// ticks between recorded samples and progress to the next one
	downsample int
	phase      int
}

// New is the preferred method of initialisation for the LineWriter type.
func New(filename string) (*LineWriter, error) {
	return &LineWriter{
		filename:   filename,
		downsample: clocks.Internal / SampleRate,
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: 2,
				SampleRate:  SampleRate,
			},
			SourceBitDepth: 16,
		},
	}, nil
}

func level(line bool) int {
	if line {
		return levelHi
	}
	return levelLo
}

// Tick samples the keyboard line pair once.
func (lw *LineWriter) Tick(clk bool, data bool) {
	lw.phase++
	if lw.phase < lw.downsample {
		return
	}
	lw.phase = 0

	lw.buf.Data = append(lw.buf.Data, level(clk), level(data))
}

// End writes the buffered recording to disk.
func (lw *LineWriter) End() (rerr error) {
	f, err := os.Create(lw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, SampleRate, 16, 2, 1)

	logger.Logf("wavwriter", "writing line recording to %s", lw.filename)

	if err := enc.Write(lw.buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
