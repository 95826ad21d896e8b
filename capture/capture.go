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

// Package capture loads a recording of the keyboard line pair and plays it
// back into the core.
//
// A recording is a two channel audio file: the keyboard clock on the left
// channel and the data line on the right, the format produced by a logic
// probe on the two lines (or by the wavwriter package). Both WAV and MP3
// files are supported. Samples above the zero line are treated as the high
// voltage state.
package capture

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/hardware"
	"github.com/jetsetilly/gopherkey/hardware/clocks"
	"github.com/jetsetilly/gopherkey/logger"
)

// NotACapture is returned when the file cannot be interpreted as a two
// channel line recording. Test with curated.Has().
const NotACapture = "capture: %v"

// Recording is a digitised recording of the keyboard line pair. Clk and Data
// are the same length.
type Recording struct {
	SampleRate float64
	TotalTime  float64 // in seconds

	Clk  []bool
	Data []bool
}

// Load a line recording from a WAV or MP3 file.
func Load(filename string) (*Recording, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(NotACapture, err)
	}
	defer f.Close()

	rec := &Recording{}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		err = rec.loadWAV(f)
	case ".mp3":
		err = rec.loadMP3(f)
	default:
		return nil, curated.Errorf(NotACapture, "unsupported file type")
	}
	if err != nil {
		return nil, err
	}

	logger.Logf("capture", "sample rate: %0.2fHz", rec.SampleRate)
	logger.Logf("capture", "total time: %.02fs", rec.TotalTime)

	return rec, nil
}

func (rec *Recording) loadWAV(f *os.File) error {
	dec := wav.NewDecoder(f)
	if dec == nil {
		return curated.Errorf(NotACapture, "error decoding wav")
	}

	if !dec.IsValidFile() {
		return curated.Errorf(NotACapture, "not a valid wav file")
	}

	if dec.NumChans != 2 {
		return curated.Errorf(NotACapture, "recording must have two channels")
	}

	logger.Log("capture", "loading from wav file")

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return curated.Errorf(NotACapture, err)
	}
	floatBuf := buf.AsFloat32Buffer()

	rec.Clk = make([]bool, 0, len(floatBuf.Data)/2)
	rec.Data = make([]bool, 0, len(floatBuf.Data)/2)
	for i := 0; i+1 < len(floatBuf.Data); i += 2 {
		rec.Clk = append(rec.Clk, floatBuf.Data[i] > 0)
		rec.Data = append(rec.Data, floatBuf.Data[i+1] > 0)
	}

	rec.SampleRate = float64(dec.SampleRate)

	dur, err := dec.Duration()
	if err != nil {
		return curated.Errorf(NotACapture, err)
	}
	rec.TotalTime = dur.Seconds()

	return nil
}

func (rec *Recording) loadMP3(f *os.File) error {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return curated.Errorf(NotACapture, err)
	}

	logger.Log("capture", "loading from mp3 file")

	// the decoded stream is always 16bit (little endian) 2 channels, even
	// if the source is single channel. a sample frame is therefore always
	// four bytes: left channel first
	err = nil
	chunk := make([]byte, 4096)
	for err != io.EOF {
		var chunkLen int
		chunkLen, err = dec.Read(chunk)
		if err != nil && err != io.EOF {
			return curated.Errorf(NotACapture, err)
		}

		for i := 0; i+3 < chunkLen; i += 4 {
			l := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			r := int16(uint16(chunk[i+2]) | uint16(chunk[i+3])<<8)
			rec.Clk = append(rec.Clk, l > 0)
			rec.Data = append(rec.Data, r > 0)
		}
	}

	rec.SampleRate = float64(dec.SampleRate())
	rec.TotalTime = float64(len(rec.Clk)) / rec.SampleRate

	return nil
}

// Play the recording into the core. Every recorded sample is held on the
// keyboard lines for the number of ticks that matches the recording's sample
// rate. onTick, if not nil, is called after every tick of the core.
//
// Returns the bytes decoded during playback.
func (rec *Recording) Play(kc *hardware.KeyCore, onTick func()) []uint8 {
	ticksPerSample := int(float64(clocks.Internal)/rec.SampleRate + 0.5)
	if ticksPerSample < 1 {
		ticksPerSample = 1
	}

	var decoded []uint8

	for i := range rec.Clk {
		kc.Pins.PS2Clk = rec.Clk[i]
		kc.Pins.PS2Data = rec.Data[i]
		for j := 0; j < ticksPerSample; j++ {
			kc.Step()
			if v, ok := kc.Valid(); ok {
				decoded = append(decoded, v)
			}
			if onTick != nil {
				onTick()
			}
		}
	}

	return decoded
}
