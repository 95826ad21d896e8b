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

package main

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopherkey/capture"
	"github.com/jetsetilly/gopherkey/hardware/clocks"
	"github.com/jetsetilly/gopherkey/logger"
	"github.com/jetsetilly/gopherkey/modalflag"
	"github.com/jetsetilly/gopherkey/performance"
	"github.com/jetsetilly/gopherkey/prefs"
	"github.com/jetsetilly/gopherkey/serialmirror"
	"github.com/jetsetilly/gopherkey/statsview"
	"github.com/jetsetilly/gopherkey/terminal/easyterm"
	"github.com/jetsetilly/gopherkey/testbench"
	"github.com/jetsetilly/gopherkey/wavwriter"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAYBACK", "PERFORMANCE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "PLAYBACK":
		err = playback(md)

	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// load preferences from the default path, falling back to defaults on any
// problem (which is logged, not fatal).
func loadPrefs() prefs.Preferences {
	path, err := prefs.DefaultPath()
	if err != nil {
		logger.Logf("prefs", "%v", err)
		return prefs.Preferences{KeyboardClk: clocks.KeyboardClkTypical, MirrorBaud: clocks.Baud}
	}
	p, err := prefs.Load(path)
	if err != nil {
		logger.Logf("prefs", "%v", err)
	}
	return p
}

// attach a line recorder and a serial mirror to the bench, according to the
// wav and mirror arguments. the returned cleanup function is to be deferred.
func attachHarnesses(b *testbench.Bench, wavFile string, mirror string, mirrorBaud int) (func(), error) {
	cleanup := func() {}

	if wavFile != "" {
		lw, err := wavwriter.New(wavFile)
		if err != nil {
			return cleanup, err
		}
		b.OnStep = func() {
			lw.Tick(b.Core.Pins.PS2Clk, b.Core.Pins.PS2Data)
		}
		cleanup = func() {
			if err := lw.End(); err != nil {
				fmt.Printf("* %v\n", err)
			}
		}
	}

	if mirror != "" {
		m, err := serialmirror.New(mirror, mirrorBaud)
		if err != nil {
			return cleanup, err
		}
		b.Core.UART.AddObserver(m)
		prev := cleanup
		cleanup = func() {
			prev()
			if err := m.Close(); err != nil {
				fmt.Printf("* %v\n", err)
			}
		}
	}

	return cleanup, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	pf := loadPrefs()

	kbd := md.AddInt("kbd", pf.KeyboardClk, "keyboard clock rate (Hz)")
	wavFile := md.AddString("wav", "", "record keyboard lines to wav file")
	mirror := md.AddString("mirror", pf.MirrorDevice, "mirror serial reports to a real port")
	log := md.AddBool("log", pf.LogEcho, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "launch statistics server")
	dot := md.AddString("memviz", "", "write core state graph to dot file on exit")
	savePrefs := md.AddBool("saveprefs", false, "save flag values as preferences on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	if *kbd < clocks.KeyboardClkSlow || *kbd > 16000 {
		return fmt.Errorf("keyboard clock rate out of range (8000 to 16000)")
	}

	b := testbench.NewBench()
	b.SetKeyboardClk(*kbd)

	cleanup, err := attachHarnesses(b, *wavFile, *mirror, pf.MirrorBaud)
	defer cleanup()
	if err != nil {
		return err
	}

	// raw mode so that keypresses arrive one at a time, unbuffered
	term := &easyterm.Terminal{}
	if err := term.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}
	term.RawMode()
	defer term.CanonicalMode()

	fmt.Print("typing sends frames to the core. ESC to quit\r\n")

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}

		// ESC or ctrl-c quits
		if buf[0] == 0x1b || buf[0] == 0x03 {
			break
		}

		b.SendByte(buf[0])

		// drain the report line before reading back so the report reflects
		// this frame
		b.Run(2*10*clocks.TxDivisor + 10)

		v, oe := b.ReadByte()
		if !oe {
			fmt.Print("* nothing to read\r\n")
			continue
		}

		if len(b.RX.Reports) > 0 {
			r := b.RX.Reports[len(b.RX.Reports)-1]
			fmt.Printf("decoded %#02x (%v)\r\n", v, r)
		} else {
			fmt.Printf("decoded %#02x\r\n", v)
		}

		b.ClearInterrupt()
	}

	if *dot != "" {
		f, err := os.Create(*dot)
		if err != nil {
			return err
		}
		defer f.Close()
		memviz.Map(f, b.Core)
	}

	if *savePrefs {
		path, err := prefs.DefaultPath()
		if err != nil {
			return err
		}
		pf.KeyboardClk = *kbd
		pf.MirrorDevice = *mirror
		pf.LogEcho = *log
		if err := prefs.Save(path, pf); err != nil {
			return err
		}
	}

	return nil
}

func playback(md *modalflag.Modes) error {
	md.NewMode()

	wavFile := md.AddString("wav", "", "re-record keyboard lines to wav file")
	mirror := md.AddString("mirror", "", "mirror serial reports to a real port")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	dot := md.AddString("memviz", "", "write core state graph to dot file on completion")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("line recording required for %s mode", md)
	case 1:
		rec, err := capture.Load(md.GetArg(0))
		if err != nil {
			return err
		}

		b := testbench.NewBench()

		pf := loadPrefs()
		cleanup, err := attachHarnesses(b, *wavFile, *mirror, pf.MirrorBaud)
		defer cleanup()
		if err != nil {
			return err
		}

		decoded := rec.Play(b.Core, b.OnStep)

		fmt.Fprintf(md.Output, "%d bytes decoded\n", len(decoded))
		for _, v := range decoded {
			fmt.Fprintf(md.Output, " %#02x", v)
		}
		if len(decoded) > 0 {
			fmt.Fprintln(md.Output)
		}

		if *dot != "" {
			f, err := os.Create(*dot)
			if err != nil {
				return err
			}
			defer f.Close()
			memviz.Map(f, b.Core)
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddBool("profile", false, "produce cpu and memory profiling reports")
	stats := md.AddBool("stats", false, "launch statistics server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	return performance.Check(md.Output, *profile, *duration)
}
