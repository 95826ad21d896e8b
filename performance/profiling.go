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
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/jetsetilly/gopherkey/curated"
)

func cpuProfile(profile bool, outFile string, run func() error) error {
	if profile {
		f, err := os.Create(outFile)
		if err != nil {
			return curated.Errorf(CheckError, err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			return curated.Errorf(CheckError, err)
		}
		defer pprof.StopCPUProfile()
	}

	return run()
}

func memProfile(profile bool, outFile string) error {
	if profile {
		f, err := os.Create(outFile)
		if err != nil {
			return curated.Errorf(CheckError, err)
		}
		runtime.GC()
		err = pprof.WriteHeapProfile(f)
		if err != nil {
			return curated.Errorf(CheckError, err)
		}
		f.Close()
	}

	return nil
}
