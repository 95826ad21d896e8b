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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values, and returns an error. Unlike fmt.Errorf() the pattern is retained
// and can be tested for with the Is() and Has() functions:
//
//	e := curated.Errorf("decoder: bad parity (%#02x)", v)
//
//	if curated.Is(e, "decoder: bad parity (%#02x)") {
//		fmt.Println("true")
//	}
//
// Is() tests the outermost pattern only. Has() walks the chain of wrapped
// curated errors looking for the pattern anywhere:
//
//	f := curated.Errorf("readport: %v", e)
//
//	curated.Is(f, "decoder: bad parity (%#02x)")   -> false
//	curated.Has(f, "decoder: bad parity (%#02x)")  -> true
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We can think of the distinction as being between 'expected' and
// 'unexpected' errors, depending on how we choose to handle the result of a
// function call.
//
// The Error() function normalises the message chain, removing duplicate
// adjacent parts. For the purposes of this package, chains are composed of
// parts separated by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
//
// There is no special provision for sentinel errors but they are achievable
// in practice through the use of the Is() and Has() functions. Sentinel
// patterns should be stored as a const string, suitably named and commented.
package curated
