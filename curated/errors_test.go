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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopherkey/curated"
	"github.com/jetsetilly/gopherkey/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "fail")

	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, testError))
	test.ExpectedFailure(t, curated.Is(e, testErrorB))

	// plain errors are not curated
	p := errors.New("plain")
	test.ExpectedFailure(t, curated.IsAny(p))
	test.ExpectedFailure(t, curated.Is(p, testError))

	// nil is nothing
	test.ExpectedFailure(t, curated.IsAny(nil))
	test.ExpectedFailure(t, curated.Is(nil, testError))
}

func TestHas(t *testing.T) {
	a := curated.Errorf(testError, "inner")
	b := curated.Errorf(testErrorB, a)

	test.ExpectedSuccess(t, curated.Has(b, testErrorB))
	test.ExpectedSuccess(t, curated.Has(b, testError))
	test.ExpectedFailure(t, curated.Has(a, testErrorB))
}

func TestDeduplication(t *testing.T) {
	// duplicate adjacent parts in the message chain are removed
	a := curated.Errorf("error: %s", curated.Errorf("error: %s", "fail"))
	test.Equate(t, a.Error(), "error: fail")
}
