// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
//
// Additional permission under GNU GPL version 3 section 7
//
// If you modify this program, or any covered work, by linking or combining it
// with embedded mcl code and modules (and that the embedded mcl code and
// modules which link with this program, contain a copy of their source code in
// the authoritative form) containing parts covered by the terms of any other
// license, the licensors of this program grant you additional permission to
// convey the resulting work. Furthermore, the licensors of this program grant
// the original author, James Shubin, additional permission to update this
// additional permission if he deems it necessary to achieve the goals of this
// additional permission.

package errwrap

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapfErr1(t *testing.T) {
	if err := Wrapf(nil, "whatever: %d", 42); err != nil {
		t.Errorf("expected nil result")
	}
}

func TestWrapfErr2(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := Wrapf(inner, "outer %s", "layer")
	if err == nil {
		t.Errorf("expected an error")
		return
	}
	if s := err.Error(); s != "outer layer: inner" {
		t.Errorf("unexpected message: %s", s)
	}
	if !errors.Is(err, inner) {
		t.Errorf("expected the inner error to stay reachable")
	}
	if Cause(err) != inner {
		t.Errorf("expected the cause to be the inner error")
	}
}

func TestAppendErr1(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Errorf("expected nil result")
	}
}

func TestAppendErr2(t *testing.T) {
	reterr := fmt.Errorf("reterr")
	if err := Append(reterr, nil); err != reterr {
		t.Errorf("expected reterr")
	}
}

func TestAppendErr3(t *testing.T) {
	err := fmt.Errorf("err")
	if reterr := Append(nil, err); reterr != err {
		t.Errorf("expected err")
	}
}

func TestErrors1(t *testing.T) {
	if l := len(Errors(nil)); l != 0 {
		t.Errorf("expected no errors, got: %d", l)
	}

	e1 := fmt.Errorf("one")
	e2 := fmt.Errorf("two")
	e3 := fmt.Errorf("three")
	var err error
	err = Append(err, e1)
	err = Append(err, e2)
	err = Append(err, e3)

	errs := Errors(err)
	if len(errs) != 3 {
		t.Errorf("expected three errors, got: %d", len(errs))
		return
	}
	for i, e := range []error{e1, e2, e3} {
		if errs[i] != e {
			t.Errorf("error #%d did not match", i)
		}
	}
}

func TestString1(t *testing.T) {
	var err error
	if String(err) != "" {
		t.Errorf("expected empty result")
	}

	msg := "this is an error"
	if err := errors.New(msg); String(err) != msg {
		t.Errorf("expected different result")
	}
}
