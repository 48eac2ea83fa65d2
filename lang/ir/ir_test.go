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

package ir

import (
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"gopkg.in/yaml.v2"
)

func sample(t *testing.T) *Program {
	prog := New("")
	lines := []*Line{
		{Ln: "1", Method: "function", Function: Str("f"), Enter: Str("2"), Next: Str("3")},
		{Ln: "2", Method: "return", Parent: Str("1"), Args: []interface{}{NewObject("int", "int", 1)}},
		{Ln: "3", Method: "call", Name: []string{"x"}, Function: Str("f"), Next: Str("3.1")},
		{Ln: "3.1", Method: "execute", Service: Str("log"), Command: Str("info")},
	}
	for _, line := range lines {
		if err := prog.Add(line); err != nil {
			t.Fatalf("add failed with: %+v", err)
		}
	}
	prog.Functions["f"] = "1"
	prog.AddService("log")
	return prog
}

func TestProgram(t *testing.T) {
	prog := sample(t)
	if *prog.Entrypoint != "1" {
		t.Errorf("unexpected entrypoint: %s", *prog.Entrypoint)
	}
	if prog.Version != Version {
		t.Errorf("unexpected version: %s", prog.Version)
	}
	if err := prog.Add(&Line{Ln: "2"}); err == nil {
		t.Errorf("expected the duplicate line to fail")
	}
	if err := prog.Validate(); err != nil {
		t.Errorf("validate failed with: %+v", err)
	}

	order := []string{}
	for _, line := range prog.Lines() {
		order = append(order, line.Ln)
	}
	if diff := pretty.Compare([]string{"1", "2", "3", "3.1"}, order); diff != "" {
		t.Errorf("order differs: (-want +got)\n%s", diff)
	}

	prog.Tree["3"].Exit = Str("9")
	prog.Functions["g"] = "8"
	if err := prog.Validate(); err == nil {
		t.Errorf("expected the dangling links to fail")
	}
}

func TestAddService(t *testing.T) {
	prog := New("1.0.0")
	for _, name := range []string{"redis", "http", "log", "http", "aws.s3"} {
		prog.AddService(name)
	}
	if diff := pretty.Compare([]string{"aws.s3", "http", "log", "redis"}, prog.Services); diff != "" {
		t.Errorf("services differ: (-want +got)\n%s", diff)
	}
	if prog.Version != "1.0.0" {
		t.Errorf("unexpected version: %s", prog.Version)
	}
}

func TestEncode(t *testing.T) {
	prog := sample(t)

	b, err := prog.Encode(FormatJSON)
	if err != nil {
		t.Fatalf("encode failed with: %+v", err)
	}
	for _, s := range []string{`"$OBJECT": "int"`, `"entrypoint": "1"`, `"parent": null`, `"services": [`} {
		if !strings.Contains(string(b), s) {
			t.Errorf("missing %s in:\n%s", s, b)
		}
	}

	out, err := Decode(b)
	if err != nil {
		t.Fatalf("decode failed with: %+v", err)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("validate failed with: %+v", err)
	}
	if *out.Tree["3"].Next != "3.1" || *out.Tree["3.1"].Service != "log" {
		t.Errorf("lines differ after decoding: %+v", out.Tree)
	}

	b, err = prog.Encode(FormatYAML)
	if err != nil {
		t.Fatalf("encode failed with: %+v", err)
	}
	m := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		t.Fatalf("yaml is invalid: %+v", err)
	}
	if m["entrypoint"] != "1" {
		t.Errorf("unexpected entrypoint in:\n%s", b)
	}

	if _, err := prog.Encode("toml"); err == nil {
		t.Errorf("expected the unknown format to fail")
	}
}
