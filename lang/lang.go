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

// Package lang is the compiler of the language. It runs the passes over the
// parse tree handed over by the parser: lowering, type resolution and code
// generation.
package lang

import (
	"fmt"
	"strings"

	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/codegen"
	"github.com/purpleidea/storyc/lang/funcs"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/interpolate"
	"github.com/purpleidea/storyc/lang/ir"
	"github.com/purpleidea/storyc/lang/lowering"
	"github.com/purpleidea/storyc/lang/printer"
	"github.com/purpleidea/storyc/lang/semantics"
	"github.com/purpleidea/storyc/lang/tree"
	"github.com/purpleidea/storyc/prometheus"
	"github.com/purpleidea/storyc/util/errwrap"

	"github.com/sanity-io/litter"
)

// Compiler is the main compiler object. Run Init() on it once, after which
// Compile may be called concurrently.
type Compiler struct {
	// Config is the configuration. The default is used if this is nil.
	Config *Config

	// Parser parses the code segments of string templates. The hil based
	// parser is used if this is nil.
	Parser interfaces.FragmentParser

	// Printer displays the lowered programs in debug mode.
	Printer interfaces.Printer

	// Metrics are updated after every compile if this is set.
	Metrics *prometheus.Prometheus

	Debug bool
	Logf  func(format string, v ...interface{})

	mutations *funcs.MutationTable
}

// Result is the output of a successful compile.
type Result struct {
	Program *ir.Program

	// Deprecations are the non fatal warnings of the compile.
	Deprecations []*interfaces.Deprecation
}

// Init validates the configuration and builds the mutation table.
func (obj *Compiler) Init() error {
	if obj.Config == nil {
		obj.Config = DefaultConfig()
	}
	if obj.Config.Debug {
		obj.Debug = true
	}
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {}
	}
	if obj.Parser == nil {
		obj.Parser = &interpolate.Parser{
			Debug: obj.Debug,
			Logf: func(format string, v ...interface{}) {
				obj.Logf("interpolate: "+format, v...)
			},
		}
	}
	if obj.Printer == nil {
		obj.Printer = &printer.Printer{Lines: true}
	}
	if err := obj.Config.Validate(); err != nil {
		return errwrap.Wrapf(err, "invalid config")
	}

	mutations, err := obj.Config.MutationTable()
	if err != nil {
		return err
	}
	obj.mutations = mutations
	return nil
}

// Compile decodes the tree stored in data and compiles it. The format of the
// tree is guessed from the filename.
func (obj *Compiler) Compile(filename string, data []byte) (*Result, error) {
	format, err := tree.FormatOf(filename)
	if err != nil {
		return nil, err
	}
	root, err := tree.Decode(data, format)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not decode %s", filename)
	}
	return obj.CompileTree(filename, root)
}

// CompileTree compiles a decoded tree. Each call uses its own passes, so it's
// safe to run many of them at the same time.
func (obj *Compiler) CompileTree(filename string, root *tree.Node) (*Result, error) {
	if obj.mutations == nil {
		return nil, fmt.Errorf("the compiler was not initialized")
	}
	result, err := obj.compile(filename, root)
	obj.update(result, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (obj *Compiler) compile(filename string, root *tree.Node) (*Result, error) {
	logf := func(prefix string) func(format string, v ...interface{}) {
		return func(format string, v ...interface{}) {
			obj.Logf(prefix+": "+format, v...)
		}
	}
	data := &interfaces.Data{
		Filename: filename,
		Debug:    obj.Debug,
		Logf:     logf("ast"),
	}

	obj.Logf("building...")
	prog, err := ast.Build(root, data)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not build AST")
	}
	if obj.Debug {
		obj.Logf("behold, the AST: %s", litter.Sdump(prog))
	}

	obj.Logf("lowering...")
	lower := &lowering.Lowering{
		Parser: obj.Parser,
		Data:   data,
		Debug:  obj.Debug,
		Logf:   logf("lowering"),
	}
	if err := lower.Lower(prog); err != nil {
		return nil, errwrap.Wrapf(err, "could not lower")
	}
	if obj.Debug {
		obj.Logf("lowered:\n%s", obj.Printer.Print(prog))
	}

	obj.Logf("resolving types...")
	resolver := &semantics.TypeResolver{
		Mutations: obj.mutations,
		Debug:     obj.Debug,
		Logf:      logf("semantics"),
	}
	if err := resolver.Resolve(prog); err != nil {
		return nil, errwrap.Wrapf(err, "could not resolve types")
	}
	if obj.Debug {
		obj.Logf("functions: %s", strings.Join(resolver.Functions().Names(), ", "))
	}

	deprecations := resolver.Deprecations()
	for _, x := range deprecations {
		if obj.Config.Strict {
			return nil, errwrap.Wrapf(x.AsError(), "strict mode")
		}
		obj.Logf("warning: %s", x)
	}

	obj.Logf("generating...")
	lines := &codegen.Lines{
		Version: obj.Config.Version,
		Debug:   obj.Debug,
		Logf:    logf("codegen"),
	}
	program, err := lines.Generate(prog)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not generate")
	}
	if err := program.Validate(); err != nil {
		return nil, errwrap.Wrapf(err, "generated an invalid program")
	}
	if obj.Debug {
		obj.Logf("behold, the program: %s", litter.Sdump(program))
	}

	return &Result{
		Program:      program,
		Deprecations: deprecations,
	}, nil
}

// update records the outcome of a compile in the metrics.
func (obj *Compiler) update(result *Result, err error) {
	if obj.Metrics == nil {
		return
	}
	if err != nil {
		obj.Metrics.UpdateCompileTotal(prometheus.ResultFailure, obj.Config.Strict)
		kind := "other"
		if k, ok := interfaces.KindOf(err); ok {
			kind = k.Code()
		}
		obj.Metrics.UpdateErrorTotal(kind)
		return
	}
	obj.Metrics.UpdateCompileTotal(prometheus.ResultSuccess, obj.Config.Strict)
	obj.Metrics.AddDeprecations(len(result.Deprecations))
	obj.Metrics.ObserveLines(len(result.Program.Tree))
}
