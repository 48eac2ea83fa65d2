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

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	cliUtil "github.com/purpleidea/storyc/cli/util"
	"github.com/purpleidea/storyc/lang"
	"github.com/purpleidea/storyc/lang/ir"
	"github.com/purpleidea/storyc/prometheus"
	"github.com/purpleidea/storyc/util"
	"github.com/purpleidea/storyc/util/errwrap"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// CompileArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the flags for the `compile` subcommand.
type CompileArgs struct {
	cliUtil.CompileArgs // embedded config (can't be a pointer) https://github.com/alexflint/go-arg/issues/240
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not. This particular Run compiles every file. A failing file does not
// stop the others, all the failures are returned together.
func (obj *CompileArgs) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	files := util.StrRemoveDuplicatesInList(obj.Files) // each output is written once
	if len(files) == 0 {
		return false, cliUtil.ErrNoInputs
	}

	Logf := func(format string, v ...interface{}) {
		data.Flags.Logf("compile: "+format, v...)
	}

	config, err := readConfig(data.Fs, obj.Config)
	if err != nil {
		return false, err
	}
	if obj.Strict {
		config.Strict = true
	}

	format := ir.Format(obj.Format)
	if format != ir.FormatJSON && format != ir.FormatYAML {
		return false, fmt.Errorf("unknown output format: %s", obj.Format)
	}

	outputs, err := OutputPaths(files, obj.Out, format)
	if err != nil {
		return false, err
	}

	var metrics *prometheus.Prometheus
	if obj.MetricsTextfile != "" {
		metrics = &prometheus.Prometheus{}
		if err := metrics.Init(); err != nil {
			return false, err
		}
	}

	compiler := &lang.Compiler{
		Config:  config,
		Metrics: metrics,
		Debug:   data.Flags.Debug,
		Logf:    Logf,
	}
	if err := compiler.Init(); err != nil {
		return false, err
	}

	jobs := obj.Jobs
	if jobs < 1 {
		jobs = 1
	}
	errs := make([]error, len(files)) // one slot per file keeps the order
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err // cancelled
			}
			if err := compile(data.Fs, compiler, file, outputs[i], format, Logf); err != nil {
				errs[i] = errwrap.Wrapf(err, "could not compile %s", file)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	var reterr error
	for _, err := range errs {
		reterr = errwrap.Append(reterr, err)
	}

	if data.Flags.Debug && obj.Out != "" {
		if tree, err := util.FsTree(data.Fs, obj.Out); err == nil {
			Logf("output tree:\n%s", tree)
		}
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(obj.MetricsTextfile); err != nil {
			reterr = errwrap.Append(reterr, err)
		}
	}
	return true, reterr
}

// compile compiles one file and writes the program to out.
func compile(fs afero.Fs, compiler *lang.Compiler, file, out string, format ir.Format, logf func(format string, v ...interface{})) error {
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return err
	}
	result, err := compiler.Compile(file, data)
	if err != nil {
		return err
	}
	for _, x := range result.Deprecations {
		logf("%s: warning: %s", file, x)
	}

	b, err := result.Program.Encode(format)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, out, b, 0644); err != nil {
		return err
	}
	logf("%s: wrote %d lines to %s", file, len(result.Program.Tree), out)
	return nil
}

// OutputPath returns where the program of an input file is written. It keeps
// the base name of the input, with the extension of the format.
func OutputPath(file, dir string, format ir.Format) string {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + "." + string(format)
	if dir == "" {
		dir = filepath.Dir(file)
	}
	return filepath.Join(dir, base)
}

// OutputPaths returns the output of each file, in the same order. Two files
// can't share an output, and no output may replace one of the files.
func OutputPaths(files []string, dir string, format ir.Format) ([]string, error) {
	inputs := make(map[string]string)
	for _, file := range files {
		inputs[filepath.Clean(file)] = file
	}
	seen := make(map[string]string) // output -> file
	outputs := []string{}
	for _, file := range files {
		out := OutputPath(file, dir, format)
		if prev, exists := seen[out]; exists {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, file, out)
		}
		if _, exists := inputs[filepath.Clean(out)]; exists {
			return nil, fmt.Errorf("the output of %s would replace the input %s", file, out)
		}
		seen[out] = file
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// readConfig reads the config file, or returns the default one if there is no
// file.
func readConfig(fs afero.Fs, filename string) (*lang.Config, error) {
	if filename == "" {
		return lang.DefaultConfig(), nil
	}
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not read config")
	}
	return lang.ParseConfig(data)
}
