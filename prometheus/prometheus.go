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

// Package prometheus provides the metrics of the compiler. They are kept in
// their own registry so that they can be dumped to a textfile for the node
// exporter at the end of a run.
package prometheus

import (
	"strconv"

	"github.com/purpleidea/storyc/util/errwrap"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels of the compile counter.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Prometheus is the struct that contains the compile metrics. Run Init() on
// it. The update methods are safe for concurrent use.
type Prometheus struct {
	// Registry is where the metrics get registered. A new one is used if
	// this is nil.
	Registry *prometheus.Registry

	compileTotal            *prometheus.CounterVec // total of compiles by result
	errorTotal              *prometheus.CounterVec // total of compile errors by kind
	deprecationTotal        prometheus.Counter     // total of deprecated usages
	lines                   prometheus.Histogram   // number of lines per program
	processStartTimeSeconds prometheus.Gauge       // process start time in seconds since unix epoch
}

// Init creates and registers the metrics.
func (obj *Prometheus) Init() error {
	if obj.Registry == nil {
		obj.Registry = prometheus.NewRegistry()
	}

	obj.compileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyc_compile_total",
			Help: "Number of files that were compiled.",
		},
		// result: success or failure
		// strict: if deprecations were promoted to errors
		[]string{"result", "strict"},
	)

	obj.errorTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyc_errors_total",
			Help: "Number of compile errors.",
		},
		// kind: the error code, eg: var_not_defined, or "other"
		[]string{"kind"},
	)

	obj.deprecationTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storyc_deprecations_total",
			Help: "Number of deprecated usages that were found.",
		},
	)

	obj.lines = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storyc_program_lines",
			Help:    "Number of lines of the emitted programs.",
			Buckets: prometheus.ExponentialBuckets(8, 4, 6),
		},
	)

	obj.processStartTimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storyc_process_start_time_seconds",
			Help: "Start time of the process since unix epoch in seconds.",
		},
	)

	for _, c := range []prometheus.Collector{obj.compileTotal, obj.errorTotal, obj.deprecationTotal, obj.lines, obj.processStartTimeSeconds} {
		if err := obj.Registry.Register(c); err != nil {
			return errwrap.Wrapf(err, "could not register metric")
		}
	}
	// directly set the processStartTimeSeconds
	obj.processStartTimeSeconds.SetToCurrentTime()

	return nil
}

// UpdateCompileTotal counts one compile.
func (obj *Prometheus) UpdateCompileTotal(result string, strict bool) {
	labels := prometheus.Labels{"result": result, "strict": strconv.FormatBool(strict)}
	obj.compileTotal.With(labels).Inc()
}

// UpdateErrorTotal counts one error of the given kind.
func (obj *Prometheus) UpdateErrorTotal(kind string) {
	obj.errorTotal.With(prometheus.Labels{"kind": kind}).Inc()
}

// AddDeprecations counts n deprecated usages.
func (obj *Prometheus) AddDeprecations(n int) {
	obj.deprecationTotal.Add(float64(n))
}

// ObserveLines records the size of an emitted program.
func (obj *Prometheus) ObserveLines(n int) {
	obj.lines.Observe(float64(n))
}

// WriteTextfile dumps every metric to a file in the text format.
func (obj *Prometheus) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, obj.Registry); err != nil {
		return errwrap.Wrapf(err, "could not write metrics")
	}
	return nil
}
