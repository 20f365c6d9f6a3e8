/*
 * Copyright (C) 2022 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package operational

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/netobserv/iptool/pkg/api"
	"github.com/netobserv/iptool/pkg/config"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type MetricType string

const (
	TypeCounter   MetricType = "counter"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

type MetricDefinition struct {
	Name   string
	Help   string
	Type   MetricType
	Labels []string
}

var (
	allMetrics   []MetricDefinition
	allMetricsMu sync.Mutex
)

// DefineMetric declares a metric and records it for the documentation. It does not register anything.
func DefineMetric(name, help string, t MetricType, labels ...string) MetricDefinition {
	def := MetricDefinition{
		Name:   name,
		Help:   help,
		Type:   t,
		Labels: labels,
	}
	allMetricsMu.Lock()
	allMetrics = append(allMetrics, def)
	allMetricsMu.Unlock()
	return def
}

var commandDurationHistogram = DefineMetric(
	"command_duration_seconds",
	"Time spent running a command, from reading the input to flushing the output",
	TypeHistogram,
	"command",
)

type Metrics struct {
	settings   api.MetricsOptions
	registerer prometheus.Registerer
	clock      clock.Clock

	mutex           sync.Mutex
	commandDuration *prometheus.HistogramVec
}

// NewMetrics creates metrics registered on the default prometheus registry.
// A nil settings uses the default prefix.
func NewMetrics(settings *api.MetricsOptions) *Metrics {
	return NewMetricsWithRegistry(settings, prometheus.DefaultRegisterer, clock.New())
}

func NewMetricsWithRegistry(settings *api.MetricsOptions, registerer prometheus.Registerer, clk clock.Clock) *Metrics {
	s := api.MetricsOptions{}
	if settings != nil {
		s = *settings
	}
	if s.Prefix == "" {
		s.Prefix = config.DefaultMetricsPrefix
	}
	return &Metrics{
		settings:   s,
		registerer: registerer,
		clock:      clk,
	}
}

func (o *Metrics) Clock() clock.Clock {
	return o.clock
}

func (o *Metrics) register(c prometheus.Collector, name string) prometheus.Collector {
	err := o.registerer.Register(c)
	if err != nil {
		var castErr prometheus.AlreadyRegisteredError
		if errors.As(err, &castErr) {
			return castErr.ExistingCollector
		}
		log.Errorf("metrics registration error [%s]: %v", name, err)
	}
	return c
}

func (o *Metrics) fullName(def *MetricDefinition) string {
	return o.settings.Prefix + def.Name
}

func (o *Metrics) NewCounter(def *MetricDefinition, labels ...string) prometheus.Counter {
	return o.NewCounterVec(def).WithLabelValues(labels...)
}

func (o *Metrics) NewCounterVec(def *MetricDefinition) *prometheus.CounterVec {
	if def.Type != TypeCounter {
		log.Panicf("wrong metric type %s for %s, expected %s", def.Type, def.Name, TypeCounter)
	}
	fullName := o.fullName(def)
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: fullName, Help: def.Help}, def.Labels)
	return o.register(c, fullName).(*prometheus.CounterVec)
}

func (o *Metrics) NewGauge(def *MetricDefinition, labels ...string) prometheus.Gauge {
	if def.Type != TypeGauge {
		log.Panicf("wrong metric type %s for %s, expected %s", def.Type, def.Name, TypeGauge)
	}
	fullName := o.fullName(def)
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: fullName, Help: def.Help}, def.Labels)
	return o.register(g, fullName).(*prometheus.GaugeVec).WithLabelValues(labels...)
}

func (o *Metrics) NewHistogramVec(def *MetricDefinition, buckets []float64) *prometheus.HistogramVec {
	if def.Type != TypeHistogram {
		log.Panicf("wrong metric type %s for %s, expected %s", def.Type, def.Name, TypeHistogram)
	}
	fullName := o.fullName(def)
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: fullName, Help: def.Help, Buckets: buckets}, def.Labels)
	return o.register(h, fullName).(*prometheus.HistogramVec)
}

func (o *Metrics) NewHistogram(def *MetricDefinition, buckets []float64, labels ...string) prometheus.Observer {
	return o.NewHistogramVec(def, buckets).WithLabelValues(labels...)
}

func (o *Metrics) getOrCreateCommandDurationHisto() *prometheus.HistogramVec {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.commandDuration == nil {
		o.commandDuration = o.NewHistogramVec(&commandDurationHistogram, []float64{.001, .01, .1, 1, 10, 100})
	}
	return o.commandDuration
}

// CommandDurationTimer returns a started timer feeding the duration histogram of the given command.
func (o *Metrics) CommandDurationTimer(command string) *Timer {
	t := NewTimer(o.clock, o.getOrCreateCommandDurationHisto().WithLabelValues(command))
	t.Start()
	return t
}

func GetDocumentation() string {
	allMetricsMu.Lock()
	defs := make([]MetricDefinition, len(allMetrics))
	copy(defs, allMetrics)
	allMetricsMu.Unlock()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	doc := ""
	for _, opts := range defs {
		var labels string
		if len(opts.Labels) > 0 {
			labels = strings.Join(opts.Labels, ", ")
		} else {
			labels = "none"
		}
		doc += fmt.Sprintf(
			`
### %s
| **Name** | %s | 
|:---|:---|
| **Description** | %s | 
| **Type** | %s | 
| **Labels** | %s | 

`,
			opts.Name,
			config.DefaultMetricsPrefix+opts.Name,
			opts.Help,
			opts.Type,
			labels,
		)
	}

	return doc
}
