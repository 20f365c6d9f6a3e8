/*
 * Copyright (C) 2025 IBM, Inc.
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

package ingest

import (
	"github.com/netobserv/iptool/pkg/operational"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	tokensIngested = operational.DefineMetric(
		"ingest_tokens",
		"Number of addresses, subnets and ranges read",
		operational.TypeCounter,
		"source",
	)
	ingestErrors = operational.DefineMetric(
		"ingest_errors",
		"Counter of errors while reading the input",
		operational.TypeCounter,
		"source", "code",
	)
	subnetsStored = operational.DefineMetric(
		"ingest_subnets_stored",
		"Number of subnets in the set after reading the input",
		operational.TypeGauge,
	)
)

type metrics struct {
	tokens  *prometheus.CounterVec
	errors  *prometheus.CounterVec
	subnets prometheus.Gauge
}

func newMetrics(opMetrics *operational.Metrics) *metrics {
	return &metrics{
		tokens:  opMetrics.NewCounterVec(&tokensIngested),
		errors:  opMetrics.NewCounterVec(&ingestErrors),
		subnets: opMetrics.NewGauge(&subnetsStored),
	}
}

// Increment error counter
// `code` should be a short constant string, never the offending input.
func (m *metrics) error(source, code string) {
	m.errors.WithLabelValues(source, code).Inc()
}
