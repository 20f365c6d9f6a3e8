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

package commands

import (
	"github.com/netobserv/iptool/pkg/operational"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	blocksEmitted = operational.DefineMetric(
		"command_blocks",
		"Number of subnets produced by a command",
		operational.TypeCounter,
		"command",
	)
	addressesEnumerated = operational.DefineMetric(
		"inflate_addresses",
		"Number of host addresses enumerated by inflate",
		operational.TypeCounter,
	)
	commandErrors = operational.DefineMetric(
		"command_errors",
		"Counter of failed commands",
		operational.TypeCounter,
		"command",
	)
)

type metrics struct {
	*operational.Metrics
	blocks    *prometheus.CounterVec
	addresses prometheus.Counter
	errors    *prometheus.CounterVec
}

func newMetrics(opMetrics *operational.Metrics) *metrics {
	return &metrics{
		Metrics:   opMetrics,
		blocks:    opMetrics.NewCounterVec(&blocksEmitted),
		addresses: opMetrics.NewCounter(&addressesEnumerated),
		errors:    opMetrics.NewCounterVec(&commandErrors),
	}
}
