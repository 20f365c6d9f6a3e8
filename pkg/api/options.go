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

package api

type GeneralOptions struct {
	LogLevel string `yaml:"log-level,omitempty" json:"log-level,omitempty" doc:"log level: debug, info, warning or error (default: error)"`
}

type IngestOptions struct {
	Strict bool `yaml:"strict,omitempty" json:"strict,omitempty" doc:"reject subnets with host bits set (e.g. 10.0.0.1/8) instead of masking them"`
}

type FilterOptions struct {
	By []string `yaml:"by,omitempty" json:"by,omitempty" doc:"reference subnets; an input block is kept when one of them contains it"`
}

type InflateOptions struct {
	MaxAddresses uint64 `yaml:"max-addresses,omitempty" json:"max-addresses,omitempty" doc:"stop after emitting this many addresses (default: 0, unlimited)"`
}

type MetricsOptions struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty" doc:"address to expose /metrics on (default: 0.0.0.0)"`
	Port    int    `yaml:"port,omitempty" json:"port,omitempty" doc:"port to expose /metrics on; 0 disables the server"`
	Prefix  string `yaml:"prefix,omitempty" json:"prefix,omitempty" doc:"prefix for the names of the operational metrics (default: iptool_)"`
}
