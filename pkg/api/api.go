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

const TagYaml = "yaml"
const TagDoc = "doc"
const TagEnum = "enum"

// Note: items beginning with doc: "## title" are top level items that get divided into sections inside api.md.
// Inline sections have no key of their own: their fields are top level keys of the config file.

type API struct {
	General GeneralOptions `yaml:",inline" doc:"## General API\nFollowing are the general settings, at the top level of the config file:\n"`
	Ingest  IngestOptions  `yaml:",inline" doc:"## Ingest API\nFollowing is the supported API format for reading addresses, subnets and ranges:\n"`
	Write   WriteOptions   `yaml:",inline" doc:"## Write API\nFollowing is the supported API format for the command output:\n"`
	Filter  FilterOptions  `yaml:",inline" doc:"## Filter API\nFollowing is the supported API format for the filter command:\n"`
	Inflate InflateOptions `yaml:",inline" doc:"## Inflate API\nFollowing is the supported API format for the inflate command:\n"`
	Metrics MetricsOptions `yaml:"metrics,omitempty" doc:"## Metrics API\nFollowing is the supported API format for the operational metrics server:\n"`
}
