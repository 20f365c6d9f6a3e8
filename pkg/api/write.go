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

type OutputFormatEnum struct {
	Text string `yaml:"text" doc:"one block or address per line, or joined by the separator when one is set"`
	JSON string `yaml:"json" doc:"a single JSON array of strings"`
	YAML string `yaml:"yaml" doc:"a YAML sequence of strings"`
}

func OutputFormatName(format string) string {
	return GetEnumName(OutputFormatEnum{}, format)
}

type WriteOptions struct {
	Output    string `yaml:"output,omitempty" json:"output,omitempty" doc:"path of the output file; standard output when empty"`
	Format    string `yaml:"format,omitempty" json:"format,omitempty" enum:"OutputFormatEnum" doc:"output format, one of the following:"`
	Separator string `yaml:"separator,omitempty" json:"separator,omitempty" doc:"separator written between values in text format (default: new line)"`
}

func (w *WriteOptions) SetDefaults() {
	if w.Format == "" {
		w.Format = OutputFormatName("Text")
	}
	if w.Separator == "" {
		w.Separator = "\n"
	}
}
