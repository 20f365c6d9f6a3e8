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

package main

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/netobserv/iptool/pkg/api"
)

const header = `
> Note: this file was automatically generated, to update execute "go run ./cmd/apitodoc"

# iptool API

Options of the iptool commands, as read from the config file. Top level keys are the long flag
names (for example max-addresses), and the metrics.* flags form the metrics section.
`

func indentation(level int) string {
	return strings.Repeat(" ", 4*max(level, 0))
}

// iterate writes the yaml name and doc tag of every documented field of data, recursing into
// nested structs, slices, maps and pointers.
func iterate(output io.Writer, data interface{}, indent int) {
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		iterate(output, reflect.Zero(v.Type().Elem()).Interface(), indent+1)
	case reflect.Ptr:
		// a pointer only leads to its element, which is written at the same level
		iterate(output, reflect.Zero(v.Type().Elem()).Interface(), indent)
	case reflect.Struct:
		iterateStruct(output, v, indent)
	}
}

func iterateStruct(output io.Writer, v reflect.Value, indent int) {
	newIndent := indent + 1
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		fieldName, flags, _ := strings.Cut(field.Tag.Get(api.TagYaml), ",")
		inline := strings.Contains(flags, "inline")
		fieldDocTag := field.Tag.Get(api.TagDoc)

		if fieldEnumTag := field.Tag.Get(api.TagEnum); fieldEnumTag != "" {
			enumType := api.GetEnumReflectionTypeByFieldName(fieldEnumTag)
			fmt.Fprintf(output, "%s %s: (enum) %s\n", indentation(newIndent), fieldName, fieldDocTag)
			iterate(output, reflect.Zero(enumType).Interface(), newIndent)
			continue
		}
		switch {
		case fieldDocTag == "":
		case strings.HasPrefix(fieldDocTag, "#") && inline:
			// the fields of an inline section sit next to the section title
			fmt.Fprintf(output, "\n%s\n<pre>\n", fieldDocTag)
			iterate(output, v.Field(i).Interface(), indent-1)
			fmt.Fprint(output, "</pre>")
		case strings.HasPrefix(fieldDocTag, "#"):
			fmt.Fprintf(output, "\n%s\n<pre>\n%s %s:\n", fieldDocTag, indentation(indent), fieldName)
			iterate(output, v.Field(i).Interface(), newIndent)
			fmt.Fprint(output, "</pre>")
		default:
			fmt.Fprintf(output, "%s %s: %s\n", indentation(newIndent), fieldName, fieldDocTag)
			iterate(output, v.Field(i).Interface(), newIndent)
		}
	}
}

func main() {
	output := new(bytes.Buffer)
	fmt.Fprint(output, header)
	iterate(output, api.API{}, 0)
	fmt.Print(output)
}
