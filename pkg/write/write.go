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

package write

import (
	"bufio"
	"io"
	"iter"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/iptool/pkg/api"
	"github.com/netobserv/iptool/pkg/operational"
	"github.com/netobserv/iptool/pkg/utils"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// ErrInterrupted is returned when an exit signal stops the output before the end.
var ErrInterrupted = errors.New("interrupted")

var valuesWritten = operational.DefineMetric(
	"write_values",
	"Number of addresses and subnets written",
	operational.TypeCounter,
	"format",
)

type Writer struct {
	out       *bufio.Writer
	closer    io.Closer
	format    string
	separator string
	exit      <-chan struct{}
	written   prometheus.Counter
}

// NewWriter writes to params.Output, or to standard output when it is empty.
func NewWriter(opMetrics *operational.Metrics, params api.WriteOptions) (*Writer, error) {
	log.Debugf("entering NewWriter")
	params.SetDefaults()

	var out io.Writer = os.Stdout
	var closer io.Closer
	if params.Output != "" {
		log.Infof("output file name = %s", params.Output)
		f, err := os.Create(params.Output)
		if err != nil {
			return nil, errors.Wrap(err, "output file error")
		}
		out, closer = f, f
	}
	return &Writer{
		out:       bufio.NewWriter(out),
		closer:    closer,
		format:    params.Format,
		separator: params.Separator,
		exit:      utils.ExitChannel(),
		written:   opMetrics.NewCounter(&valuesWritten, params.Format),
	}, nil
}

// Write renders every value of the sequence and flushes the output.
func (w *Writer) Write(values iter.Seq[string]) error {
	log.Debugf("entering Writer Write, format = %s", w.format)
	var err error
	switch w.format {
	case api.OutputFormatName("JSON"):
		err = w.writeJSON(values)
	case api.OutputFormatName("YAML"):
		err = w.writeYAML(values)
	case api.OutputFormatName("Text"):
		err = w.writeText(values)
	default:
		err = errors.Errorf("unknown output format %q", w.format)
	}
	if flushErr := w.out.Flush(); err == nil && flushErr != nil {
		err = errors.Wrap(flushErr, "flushing output")
	}
	return err
}

func (w *Writer) WriteStrings(values []string) error {
	return w.Write(func(yield func(string) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	})
}

func (w *Writer) interrupted() bool {
	if utils.IsClosed(w.exit) {
		log.Warn("exit signal received, output is incomplete")
		return true
	}
	return false
}

func (w *Writer) writeText(values iter.Seq[string]) error {
	first := true
	for v := range values {
		if w.interrupted() {
			return ErrInterrupted
		}
		if !first {
			if _, err := w.out.WriteString(w.separator); err != nil {
				return err
			}
		}
		if _, err := w.out.WriteString(v); err != nil {
			return err
		}
		w.written.Inc()
		first = false
	}
	if !first {
		if _, err := w.out.WriteString("\n"); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeJSON(values iter.Seq[string]) error {
	stream := jsoniter.NewStream(jsoniter.ConfigCompatibleWithStandardLibrary, w.out, 4096)
	stream.WriteArrayStart()
	first := true
	for v := range values {
		if w.interrupted() {
			return ErrInterrupted
		}
		if !first {
			stream.WriteMore()
		}
		stream.WriteString(v)
		w.written.Inc()
		first = false
		if stream.Buffered() > 4096 {
			if err := stream.Flush(); err != nil {
				return err
			}
		}
	}
	stream.WriteArrayEnd()
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

func (w *Writer) writeYAML(values iter.Seq[string]) error {
	empty := true
	for v := range values {
		if w.interrupted() {
			return ErrInterrupted
		}
		// one single-item sequence at a time keeps large outputs streaming
		b, err := yaml.Marshal([]string{v})
		if err != nil {
			return err
		}
		if _, err := w.out.Write(b); err != nil {
			return err
		}
		w.written.Inc()
		empty = false
	}
	if empty {
		_, err := w.out.WriteString("[]\n")
		return err
	}
	return nil
}

func (w *Writer) Close() error {
	if err := w.out.Flush(); err != nil {
		return err
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
