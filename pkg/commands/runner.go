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
	"io"

	"github.com/netobserv/iptool/pkg/config"
	"github.com/netobserv/iptool/pkg/ingest"
	"github.com/netobserv/iptool/pkg/operational"
	"github.com/netobserv/iptool/pkg/write"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Runner reads the input, runs one command on it and writes the result.
type Runner struct {
	opts     *config.Options
	ingester *ingest.Ingester
	metrics  *metrics
}

func NewRunner(opts *config.Options, opMetrics *operational.Metrics, stdin io.Reader) *Runner {
	return &Runner{
		opts:     opts,
		ingester: ingest.NewIngester(opMetrics, opts.IngestOptions, stdin),
		metrics:  newMetrics(opMetrics),
	}
}

func (r *Runner) Run(name string, args []string) error {
	log.Debugf("entering Run %s", name)
	cmd, ok := Find(name)
	if !ok {
		return errors.Errorf("undefined command: %s", name)
	}
	timer := r.metrics.CommandDurationTimer(name)
	err := r.run(cmd, args)
	elapsed := timer.ObserveSeconds()
	if err != nil {
		r.metrics.errors.WithLabelValues(name).Inc()
		return errors.Wrap(err, name)
	}
	log.WithFields(log.Fields{"command": name, "elapsed": elapsed}).Debug("command done")
	return nil
}

func (r *Runner) run(cmd Command, args []string) error {
	// validate command options before reading a potentially large input
	if cmd.Name == "filter" {
		if _, err := parseRefs(r.opts.FilterOptions); err != nil {
			return err
		}
	}

	tree, err := r.ingester.Ingest(args)
	if err != nil {
		return err
	}
	values, err := cmd.run(r, tree)
	if err != nil {
		return err
	}

	w, err := write.NewWriter(r.metrics.Metrics, r.opts.OutputOptions())
	if err != nil {
		return err
	}
	err = w.Write(values)
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	return err
}
