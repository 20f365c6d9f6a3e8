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

package config

import (
	"strings"

	ms "github.com/mitchellh/mapstructure"
	"github.com/netobserv/iptool/pkg/api"
	"github.com/netobserv/iptool/pkg/cidr"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMetricsAddress = "0.0.0.0"
	DefaultMetricsPrefix  = "iptool_"
)

// Options holds every setting that can come from a flag, the config file or the environment.
// Its layout is api.API: the yaml names are the flag names, so a config file reads like a list
// of long flags, with the metrics server settings in their own section.
type Options struct {
	api.GeneralOptions `yaml:",inline"`
	api.IngestOptions  `yaml:",inline"`
	api.WriteOptions   `yaml:",inline"`
	api.FilterOptions  `yaml:",inline"`
	api.InflateOptions `yaml:",inline"`
	Metrics            api.MetricsOptions `yaml:"metrics,omitempty" json:"metrics,omitempty"`
}

// Decode reads a settings map, as returned by viper, into Options.
// Unknown keys are an error so that typos in a config file do not go unnoticed.
func Decode(settings map[string]interface{}) (*Options, error) {
	logrus.Debugf("entering config.Decode")
	opts := Options{}
	decoder, err := ms.NewDecoder(&ms.DecoderConfig{
		TagName:          api.TagYaml,
		Squash:           true,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &opts,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	logrus.Debugf("decoded options = %+v", opts)
	return &opts, nil
}

// Validate checks the values that cobra cannot check by itself.
func (o *Options) Validate() error {
	if o.Format != "" && !isOutputFormat(o.Format) {
		return errors.Errorf("unknown output format %q, expected one of %s",
			o.Format, strings.Join(api.GetEnumNames(api.OutputFormatEnum{}), ", "))
	}
	for _, by := range o.By {
		if _, err := cidr.Parse(by); err != nil {
			return errors.Wrap(err, "invalid --by subnet")
		}
	}
	if o.Metrics.Port < 0 || o.Metrics.Port > 65535 {
		return errors.Errorf("invalid metrics port %d", o.Metrics.Port)
	}
	return nil
}

func isOutputFormat(format string) bool {
	for _, name := range api.GetEnumNames(api.OutputFormatEnum{}) {
		if name == format {
			return true
		}
	}
	return false
}

// OutputOptions returns the write options with their defaults applied.
func (o *Options) OutputOptions() api.WriteOptions {
	w := o.WriteOptions
	w.SetDefaults()
	return w
}

func (o *Options) MetricsOptions() api.MetricsOptions {
	m := o.Metrics
	if m.Address == "" {
		m.Address = DefaultMetricsAddress
	}
	if m.Prefix == "" {
		m.Prefix = DefaultMetricsPrefix
	}
	return m
}
