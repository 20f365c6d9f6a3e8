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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/netobserv/iptool/pkg/api"
	"github.com/netobserv/iptool/pkg/config"
	"github.com/netobserv/iptool/pkg/operational"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, opts config.Options, name string, args ...string) (string, error) {
	t.Helper()
	opts.Output = filepath.Join(t.TempDir(), "out")
	opMetrics := operational.NewMetricsWithRegistry(nil, prometheus.NewRegistry(), clock.NewMock())
	r := NewRunner(&opts, opMetrics, strings.NewReader(""))
	if err := r.Run(name, args); err != nil {
		return "", err
	}
	b, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	return string(b), nil
}

func lines(text ...string) string {
	return strings.Join(text, "\n") + "\n"
}

func TestList(t *testing.T) {
	var names []string
	for _, c := range List() {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Description)
	}
	assert.Equal(t, []string{"invert", "filter", "inflate", "deflate", "sort"}, names)

	_, ok := Find("inflate")
	assert.True(t, ok)
	_, ok = Find("merge")
	assert.False(t, ok)
}

func TestUndefinedCommand(t *testing.T) {
	_, err := runCommand(t, config.Options{}, "merge", "1.1.1.1")
	require.EqualError(t, err, "undefined command: merge")
}

func TestInvert(t *testing.T) {
	out, err := runCommand(t, config.Options{}, "invert", "10.0.0.0/8")
	require.NoError(t, err)
	assert.Equal(t, lines(
		"0.0.0.0/5",
		"8.0.0.0/7",
		"11.0.0.0/8",
		"12.0.0.0/6",
		"16.0.0.0/4",
		"32.0.0.0/3",
		"64.0.0.0/2",
		"128.0.0.0/1",
	), out)

	out, err = runCommand(t, config.Options{}, "invert", "0.0.0.0/0")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestFilter(t *testing.T) {
	opts := config.Options{FilterOptions: api.FilterOptions{By: []string{"10.0.0.0/8", "192.168.1.0/24"}}}
	out, err := runCommand(t, opts, "filter", "10.1.2.3", "11.0.0.1", "192.168.1.7", "192.168.0.0/16", "10.20.0.0/16")
	require.NoError(t, err)
	// 192.168.0.0/16 overlaps 192.168.1.0/24 but is not contained in it
	assert.Equal(t, lines("10.1.2.3", "10.20.0.0/16"), out)
}

func TestFilterRequiresBy(t *testing.T) {
	_, err := runCommand(t, config.Options{}, "filter", "10.1.2.3")
	require.EqualError(t, err, "filter: --by is required")

	_, err = runCommand(t, config.Options{FilterOptions: api.FilterOptions{By: []string{"10.0.0.0/40"}}}, "filter", "10.1.2.3")
	require.Error(t, err)
}

func TestInflate(t *testing.T) {
	out, err := runCommand(t, config.Options{WriteOptions: api.WriteOptions{Separator: ", "}}, "inflate", "192.168.0.0/30", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1, 192.168.0.0, 192.168.0.1, 192.168.0.2, 192.168.0.3\n", out)
}

func TestInflateLimit(t *testing.T) {
	out, err := runCommand(t, config.Options{InflateOptions: api.InflateOptions{MaxAddresses: 3}}, "inflate", "0.0.0.0/0")
	require.NoError(t, err)
	assert.Equal(t, lines("0.0.0.0", "0.0.0.1", "0.0.0.2"), out)
}

func TestDeflate(t *testing.T) {
	args := make([]string, 0, 256)
	for i := 0; i < 256; i++ {
		args = append(args, "172.16.4."+strconv.Itoa(i))
	}
	args = append(args, "10.0.0.0/25", "10.0.0.128/25", "10.0.1.0/25")
	out, err := runCommand(t, config.Options{WriteOptions: api.WriteOptions{Format: "json"}}, "deflate", args...)
	require.NoError(t, err)
	assert.Equal(t, `["10.0.0.0/24","10.0.1.0/25","172.16.4.0/24"]`+"\n", out)
}

func TestDeflateRange(t *testing.T) {
	out, err := runCommand(t, config.Options{}, "deflate", "10.0.0.1-10.0.0.6")
	require.NoError(t, err)
	assert.Equal(t, lines("10.0.0.1", "10.0.0.2/31", "10.0.0.4/31", "10.0.0.6"), out)
}

func TestSort(t *testing.T) {
	out, err := runCommand(t, config.Options{WriteOptions: api.WriteOptions{Format: "yaml"}}, "sort", "9.9.9.9", "1.1.1.1", "1.1.1.0/24", "9.9.9.9")
	require.NoError(t, err)
	assert.Equal(t, "- 1.1.1.0/24\n- 9.9.9.9\n", out)
}

func TestRunMetrics(t *testing.T) {
	opMetrics := operational.NewMetricsWithRegistry(nil, prometheus.NewRegistry(), clock.NewMock())
	opts := config.Options{WriteOptions: api.WriteOptions{Output: filepath.Join(t.TempDir(), "out")}}
	r := NewRunner(&opts, opMetrics, strings.NewReader(""))

	require.NoError(t, r.Run("inflate", []string{"10.0.0.0/29"}))
	assert.Equal(t, 8.0, testutil.ToFloat64(r.metrics.addresses))

	require.Error(t, r.Run("inflate", []string{"10.0.0.0/33"}))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.errors.WithLabelValues("inflate")))
}
