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

package prometheus

import (
	"fmt"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/netobserv/iptool/pkg/api"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	plog       = logrus.WithField("component", "prometheus")
	maybePanic = plog.Fatalf
)

const maxGoroutines = 1000

// Server exposes /metrics, plus /live and /ready health probes.
type Server struct {
	*http.Server
	health healthcheck.Handler
}

// AddReadinessCheck registers a check answered on /ready.
func (s *Server) AddReadinessCheck(name string, check healthcheck.Check) {
	s.health.AddReadinessCheck(name, check)
}

// InitializePrometheus starts the metrics server in the background. It returns nil when
// the port is 0, which disables the server.
func InitializePrometheus(settings *api.MetricsOptions) *Server {
	if settings.Port == 0 {
		plog.Debug("metrics server disabled")
		return nil
	}
	// if value of address is empty, then by default it will take 0.0.0.0
	addr := fmt.Sprintf("%s:%v", settings.Address, settings.Port)
	plog.Infof("StartServerAsync: addr = %s", addr)

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(maxGoroutines))

	mux := http.NewServeMux()
	// The Handler function provides a default handler to expose metrics
	// via an HTTP server. "/metrics" is the usual endpoint for that.
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/live", health)
	mux.Handle("/ready", health)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			maybePanic("error in http.ListenAndServe: %v", err)
		}
	}()

	return &Server{Server: srv, health: health}
}
