// Copyright 2024 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics recorded while normalizing batches.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ResultsTotal         *prometheus.CounterVec
	EventPanicsTotal     *prometheus.CounterVec
	VerificationFailures *prometheus.CounterVec
	BatchDuration        *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ResultsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authnorm",
				Name:      "results_total",
				Help:      "Total number of normalized events",
			},
			[]string{"plugin", "valid"},
		),
		EventPanicsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authnorm",
				Name:      "event_panics_total",
				Help:      "Total number of events whose normalization panicked",
			},
			[]string{"plugin"},
		),
		VerificationFailures: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authnorm",
				Name:      "verification_failures_total",
				Help:      "Total number of valid results downgraded by result verification",
			},
			[]string{"plugin"},
		),
		BatchDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "authnorm",
				Name:      "batch_duration_seconds",
				Help:      "Time taken to normalize a batch",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"plugin"},
		),
	}
}

func (m *Metrics) ObserveResult(plugin string, valid bool) {
	if m == nil {
		return
	}
	m.ResultsTotal.WithLabelValues(plugin, strconv.FormatBool(valid)).Inc()
}

func (m *Metrics) ObservePanic(plugin string) {
	if m == nil {
		return
	}
	m.EventPanicsTotal.WithLabelValues(plugin).Inc()
}

func (m *Metrics) ObserveVerificationFailure(plugin string) {
	if m == nil {
		return
	}
	m.VerificationFailures.WithLabelValues(plugin).Inc()
}

func (m *Metrics) ObserveBatch(plugin string, d time.Duration) {
	if m == nil {
		return
	}
	m.BatchDuration.WithLabelValues(plugin).Observe(d.Seconds())
}
