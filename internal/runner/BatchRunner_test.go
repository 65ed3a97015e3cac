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

package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/jackbister/authnorm/internal/config"
	"github.com/jackbister/authnorm/internal/metrics"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/jackbister/authnorm/pkg/authnorm/normalize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRunner(t *testing.T, workers int, verify bool) (*BatchRunner, *metrics.Metrics) {
	t.Helper()
	cfg := config.Default()
	cfg.Workers = workers
	cfg.VerifyResults = verify
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return NewBatchRunner(cfg, m, slog.Default()), m
}

func bmoBatch(n int) events.Batch {
	b := events.Batch{Events: make([]events.RawEvent, n)}
	for i := range b.Events {
		if i%3 == 0 {
			b.Events[i] = events.NewRawEvent([]byte(fmt.Sprintf(`{"utctimestamp":"2016-01-01T00:00:00Z","summary":"failed login of user%d from 10.0.0.%d"}`, i, i%250)))
		} else {
			b.Events[i] = events.NewRawEvent([]byte(fmt.Sprintf(`{"utctimestamp":"2016-01-01T00:00:00Z","summary":"successful login of user%d from 10.0.0.%d"}`, i, i%250)))
		}
	}
	return b
}

func TestRunPreservesOrder(t *testing.T) {
	for _, workers := range []int{1, 4, 64} {
		br, _ := newRunner(t, workers, false)
		batch := bmoBatch(500)
		rb, err := br.Run(context.Background(), normalize.Bmo, batch)
		require.NoError(t, err)
		require.Len(t, rb.Results, 500)
		for i, res := range rb.Results {
			assert.Equal(t, "bmo", res.Name)
			if i%3 == 0 {
				assert.False(t, res.Valid, i)
			} else {
				assert.True(t, res.Valid, i)
				assert.Equal(t, fmt.Sprintf("user%d", i), res.Principal)
			}
		}
	}
}

func TestRunEmptyBatch(t *testing.T) {
	br, _ := newRunner(t, 4, false)
	rb, err := br.Run(context.Background(), normalize.Duo, events.Batch{})
	require.NoError(t, err)
	assert.NotNil(t, rb.Results)
	assert.Empty(t, rb.Results)
}

func TestPanicIsIsolatedToItsEvent(t *testing.T) {
	br, m := newRunner(t, 4, false)
	br.normalizeFunc = func(v normalize.Variant, evt events.RawEvent) events.Result {
		if strings.Contains(string(evt.Bytes()), "boom") {
			panic("boom")
		}
		return normalize.Normalize(v, evt)
	}
	batch := events.Batch{Events: []events.RawEvent{
		events.NewRawEvent([]byte(`{"utctimestamp":"t","summary":"successful login of alice from 10.0.0.5"}`)),
		events.NewRawEvent([]byte(`{"summary":"boom"}`)),
		events.NewRawEvent([]byte(`{"utctimestamp":"t","summary":"successful login of bob from 10.0.0.6"}`)),
	}}
	rb, err := br.Run(context.Background(), normalize.Bmo, batch)
	require.NoError(t, err)
	require.Len(t, rb.Results, 3)
	assert.True(t, rb.Results[0].Valid)
	assert.Equal(t, events.Result{Name: "bmo"}, rb.Results[1])
	assert.True(t, rb.Results[2].Valid)
	assert.Equal(t, "bob", rb.Results[2].Principal)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventPanicsTotal.WithLabelValues("bmo")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResultsTotal.WithLabelValues("bmo", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResultsTotal.WithLabelValues("bmo", "false")))
}

func TestVerifyDowngradesUncheckableResults(t *testing.T) {
	batch := events.Batch{Events: []events.RawEvent{
		events.NewRawEvent([]byte(`{"utctimestamp":"2016-01-01T00:00:00Z","summary":"successful login of alice from somewhere"}`)),
		events.NewRawEvent([]byte(`{"utctimestamp":"2016-01-01T00:00:00Z","summary":"successful login of bob from 203.0.113.6"}`)),
		events.NewRawEvent([]byte(`{"utctimestamp":"2016-01-01T00:00:00Z","summary":"successful login of carol from 10.0.0.7"}`)),
		events.NewRawEvent([]byte(`{"utctimestamp":"2016-01-01T00:00:00Z","summary":"successful login of dave from 192.168.4.2"}`)),
	}}

	br, _ := newRunner(t, 2, false)
	rb, err := br.Run(context.Background(), normalize.Bmo, batch)
	require.NoError(t, err)
	for _, res := range rb.Results {
		assert.True(t, res.Valid)
	}

	br, m := newRunner(t, 2, true)
	rb, err = br.Run(context.Background(), normalize.Bmo, batch)
	require.NoError(t, err)
	assert.False(t, rb.Results[0].Valid)
	assert.True(t, rb.Results[1].Valid)
	assert.False(t, rb.Results[2].Valid)
	assert.Equal(t, "carol", rb.Results[2].Principal)
	assert.False(t, rb.Results[3].Valid)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.VerificationFailures.WithLabelValues("bmo")))
}

func TestRunCancelled(t *testing.T) {
	br, _ := newRunner(t, 2, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := br.Run(ctx, normalize.Bmo, bmoBatch(10))
	assert.ErrorIs(t, err, context.Canceled)
}
