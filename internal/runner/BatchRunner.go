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
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackbister/authnorm/internal/config"
	"github.com/jackbister/authnorm/internal/metrics"
	"github.com/jackbister/authnorm/pkg/authnorm/events"
	"github.com/jackbister/authnorm/pkg/authnorm/normalize"

	"golang.org/x/sync/errgroup"
)

// BatchRunner applies a normalizer to every event of a batch. Events are independent so they are normalized
// concurrently, but each result is written to the index of its event so the output order matches the input.
type BatchRunner struct {
	workers int
	verify  bool
	metrics *metrics.Metrics
	logger  *slog.Logger

	normalizeFunc func(normalize.Variant, events.RawEvent) events.Result
}

func NewBatchRunner(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *BatchRunner {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{
		workers:       workers,
		verify:        cfg.VerifyResults,
		metrics:       m,
		logger:        logger,
		normalizeFunc: normalize.Normalize,
	}
}

// Run normalizes the batch. The only error is cancellation of ctx, an event which cannot be normalized
// produces an invalid result instead.
func (br *BatchRunner) Run(ctx context.Context, v normalize.Variant, batch events.Batch) (events.ResultBatch, error) {
	logger := br.logger.With(slog.String("batchId", uuid.NewString()), slog.String("pluginName", string(v)))
	start := time.Now()
	results := make([]events.Result, len(batch.Events))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(br.workers)
	for i := range batch.Events {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = br.normalizeOne(logger, v, i, batch.Events[i])
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		logger.Warn("Batch was cancelled", slog.Any("error", err))
		return events.ResultBatch{}, err
	}

	elapsed := time.Since(start)
	br.metrics.ObserveBatch(string(v), elapsed)
	valid := 0
	for _, res := range results {
		if res.Valid {
			valid++
		}
	}
	logger.Info("Normalized batch",
		slog.Int("events", len(results)),
		slog.Int("valid", valid),
		slog.Duration("elapsed", elapsed))
	return events.ResultBatch{Results: results}, nil
}

func (br *BatchRunner) normalizeOne(logger *slog.Logger, v normalize.Variant, i int, evt events.RawEvent) (res events.Result) {
	defer func() {
		if e := recover(); e != nil {
			logger.Error("Normalizer panicked, event will be marked invalid",
				slog.Int("eventIndex", i),
				slog.Any("panic", e))
			br.metrics.ObservePanic(string(v))
			res = events.Result{Name: string(v)}
		}
		br.metrics.ObserveResult(string(v), res.Valid)
	}()

	res = br.normalizeFunc(v, evt)
	if br.verify && res.Valid {
		if err := res.Check(); err != nil {
			logger.Warn("Result failed verification, event will be marked invalid",
				slog.Int("eventIndex", i),
				slog.Any("error", err))
			br.metrics.ObserveVerificationFailure(string(v))
			res.Valid = false
		}
	}
	return res
}
