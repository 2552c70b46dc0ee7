// Copyright 2026 Blink Labs Software
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

package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blinklabs-io/gotorrent/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunPreservesOrder(t *testing.T) {
	inputs := make([]int, 50)
	for i := range inputs {
		inputs[i] = i
	}
	pool := pipeline.NewWorkerPool(
		func(_ context.Context, in int) (string, error) {
			// Later inputs finish first
			time.Sleep(time.Duration(len(inputs)-in) * 100 * time.Microsecond)
			if in%7 == 3 {
				return "", fmt.Errorf("bad input %d", in)
			}
			return fmt.Sprintf("out-%d", in), nil
		},
		8,
	)
	var seen []uint64
	var failed int
	err := pool.Run(
		context.Background(),
		inputs,
		func(item *pipeline.Item[int, string]) error {
			seen = append(seen, item.Seq)
			assert.Equal(t, int(item.Seq), item.Input)
			if item.Err != nil {
				failed++
				assert.Empty(t, item.Output)
				return nil
			}
			assert.Equal(t, fmt.Sprintf("out-%d", item.Input), item.Output)
			return nil
		},
	)
	require.NoError(t, err)
	require.Len(t, seen, len(inputs))
	for i, seq := range seen {
		assert.Equal(t, uint64(i), seq)
	}
	assert.Equal(t, 7, failed)
}

func TestRunEmptyBatch(t *testing.T) {
	pool := pipeline.NewWorkerPool(
		func(_ context.Context, in int) (int, error) { return in, nil },
		4,
	)
	err := pool.Run(
		context.Background(),
		nil,
		func(*pipeline.Item[int, int]) error {
			t.Fatal("emit called for empty batch")
			return nil
		},
	)
	assert.NoError(t, err)
}

func TestRunStopsOnEmitError(t *testing.T) {
	var processed atomic.Int32
	pool := pipeline.NewWorkerPool(
		func(_ context.Context, in int) (int, error) {
			processed.Add(1)
			return in, nil
		},
		2,
	)
	stop := errors.New("stop")
	inputs := make([]int, 1000)
	emitted := 0
	err := pool.Run(
		context.Background(),
		inputs,
		func(item *pipeline.Item[int, int]) error {
			emitted++
			if item.Seq == 2 {
				return stop
			}
			return nil
		},
	)
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, emitted)
	assert.Less(t, int(processed.Load()), len(inputs))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := pipeline.NewWorkerPool(
		func(ctx context.Context, in int) (int, error) {
			if in == 1 {
				cancel()
			}
			<-ctx.Done()
			return in, ctx.Err()
		},
		1,
	)
	inputs := make([]int, 100)
	for i := range inputs {
		inputs[i] = i + 1
	}
	err := pool.Run(
		ctx,
		inputs,
		func(*pipeline.Item[int, int]) error { return nil },
	)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewWorkerPoolNilFunc(t *testing.T) {
	assert.PanicsWithValue(t, pipeline.ErrNilProcessFunc, func() {
		pipeline.NewWorkerPool[int, int](nil, 1)
	})
}
