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

// Package pipeline runs a processing function over a batch of inputs with a
// pool of workers and hands the results back in input order.
package pipeline

import (
	"context"
	"errors"
	"sync"
)

var ErrNilProcessFunc = errors.New("pipeline: process function must not be nil")

// Item is one unit of work. Seq is the position of Input in the batch.
type Item[In, Out any] struct {
	Seq    uint64
	Input  In
	Output Out
	Err    error
}

// ProcessFunc produces the output for one input. It is called concurrently.
type ProcessFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// EmitFunc receives processed items in sequence order from a single
// goroutine. Returning an error stops the batch.
type EmitFunc[In, Out any] func(item *Item[In, Out]) error

// WorkerPool runs a ProcessFunc on multiple workers
type WorkerPool[In, Out any] struct {
	process    ProcessFunc[In, Out]
	numWorkers int
}

// NewWorkerPool creates a worker pool. numWorkers defaults to 1 if <= 0.
func NewWorkerPool[In, Out any](process ProcessFunc[In, Out], numWorkers int) *WorkerPool[In, Out] {
	if process == nil {
		panic(ErrNilProcessFunc)
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &WorkerPool[In, Out]{
		process:    process,
		numWorkers: numWorkers,
	}
}

// Run processes inputs and calls emit for each item in input order. Item
// errors are passed to emit, not returned. Run returns the first emit error,
// or the context error if the batch was cancelled before completion. All
// workers have exited when Run returns.
func (p *WorkerPool[In, Out]) Run(ctx context.Context, inputs []In, emit EmitFunc[In, Out]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan *Item[In, Out])
	output := make(chan *Item[In, Out])
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(input)
		for i, in := range inputs {
			select {
			case input <- &Item[In, Out]{Seq: uint64(i), Input: in}:
			case <-ctx.Done():
				return
			}
		}
	}()
	for range p.numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, input, output)
		}()
	}
	go func() {
		wg.Wait()
		close(output)
	}()

	// Out of order items wait here until their predecessors are emitted
	pending := make(map[uint64]*Item[In, Out])
	var nextSeq uint64
	var emitErr error
	for item := range output {
		if emitErr != nil {
			// Drain until the workers notice the cancellation
			continue
		}
		pending[item.Seq] = item
		for {
			ready, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := emit(ready); err != nil {
				emitErr = err
				cancel()
				break
			}
		}
	}
	if emitErr != nil {
		return emitErr
	}
	if nextSeq < uint64(len(inputs)) {
		return ctx.Err()
	}
	return nil
}

func (p *WorkerPool[In, Out]) worker(ctx context.Context, input <-chan *Item[In, Out], output chan<- *Item[In, Out]) {
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-input:
			if !ok {
				return
			}
			item.Output, item.Err = p.process(ctx, item.Input)
			select {
			case output <- item:
			case <-ctx.Done():
				return
			}
		}
	}
}
