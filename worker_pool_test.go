// Copyright 2022 Google Inc. All rights reserved.
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

package gn

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(4)

	const count = 200
	var ran atomic.Int64
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		pool.PostTask(func() {
			ran.Add(1)
			wg.Done()
		})
	}
	wg.Wait()
	pool.Close()

	require.Equal(t, int64(count), ran.Load())
}

func TestWorkerPoolSingleWorkerIsFIFO(t *testing.T) {
	pool := NewWorkerPool(1)

	var order []int
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		i := i
		pool.PostTask(func() {
			order = append(order, i)
			wg.Done()
		})
	}
	wg.Wait()
	pool.Close()

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestWorkerPoolCloseJoinsInFlightTasks(t *testing.T) {
	pool := NewWorkerPool(2)

	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	pool.PostTask(func() {
		close(started)
		<-release
		finished.Store(true)
	})

	<-started
	go func() {
		close(release)
	}()
	// Close must not return before the in-flight task completes.
	pool.Close()
	require.True(t, finished.Load())
}

func TestWorkerPoolPostAfterClose(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Close()

	// Posting after Close is a silent no-op.
	pool.PostTask(func() {
		t.Error("task ran after Close")
	})
}
