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
	"runtime"
	"sync"
)

// A WorkerPool runs posted tasks on a fixed set of worker goroutines,
// in FIFO order. Tasks run to completion; there is no cancellation, and
// a task must never wait on another pool task.
type WorkerPool struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	queue    []func()
	stop     bool
	wg       sync.WaitGroup
}

// NewWorkerPool starts a pool with the given number of workers; zero or
// negative means one per CPU.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &WorkerPool{}
	p.notEmpty = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// PostTask enqueues work. Posting after Close is a no-op.
func (p *WorkerPool) PostTask(work func()) {
	p.mu.Lock()
	if !p.stop {
		p.queue = append(p.queue, work)
		p.notEmpty.Signal()
	}
	p.mu.Unlock()
}

// Close stops the pool: queued tasks that have not started are dropped,
// in-flight tasks run to completion, and all workers are joined before
// Close returns.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	p.stop = true
	p.notEmpty.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stop {
			p.notEmpty.Wait()
		}
		if p.stop {
			p.mu.Unlock()
			return
		}
		work := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		work()
	}
}
