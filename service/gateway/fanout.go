package gateway

import (
	"hash/fnv"
	"sync"
)

type fanoutJob struct {
	conns   []*Client
	payload []byte
}

// Fanout pushes one payload to a set of clients without blocking the
// caller on any individual connection. Jobs for the same target always
// land on the same shard, so deliveries to one room keep the order
// Emit was called in; there is no ordering across rooms.
type Fanout struct {
	shards []chan fanoutJob
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func NewFanout(shards, queue int) *Fanout {
	if shards <= 0 {
		shards = 1
	}
	if queue <= 0 {
		queue = 256
	}
	f := &Fanout{
		shards: make([]chan fanoutJob, shards),
		done:   make(chan struct{}),
	}
	for i := range f.shards {
		ch := make(chan fanoutJob, queue)
		f.shards[i] = ch
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			for {
				select {
				case job := <-ch:
					for _, c := range job.conns {
						// slow or closed clients are skipped, never waited on
						c.trySend(job.payload)
					}
				case <-f.done:
					return
				}
			}
		}()
	}
	return f
}

// Dispatch queues one delivery round. An empty member set is a
// successful no-op.
func (f *Fanout) Dispatch(target string, conns []*Client, payload []byte) {
	if len(conns) == 0 || len(payload) == 0 {
		return
	}
	select {
	case f.shards[f.shard(target)] <- fanoutJob{conns: conns, payload: payload}:
	case <-f.done:
	}
}

func (f *Fanout) shard(target string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(target))
	return int(h.Sum32() % uint32(len(f.shards)))
}

// Close stops the workers; queued jobs past the current one are
// dropped, which is fine for shutdown.
func (f *Fanout) Close() {
	f.once.Do(func() { close(f.done) })
	f.wg.Wait()
}
