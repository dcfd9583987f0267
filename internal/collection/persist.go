package collection

import (
	"context"
	"sync"
	"time"

	"github.com/calvinalkan/backlog/internal/kv"
	"github.com/calvinalkan/backlog/internal/logger"
)

// persister writes snapshots in detached goroutines.
//
// Every snapshot carries the generation of the mutation that produced it.
// Writes run one at a time, and a snapshot older than the last one written is
// dropped, so a slow early write can never land on top of a newer one.
type persister struct {
	store   kv.Store
	key     string
	log     *logger.Logger
	timeout time.Duration

	pending sync.WaitGroup

	mu      sync.Mutex
	written uint64
}

// schedule starts a background write and returns immediately.
func (p *persister) schedule(gen uint64, data []byte) {
	p.pending.Add(1)

	go func() {
		defer p.pending.Done()

		p.write(gen, data)
	}()
}

func (p *persister) write(gen uint64, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen <= p.written {
		p.log.Debug("snapshot superseded, skipping write", "generation", gen, "written", p.written)

		return
	}

	ctx := context.Background()

	if p.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := p.store.Set(ctx, p.key, data)
	if err != nil {
		p.log.Error("saving games failed", "key", p.key, "generation", gen, "error", err)

		return
	}

	p.written = gen

	p.log.Debug("games saved", "key", p.key, "generation", gen, "bytes", len(data))
}

// wait blocks until every scheduled write has finished or ctx is done.
func (p *persister) wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		p.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
