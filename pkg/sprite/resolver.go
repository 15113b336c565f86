package sprite

import (
	"context"
	"errors"
	"sync"

	"github.com/latoulicious/dexbox/pkg/logging"
)

// ErrNotFound is returned by ResolveSync when no candidate loads.
var ErrNotFound = errors.New("no sprite candidate could be loaded")

// Resolver probes candidates for a reference and reports the first that
// loads. Every Resolve call starts a new generation; callbacks of older
// generations are dropped, so only the newest request is ever reported.
type Resolver struct {
	prober Prober
	dir    string
	logger logging.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewResolver creates a Resolver probing candidates under dir.
func NewResolver(prober Prober, dir string) *Resolver {
	return &Resolver{
		prober: prober,
		dir:    dir,
		logger: logging.GetGlobalLoggerFactory().CreateLogger("sprite"),
	}
}

// Candidates lists the probe order for reference.
func (r *Resolver) Candidates(reference string) []string {
	return Candidates(reference, r.dir)
}

// Resolve supersedes any running resolution and probes reference's
// candidates in order on a new goroutine. Exactly one of onFound and
// onNotFound runs, and only if no newer Resolve call was made by then.
// Callbacks run with the resolver locked and must not call back into it.
// An empty candidate list reports not-found before Resolve returns.
func (r *Resolver) Resolve(reference string, onFound func(location string), onNotFound func()) uint64 {
	candidates := r.Candidates(reference)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	gen := r.generation
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	if len(candidates) == 0 {
		if onNotFound != nil {
			onNotFound()
		}
		return gen
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(ctx, gen, reference, candidates, onFound, onNotFound)
	return gen
}

func (r *Resolver) run(ctx context.Context, gen uint64, reference string, candidates []string, onFound func(string), onNotFound func()) {
	defer r.wg.Done()

	for _, candidate := range candidates {
		if !r.isCurrent(gen) {
			return
		}
		err := r.prober.Probe(ctx, candidate)
		if err == nil {
			r.deliver(gen, func() {
				if onFound != nil {
					onFound(candidate)
				}
			})
			return
		}
		r.logger.Debug("Sprite candidate failed", map[string]interface{}{
			"reference":  reference,
			"candidate":  candidate,
			"generation": gen,
			"error":      err.Error(),
		})
	}

	r.deliver(gen, func() {
		if onNotFound != nil {
			onNotFound()
		}
	})
}

func (r *Resolver) isCurrent(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen == r.generation
}

func (r *Resolver) deliver(gen uint64, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return
	}
	fn()
}

// ResolveSync probes reference's candidates in order on the calling
// goroutine and returns the first location that loads. It does not take
// part in generations.
func (r *Resolver) ResolveSync(ctx context.Context, reference string) (string, error) {
	for _, candidate := range r.Candidates(reference) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := r.prober.Probe(ctx, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// Wait blocks until every started resolution goroutine has returned.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

// Close cancels the running resolution, if any, and waits for it.
func (r *Resolver) Close() {
	r.mu.Lock()
	r.generation++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()
	r.wg.Wait()
}
