// This package measures how growth policies behave under a workload of pushes and pops.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/lifo"
)

var (
	// ErrInvalidWorkload is returned by [Run] when the workload has negative fields.
	ErrInvalidWorkload = errors.New("invalid workload")
	// ErrDuplicatePolicy is returned by [Run] when two policies share a name.
	ErrDuplicatePolicy = errors.New("duplicate policy")
)

// How many pushes are made between context checks.
const checkEvery = 1024

// Workload describes the operations made on every simulated stack.
type Workload struct {
	// Pushes is the number of pushed items.
	Pushes int
	// PopEvery makes the simulation pop one item after every PopEvery pushes. Zero disables pops.
	PopEvery int
	// Capacity is the initial capacity of the stack.
	Capacity int
}

func (w Workload) validate() error {
	switch {
	case w.Pushes < 0:
		return fmt.Errorf("%w: pushes can't be < 0", ErrInvalidWorkload)
	case w.PopEvery < 0:
		return fmt.Errorf("%w: pop every can't be < 0", ErrInvalidWorkload)
	case w.Capacity < 0:
		return fmt.Errorf("%w: capacity can't be < 0", ErrInvalidWorkload)
	}
	return nil
}

// Result is the outcome of a workload run against a single policy.
type Result struct {
	// Policy is the name of the policy.
	Policy string
	// Pushes is the number of pushed items.
	Pushes int
	// Pops is the number of popped items.
	Pops int
	// Size is the number of items left in the stack.
	Size int
	// Capacity is the final capacity of the stack.
	Capacity int
	// Grows is the number of buffer reallocations.
	Grows int
	// Copied is the number of items copied during reallocations.
	Copied int
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Run runs workload once per policy. Every policy gets its own stack and goroutine. Results are
// returned in the order of policies.
//
// The first error cancels the remaining runs.
func Run(
	ctx context.Context,
	workload Workload,
	policies []NamedPolicy,
	configFuncs ...ConfigFunc,
) ([]Result, error) {
	cfg := newConfig(configFuncs...)

	if err := workload.validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(policies))
	for _, policy := range policies {
		if _, ok := seen[policy.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePolicy, policy.Name)
		}
		seen[policy.Name] = struct{}{}
	}

	results := make([]Result, len(policies))
	group, ctx := errgroup.WithContext(ctx)
	for i, policy := range policies {
		group.Go(func() error {
			result, err := run(ctx, cfg, workload, policy)
			if err != nil {
				return fmt.Errorf("run %s: %w", policy.Name, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func run(ctx context.Context, cfg *Config, workload Workload, policy NamedPolicy) (Result, error) {
	logger := cfg.logger.WithField("policy", policy.Name)
	counter := &counting{policy: policy.Policy}

	stack := lifo.New(func(c *lifo.Config[int]) {
		c.Capacity(workload.Capacity)
		c.Growth(counter)
		if cfg.registerer != nil {
			registerer := prometheus.WrapRegistererWith(
				prometheus.Labels{"policy": policy.Name},
				cfg.registerer,
			)
			c.Prometheus(lifo.Prometheus(registerer))
		}
	})

	logger.WithFields(log.Fields{
		"pushes":    workload.Pushes,
		"pop_every": workload.PopEvery,
		"capacity":  workload.Capacity,
	}).Debug("Simulation started")

	var (
		pops  int
		start = time.Now()
	)
	for i := range workload.Pushes {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}

		stack.Push(i)

		if workload.PopEvery > 0 && (i+1)%workload.PopEvery == 0 {
			if _, err := stack.Pop(); err != nil {
				return Result{}, fmt.Errorf("pop: %w", err)
			}
			pops++
		}
	}

	result := Result{
		Policy:   policy.Name,
		Pushes:   workload.Pushes,
		Pops:     pops,
		Size:     stack.Size(),
		Capacity: stack.Capacity(),
		Grows:    counter.grows,
		Copied:   counter.copied,
		Duration: time.Since(start),
	}

	logger.WithFields(log.Fields{
		"size":     result.Size,
		"capacity": result.Capacity,
		"grows":    result.Grows,
		"copied":   result.Copied,
		"duration": result.Duration,
	}).Debug("Simulation finished")

	return result, nil
}
