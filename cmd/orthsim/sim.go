package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/aglyzov/go-orthtree/orthtree"
)

// ErrMismatch is returned when a range query disagrees with a brute-force scan.
var ErrMismatch = errors.New("search mismatch")

// Simulation moves entities around an orthtree and runs range queries
// against it every tick.
type Simulation struct {
	cfg      Config
	log      *zap.Logger
	metrics  *metrics
	fake     *gofakeit.Faker
	tree     *orthtree.Tree[*Entity]
	entities []*Entity

	// scratch buffers
	found    []*Entity
	qmin     []float32
	qmax     []float32
	expected map[*Entity]int
}

// NewSimulation spawns the entities and indexes them.
func NewSimulation(cfg Config, log *zap.Logger, m *metrics) *Simulation {
	s := &Simulation{
		cfg:      cfg,
		log:      log,
		metrics:  m,
		fake:     gofakeit.New(cfg.Seed),
		entities: make([]*Entity, cfg.Entities),
		qmin:     make([]float32, cfg.Dimensions),
		qmax:     make([]float32, cfg.Dimensions),
		expected: make(map[*Entity]int),
	}

	s.tree = orthtree.New[*Entity](cfg.Region.Min, cfg.Region.Max,
		orthtree.WithCapacity(cfg.Capacity),
		orthtree.WithReinsertThreshold(cfg.ReinsertThreshold),
		orthtree.WithPreAlloc(cfg.Entities),
		orthtree.WithLogger(log.Named("orthtree")),
	)

	for i := range s.entities {
		s.entities[i] = spawnEntity(s.fake, &s.cfg)
		s.tree.Insert(s.entities[i])
	}
	m.spawns.Add(float64(len(s.entities)))
	m.observeTree(s.tree.Stats())

	log.Info("simulation ready",
		zap.Int("dims", cfg.Dimensions),
		zap.Int("entities", len(s.entities)),
		zap.Int("nodes", s.tree.Stats().Nodes),
	)

	return s
}

// Run executes the configured number of ticks or stops early once the
// context is done.
func (s *Simulation) Run(ctx context.Context) error {
	started := time.Now()

	for tick := 1; tick <= s.cfg.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			s.log.Warn("simulation interrupted", zap.Int("tick", tick), zap.Error(err))
			return err
		}

		if err := s.step(tick); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}
	}

	stats := s.tree.Stats()
	s.log.Info("simulation finished",
		zap.Int("ticks", s.cfg.Ticks),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("items", stats.Items),
		zap.Int("nodes", stats.Nodes),
		zap.Int("max_depth", stats.MaxDepth),
	)

	return nil
}

func (s *Simulation) step(tick int) error {
	started := time.Now()

	moved := 0
	for _, e := range s.entities {
		if !e.Static {
			e.move(s.cfg.Region.Min, s.cfg.Region.Max)
			moved++
		}
	}
	s.tree.Refresh()
	s.metrics.updates.Add(float64(moved))

	s.churn()

	if s.cfg.ResizeEvery > 0 && tick%s.cfg.ResizeEvery == 0 {
		s.tree.Resize(s.cfg.Region.Min, s.cfg.Region.Max)
	}

	for i := 0; i < s.cfg.QueriesPerTick; i++ {
		if err := s.query(); err != nil {
			return err
		}
	}

	if s.cfg.Verify {
		if err := s.tree.Validate(); err != nil {
			return fmt.Errorf("invalid tree: %w", err)
		}
	}

	stats := s.tree.Stats()
	s.metrics.observeTree(stats)
	s.metrics.tickSeconds.Observe(time.Since(started).Seconds())

	if s.cfg.ReportEvery > 0 && tick%s.cfg.ReportEvery == 0 {
		s.log.Info("tick",
			zap.Int("tick", tick),
			zap.Int("items", stats.Items),
			zap.Int("nodes", stats.Nodes),
			zap.Int("max_depth", stats.MaxDepth),
			zap.Duration("took", time.Since(started)),
		)
	}

	return nil
}

// churn replaces a fraction of the entities with freshly spawned ones.
func (s *Simulation) churn() {
	n := int(float64(len(s.entities)) * s.cfg.Churn)

	for i := 0; i < n; i++ {
		idx := s.fake.IntRange(0, len(s.entities)-1)

		s.tree.Remove(s.entities[idx])
		s.entities[idx] = spawnEntity(s.fake, &s.cfg)
		s.tree.Insert(s.entities[idx])
	}

	s.metrics.removals.Add(float64(n))
	s.metrics.spawns.Add(float64(n))
}

func (s *Simulation) query() error {
	half := s.cfg.QuerySize / 2

	for i := range s.qmin {
		c := s.fake.Float32Range(s.cfg.Region.Min[i], s.cfg.Region.Max[i])
		s.qmin[i] = c - half
		s.qmax[i] = c + half
	}

	s.found = s.tree.Search(s.found[:0], s.qmin, s.qmax)
	s.metrics.queries.Inc()
	s.metrics.hits.Add(float64(len(s.found)))

	if !s.cfg.Verify {
		return nil
	}
	return s.verify()
}

// verify compares the last search result with a scan over every entity.
func (s *Simulation) verify() error {
	clear(s.expected)

	if hasVolume(s.qmin, s.qmax) {
		for _, e := range s.entities {
			if overlaps(s.qmin, s.qmax, e.Min, e.Max) {
				s.expected[e]++
			}
		}
	}

	ok := len(s.expected) == len(s.found)
	for _, e := range s.found {
		if s.expected[e] != 1 {
			ok = false
			break
		}
		s.expected[e]++
	}

	if !ok {
		s.metrics.mismatches.Inc()
		return fmt.Errorf("query %v..%v found %d, expected %d: %w",
			s.qmin, s.qmax, len(s.found), len(s.expected), ErrMismatch)
	}

	return nil
}
