package main

import (
	"github.com/brianvoe/gofakeit/v6"
)

// Entity is a moving box inside the simulated region.
type Entity struct {
	ID     string
	Min    []float32
	Max    []float32
	Vel    []float32
	Static bool
}

// AABB implements orthtree.Leaf.
func (e *Entity) AABB(min, max []float32) {
	copy(min, e.Min)
	copy(max, e.Max)
}

// IsStatic implements orthtree.Leaf.
func (e *Entity) IsStatic() bool {
	return e.Static
}

// spawnEntity places a random entity fully inside the region.
func spawnEntity(fake *gofakeit.Faker, cfg *Config) *Entity {
	dims := cfg.Dimensions

	e := &Entity{
		ID:     fake.UUID(),
		Min:    make([]float32, dims),
		Max:    make([]float32, dims),
		Vel:    make([]float32, dims),
		Static: fake.Float64() < cfg.StaticRatio,
	}

	for i := 0; i < dims; i++ {
		lo, hi := cfg.Region.Min[i], cfg.Region.Max[i]

		size := fake.Float32Range(0, min(cfg.MaxSize, hi-lo))
		e.Min[i] = fake.Float32Range(lo, hi-size)
		e.Max[i] = e.Min[i] + size

		if !e.Static {
			e.Vel[i] = fake.Float32Range(-cfg.MaxSpeed, cfg.MaxSpeed)
		}
	}

	return e
}

// move advances the entity by its velocity bouncing off the region walls.
func (e *Entity) move(lo, hi []float32) {
	for i, v := range e.Vel {
		size := e.Max[i] - e.Min[i]
		pos := e.Min[i] + v

		switch {
		case pos < lo[i]:
			pos = lo[i]
			e.Vel[i] = -v
		case pos+size > hi[i]:
			pos = hi[i] - size
			e.Vel[i] = -v
		}

		e.Min[i] = pos
		e.Max[i] = pos + size
	}
}

// overlaps mirrors the strict overlap rule of the tree search.
func overlaps(min, max, omin, omax []float32) bool {
	for i := range min {
		if !(min[i] < omax[i] && omin[i] < max[i]) {
			return false
		}
	}
	return true
}

func hasVolume(min, max []float32) bool {
	for i := range min {
		if !(max[i] > min[i]) {
			return false
		}
	}
	return true
}
