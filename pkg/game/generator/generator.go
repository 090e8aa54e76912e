package generator

import (
	"fmt"
	"time"

	"delving/pkg/engine/logging"
	"delving/pkg/engine/rng"
	"delving/pkg/game/spawn"
)

// InitialBuilder creates a map from scratch
type InitialBuilder interface {
	BuildMap(r *rng.RNG, ctx *BuildContext) error
	Name() string
}

// MetaBuilder refines a map an earlier stage produced
type MetaBuilder interface {
	BuildMap(r *rng.RNG, ctx *BuildContext) error
	Name() string
}

// Observer is told about every stage a chain runs
type Observer interface {
	StageCompleted(stage string, elapsed time.Duration, err error)
}

// BuilderChain runs one initial builder followed by meta builders, in order,
// over a single BuildContext.
type BuilderChain struct {
	starter  InitialBuilder
	builders []MetaBuilder
	ctx      *BuildContext
	observer Observer
	log      *logging.Logger
}

// NewBuilderChain creates an empty chain for a level
func NewBuilderChain(depth, width, height int, name string) *BuilderChain {
	return &BuilderChain{
		ctx: NewBuildContext(depth, width, height, name),
		log: logging.Default(),
	}
}

// StartWith installs the initial builder. A chain has exactly one.
func (c *BuilderChain) StartWith(b InitialBuilder) {
	if c.starter != nil {
		panic("BuilderChain already has a starting builder")
	}
	c.starter = b
}

// With appends a meta builder
func (c *BuilderChain) With(b MetaBuilder) {
	c.builders = append(c.builders, b)
}

// SetObserver registers a stage observer
func (c *BuilderChain) SetObserver(o Observer) {
	c.observer = o
}

// SetLogger replaces the chain's logger
func (c *BuilderChain) SetLogger(l *logging.Logger) {
	if l != nil {
		c.log = l
	}
}

// SetRecordHistory turns per-stage snapshots on or off
func (c *BuilderChain) SetRecordHistory(record bool) {
	c.ctx.RecordHistory = record
}

// Context returns the chain's build context
func (c *BuilderChain) Context() *BuildContext {
	return c.ctx
}

// Stages lists the names of the installed builders in run order
func (c *BuilderChain) Stages() []string {
	var names []string
	if c.starter != nil {
		names = append(names, c.starter.Name())
	}
	for _, b := range c.builders {
		names = append(names, b.Name())
	}
	return names
}

// BuildMap runs every stage against the context. All stages draw from r.
func (c *BuilderChain) BuildMap(r *rng.RNG) error {
	if c.starter == nil {
		panic("Cannot run a map builder chain without a starting build system")
	}

	if err := c.run(c.starter.Name(), func() error { return c.starter.BuildMap(r, c.ctx) }); err != nil {
		return err
	}
	for _, b := range c.builders {
		if err := c.run(b.Name(), func() error { return b.BuildMap(r, c.ctx) }); err != nil {
			return err
		}
	}
	return nil
}

func (c *BuilderChain) run(name string, stage func() error) error {
	started := time.Now()
	err := stage()
	elapsed := time.Since(started)

	if c.observer != nil {
		c.observer.StageCompleted(name, elapsed, err)
	}
	if err != nil {
		c.log.Debugf("stage %s failed after %v: %v", name, elapsed, err)
		return fmt.Errorf("stage %s: %w", name, err)
	}

	c.ctx.Map.SealPerimeter()
	c.ctx.TakeSnapshot()
	c.log.Debugf("stage %s done in %v (%d walkable tiles)", name, elapsed, c.ctx.Map.CountWalkable())
	return nil
}

// SpawnEntities hands every queued spawn to s, stopping at the first error
func (c *BuilderChain) SpawnEntities(s spawn.Spawner) error {
	for _, entry := range c.ctx.SpawnList {
		if err := s.Spawn(entry.Index, entry.Tag); err != nil {
			return fmt.Errorf("spawning %s at %d: %w", entry.Tag, entry.Index, err)
		}
	}
	return nil
}
