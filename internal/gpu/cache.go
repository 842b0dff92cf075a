package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"
)

// CubemapCache lazily loads cubemaps by name and keeps them resident
// for the life of the viewport. There is no eviction: environment sets
// are few and reused every frame. A name that fails to load is not
// cached, so a later frame may retry it.
type CubemapCache struct {
	mu      sync.Mutex
	load    func(name string) (*Cubemap, error)
	entries map[string]*Cubemap
}

// NewCubemapCache creates a cache backed by the given loader.
func NewCubemapCache(load func(name string) (*Cubemap, error)) *CubemapCache {
	return &CubemapCache{
		load:    load,
		entries: make(map[string]*Cubemap),
	}
}

// Get returns the cubemap for name, loading it on first use. At most
// one GPU resource ever exists per name.
func (c *CubemapCache) Get(name string) (*Cubemap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cm, ok := c.entries[name]; ok {
		return cm, nil
	}
	cm, err := c.load(name)
	if err != nil {
		return nil, fmt.Errorf("gpu: load cubemap %s: %w", name, err)
	}
	c.entries[name] = cm
	return cm, nil
}

// Len reports the number of resident cubemaps.
func (c *CubemapCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Destroy releases every resident cubemap.
func (c *CubemapCache) Destroy(device hal.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, cm := range c.entries {
		cm.Destroy(device)
		delete(c.entries, name)
	}
}
