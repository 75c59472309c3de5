package scene

import (
	"encoding/json"
	"fmt"
)

// Config holds the destruction tunables shared by an entity and its fragments.
type Config struct {
	DestructionRadius   float32 `json:"destructionRadius"`
	MinClusterSize      int     `json:"minClusterSize"`
	MaxFragmentsPerCall int     `json:"maxFragmentsPerCall"`
	VoxelSize           float32 `json:"voxelSize"`

	// AutoIsolate runs isolation right after every carve.
	AutoIsolate bool `json:"autoIsolate"`
	// AddDestructorToFragments makes spawned fragments carvable themselves.
	AddDestructorToFragments bool `json:"addDestructorToFragments"`
}

func DefaultConfig() Config {
	return Config{
		DestructionRadius:        2,
		MinClusterSize:           20,
		MaxFragmentsPerCall:      4,
		VoxelSize:                1,
		AutoIsolate:              true,
		AddDestructorToFragments: true,
	}
}

// Normalize clamps values into their usable range.
func (c Config) Normalize() Config {
	c.MinClusterSize = max(c.MinClusterSize, 1)
	c.MaxFragmentsPerCall = max(c.MaxFragmentsPerCall, 1)
	c.VoxelSize = max(c.VoxelSize, 0.0001)
	c.DestructionRadius = max(c.DestructionRadius, 0)
	return c
}

// ParseConfig overlays a JSON document on DefaultConfig. Fields absent from
// the document keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config JSON: %w", err)
	}
	return cfg.Normalize(), nil
}
