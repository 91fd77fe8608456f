// Copyright (c) 2026, The RudeBase3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hybrid

import (
	"time"

	"cogentcore.org/core/base/iox/tomlx"
)

// Config holds the tunable parameters of a [Manager]. Zero budget and
// age values disable the corresponding limit.
type Config struct {

	// VoxelSize is the default cell size for voxel conversions.
	VoxelSize float32 `default:"0.1"`

	// SubdivisionLevel is the default level for subdivision
	// conversions.
	SubdivisionLevel int `default:"1"`

	// MaxCacheAge is how long an untouched cache entry survives
	// [Manager.CleanupUnusedCaches]. 0 means no age limit.
	MaxCacheAge time.Duration

	// MaxCacheMemory is the budget in bytes for cached conversions
	// across all geometries. The primaries are not counted and are
	// never evicted. 0 means unlimited.
	MaxCacheMemory int64
}

// Defaults sets default configuration values.
func (cf *Config) Defaults() {
	cf.VoxelSize = 0.1
	cf.SubdivisionLevel = 1
	cf.MaxCacheAge = 5 * time.Minute
	cf.MaxCacheMemory = 256 << 20
}

// Open loads the config from a TOML file.
func (cf *Config) Open(filename string) error {
	return tomlx.Open(cf, filename)
}

// Save saves the config to a TOML file.
func (cf *Config) Save(filename string) error {
	return tomlx.Save(cf, filename)
}
