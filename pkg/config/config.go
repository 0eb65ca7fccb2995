// Zaparoo Stages
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Stages.
//
// Zaparoo Stages is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Stages is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Stages.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-stages/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "STAGES_CFG"
)

type Values struct {
	Library      Library `toml:"library,omitempty"`
	Vanilla      Vanilla `toml:"vanilla,omitempty"`
	ConfigSchema int     `toml:"config_schema"`
	DebugLogging bool    `toml:"debug_logging"`
}

// Library paths are resolved against the data dir when relative, and
// default to entries inside it when empty.
type Library struct {
	Root   string `toml:"root,omitempty"`
	DbFile string `toml:"db_file,omitempty"`
}

type Vanilla struct {
	BuildDir string `toml:"build_dir"`
	AssetDir string `toml:"asset_dir"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Vanilla: Vanilla{
		BuildDir: filepath.Join("build", "files"),
		AssetDir: filepath.Join("utility", "assets", "vanilla"),
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the config file from configDir, or the path in the
// STAGES_CFG env var. A missing file is created from defaults.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// fields missing from the file keep their default values
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func resolve(dataDir, path, fallback string) string {
	if path == "" {
		return filepath.Join(dataDir, fallback)
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}

// LibraryRoot returns the directory installed stage mods are stored in.
func (c *Instance) LibraryRoot(dataDir string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return resolve(dataDir, c.vals.Library.Root, LibraryDir)
}

func (c *Instance) SetLibraryRoot(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Library.Root = path
}

// LibraryDbFile returns the path of the library index database.
func (c *Instance) LibraryDbFile(dataDir string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return resolve(dataDir, c.vals.Library.DbFile, DbFile)
}

// VanillaDirs returns the vanilla build files and asset tree dirs. These
// are used as given, relative paths are relative to the working dir.
func (c *Instance) VanillaDirs() (buildDir, assetDir string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Vanilla.BuildDir, c.vals.Vanilla.AssetDir
}

func (c *Instance) SetVanillaDirs(buildDir, assetDir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Vanilla.BuildDir = buildDir
	c.vals.Vanilla.AssetDir = assetDir
}
