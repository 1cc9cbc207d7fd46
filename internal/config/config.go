package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aziis98/trimlines"
)

// DBName is the file name of the result cache
const DBName = ".trimlines.db"

// Config holds global application configuration
type Config struct {
	DBPath  string
	Verbose bool
	Trim    trimlines.Config
}

// New creates a new configuration with defaults
func New() *Config {
	return &Config{
		Trim: trimlines.DefaultConfig(),
	}
}

// FindExistingDBPath searches for an existing cache file up the directory tree
func (c *Config) FindExistingDBPath() error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	return c.findExistingDBPathFrom(currentDir)
}

func (c *Config) findExistingDBPathFrom(currentDir string) error {
	// Search up the directory tree until we reach the root
	for {
		dbPath := filepath.Join(currentDir, DBName)
		log.Printf("Searching for cache at: %s", dbPath)
		if info, err := os.Stat(dbPath); err == nil && !info.IsDir() {
			c.DBPath = dbPath
			log.Printf("Found cache at: %s", dbPath)
			return nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}

		currentDir = parentDir
	}

	return fmt.Errorf("no existing cache found in directory tree")
}

// CreateDBPath sets the cache path to a new file in the current directory
func (c *Config) CreateDBPath() error {
	absPath, err := filepath.Abs(DBName)
	if err != nil {
		return fmt.Errorf("failed to create cache path: %w", err)
	}
	c.DBPath = absPath
	return nil
}

// FindOrCreateDBPath finds an existing cache or creates a new one
func (c *Config) FindOrCreateDBPath() error {
	if err := c.FindExistingDBPath(); err == nil {
		return nil
	}

	return c.CreateDBPath()
}
