package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"
)

// FileObservationCache implements ObservationCache as a single JSON document
// on disk. Save stages the new set in a sibling temp file and renames it over
// the old one, so a failed write never corrupts the previously cached set.
type FileObservationCache struct {
	path   string
	logger logger.Logger
}

// NewFileObservationCache creates a cache backed by the given file path.
func NewFileObservationCache(path string, logger logger.Logger) repository.ObservationCache {
	return &FileObservationCache{
		path:   path,
		logger: logger,
	}
}

// Save replaces the cached observation set wholesale.
func (c *FileObservationCache) Save(ctx context.Context, observations []entity.Observation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(observations, "", "  ")
	if err != nil {
		return fmt.Errorf("encode observation cache: %w", err)
	}

	// Stage in the same directory so the rename stays atomic.
	staging := c.path + ".tmp"
	if err := os.WriteFile(staging, data, 0o644); err != nil {
		return fmt.Errorf("write observation cache staging file: %w", err)
	}
	if err := os.Rename(staging, c.path); err != nil {
		os.Remove(staging)
		return fmt.Errorf("replace observation cache: %w", err)
	}

	c.logger.Info("Observation cache written", "path", c.path, "count", len(observations))
	return nil
}

// Load returns the cached set in saved order.
func (c *FileObservationCache) Load(ctx context.Context) ([]entity.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, entity.ErrNoCachedData
		}
		return nil, fmt.Errorf("read observation cache: %w", err)
	}

	var observations []entity.Observation
	if err := json.Unmarshal(data, &observations); err != nil {
		return nil, fmt.Errorf("decode observation cache %s: %w", c.path, err)
	}
	if len(observations) == 0 {
		return nil, entity.ErrNoCachedData
	}

	c.logger.Debug("Observation cache loaded", "path", c.path, "count", len(observations))
	return observations, nil
}
