package toast

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"
)

// DataCache is a flat-file JSON cache for API payloads (menu data).
type DataCache struct {
	path string
	log  *zap.SugaredLogger
}

func NewDataCache(path string, log *zap.SugaredLogger) *DataCache {
	return &DataCache{path: path, log: log}
}

// Load unmarshals the cached payload into v. Missing or unreadable cache is
// a miss.
func (c *DataCache) Load(v any) bool {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.log.Warnw("ignoring corrupt data cache", "path", c.path, "err", err)
		return false
	}
	c.log.Debugw("using cached data", "path", c.path)
	return true
}

// Save writes the payload to the cache file.
func (c *DataCache) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &CacheError{Path: c.path, Err: err}
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return &CacheError{Path: c.path, Err: err}
	}
	return nil
}

// Clear removes the cache file.
func (c *DataCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return &CacheError{Path: c.path, Err: err}
	}
	return nil
}
