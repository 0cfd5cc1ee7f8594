package config

import "github.com/jukanntenn/crashfeishu/internal/watch"

// WatchSet converts the configured program list into the watch set the
// classifier consumes.
func (c Config) WatchSet() (watch.Set, error) {
	return watch.ParseSet(c.Programs)
}
