package config

import "sync"

// Global configuration instance and initialization guard.
var (
	globalSettings *Settings
	globalCatalog  *MessageCatalog
	globalOnce     sync.Once
)

// Global returns the singleton settings instance.
// Creates default settings on first call if not already initialized.
func Global() *Settings {
	globalOnce.Do(initDefaults)
	return globalSettings
}

// Messages returns the singleton message catalog.
func Messages() *MessageCatalog {
	globalOnce.Do(initDefaults)
	return globalCatalog
}

// InitGlobal initializes the global configuration with a custom
// settings instance. Must be called before any call to Global() to
// take effect. Safe for concurrent use but only the first call has
// any effect.
func InitGlobal(s *Settings) {
	globalOnce.Do(func() {
		globalSettings = s
		globalCatalog = mustCatalog()
	})
}

// ResetGlobal resets the global configuration for testing purposes.
// This is NOT thread-safe and should only be used in tests.
func ResetGlobal() {
	globalOnce = sync.Once{}
	globalSettings = nil
	globalCatalog = nil
}

func initDefaults() {
	s, err := NewSettings("default")
	if err != nil {
		// Embedded defaults always validate; a failure here means the
		// user profile on disk is broken, and defaults still apply.
		s, _ = newSettingsFromDefaults()
	}
	globalSettings = s
	globalCatalog = mustCatalog()
}

func mustCatalog() *MessageCatalog {
	c, err := LoadMessageCatalog()
	if err != nil {
		panic("config: embedded message catalog is invalid: " + err.Error())
	}
	return c
}
