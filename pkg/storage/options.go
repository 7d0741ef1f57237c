package storage

type StorageOption func(*StorageEngine)

// WithDataDir sets the storage root holding the db/ tree
func WithDataDir(dir string) StorageOption {
	return func(engine *StorageEngine) {
		engine.layout.Root = dir
	}
}

// WithMaxPathLength bounds the length of every composed path
func WithMaxPathLength(n int) StorageOption {
	return func(engine *StorageEngine) {
		engine.layout.MaxPathLength = n
	}
}

// WithDebug enables DEBUG log lines
func WithDebug(enabled bool) StorageOption {
	return func(engine *StorageEngine) {
		engine.debug = enabled
	}
}
