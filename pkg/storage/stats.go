package storage

import (
	"log"
	"runtime"
)

// GetStats returns current memory usage and namespace statistics
func (se *StorageEngine) GetStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	databases := 0
	collections := 0
	if registry, err := LoadRegistry(se.layout.DatabaseMeta()); err != nil {
		log.Printf("WARN: Could not read database registry for stats: %v", err)
	} else {
		databases = registry.Len()
		for _, name := range registry.Names() {
			metaFile, err := se.layout.CollectionMeta(name)
			if err != nil {
				continue
			}
			if colls, err := LoadRegistry(metaFile); err == nil {
				collections += colls.Len()
			}
		}
	}

	return map[string]interface{}{
		"alloc_mb":       m.Alloc / 1024 / 1024,
		"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
		"sys_mb":         m.Sys / 1024 / 1024,
		"num_goroutines": runtime.NumGoroutine(),
		"databases":      databases,
		"collections":    collections,
	}
}
