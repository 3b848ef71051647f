// Package storage provides the key-value store backing all persisted
// application state (profile, projects, credential, caches).
package storage

// Store is a JSON key-value store. Values are marshaled on Put and
// unmarshaled into v on Get. Get returns false when the key is absent
// or the stored value cannot be decoded. Persisted state is a cache,
// not a source of truth, so a corrupt value reads as missing.
type Store interface {
	Get(key string, v any) (bool, error)
	Put(key string, v any) error
	Delete(key string) error
}

// Logical keys used across the application.
const (
	KeyProfile               = "profile"
	KeyProjects              = "projects"
	KeyAPICredential         = "api-credential"
	KeyCachedRecommendations = "cached-recommendations"
	KeyModeFlag              = "mode-flag"
)
