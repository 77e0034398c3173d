package storage

import "fmt"

// BackendType represents the type of storage backend
type BackendType string

const (
	// BackendPostgres represents PostgreSQL storage
	BackendPostgres BackendType = "postgres"
	// BackendMemory represents in-process storage, used by tests
	BackendMemory BackendType = "memory"
)

// SupportedBackends returns the list of supported storage backends
func SupportedBackends() []BackendType {
	return []BackendType{BackendPostgres, BackendMemory}
}

// ValidateBackend validates if a backend type is supported
func ValidateBackend(backend string) (BackendType, error) {
	bt := BackendType(backend)
	for _, supported := range SupportedBackends() {
		if bt == supported {
			return bt, nil
		}
	}
	return "", fmt.Errorf("unsupported storage backend: %s. Supported backends: %v", backend, SupportedBackends())
}
