package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// EntryResponse is the payload for a single state entry. Keys and values are
// raw bytes on the wire format side, so both travel hex-encoded.
type EntryResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	APIKey string
}

// Store defines the state store operations the API exposes.
type Store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Scan(prefix []byte, fn func(key, value []byte) error) error
}
