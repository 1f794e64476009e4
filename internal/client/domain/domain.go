// Package domain defines the client-side types: the per-keyword chain head
// held in client state, and the descriptor a search or upload returns.
package domain

// Head is a keyword's current chain head: the key and address a new search
// or upload must start from.
type Head struct {
	KeyHex     string `json:"key_hex"`
	AddressHex string `json:"address_hex"`
}

// Descriptor is the file metadata a search result or an upload confirmation
// carries back to the caller.
type Descriptor struct {
	FileID       string `json:"file_id"`
	OriginalName string `json:"original_name"`
	FileKey      string `json:"file_key"`
}

// Stats summarizes server-side index and blob storage usage.
type Stats struct {
	IndexEntries     int64 `json:"index_entries"`
	EncryptedFiles   int64 `json:"encrypted_files"`
	DBSizeBytes      int64 `json:"db_size_bytes"`
	StorageSizeBytes int64 `json:"storage_size_bytes"`
	TotalSizeBytes   int64 `json:"total_size_bytes"`
}
