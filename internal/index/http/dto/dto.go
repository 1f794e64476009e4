// Package dto provides request and response bodies for the index HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/dsse/forwardpriv/internal/validation"
)

// PutNodeRequest is the body of PUT /v1/index/:address. The address itself
// comes from the URL; nonce and ciphertext are hex-encoded here since JSON
// has no native byte-string type.
type PutNodeRequest struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Validate checks that nonce and ciphertext are present, non-blank,
// hex-encoded strings.
func (r *PutNodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Nonce,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
	)
}

// GetNodeResponse is the body of a successful GET /v1/index/:address.
type GetNodeResponse struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// StatsResponse is the body of GET /v1/index/stats.
type StatsResponse struct {
	NodeCount int64 `json:"node_count"`
	SizeBytes int64 `json:"size_bytes"`
}

// SearchRequest is the body of POST /v1/search: the chain head a search
// starts walking from.
type SearchRequest struct {
	StartKey     string `json:"start_key"`
	StartAddress string `json:"start_address"`
}

// Validate checks that both fields are present, non-blank, hex strings.
func (r *SearchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StartKey,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
		validation.Field(&r.StartAddress,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
	)
}

// SearchResultItem is one recovered descriptor in a search response.
type SearchResultItem struct {
	FileID       string `json:"file_id"`
	OriginalName string `json:"original_name"`
	FileKey      string `json:"file_key"`
}

// SearchResponse is the body of a successful POST /v1/search.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}
