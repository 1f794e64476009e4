// Package dto provides request and response bodies for the blob HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/dsse/forwardpriv/internal/validation"
)

// PutBlobRequest is the body of PUT /v1/blobs/:file_id. Nonce, file key and
// ciphertext are all hex-encoded, matching the index node wire format.
type PutBlobRequest struct {
	Nonce         string `json:"nonce"`
	StoredFileKey string `json:"stored_file_key"`
	Ciphertext    string `json:"ciphertext"`
}

// Validate checks that every field is present, non-blank, hex-encoded.
func (r *PutBlobRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Nonce,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
		validation.Field(&r.StoredFileKey,
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

// GetBlobResponse is the body of a successful GET /v1/blobs/:file_id.
type GetBlobResponse struct {
	Nonce         string `json:"nonce"`
	StoredFileKey string `json:"stored_file_key"`
	Ciphertext    string `json:"ciphertext"`
}
