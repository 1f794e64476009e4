package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	// Register KMS provider drivers. hashivault and localsecrets cover the
	// two URI schemes this deployment actually opens (an external Vault
	// transit mount, or a self-contained base64 key for local/dev use);
	// gcpkms/awskms/azurekeyvault are left out since nothing in this
	// domain targets those clouds.
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
)

// KMSService opens a secrets.Keeper for a configured key-wrap URI.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for keyURI. Supports
	// hashivault://, base64key://, and any other gocloud.dev/secrets
	// driver registered by a blank import above.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using
// keyURI. The returned *secrets.Keeper satisfies cryptoDomain.KMSKeeper.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
