package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
	cryptoService "github.com/dsse/forwardpriv/internal/crypto/service"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// KeyDeriver returns the key deriver service.
func (c *Container) KeyDeriver() cryptoService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = cryptoService.NewKeyDeriver()
	})
	return c.keyDeriver
}

// Algorithm returns the AEAD algorithm selected for this deployment.
func (c *Container) Algorithm() cryptoDomain.Algorithm {
	return cryptoDomain.Algorithm(c.config.CryptoAlgorithm)
}

// KMSService returns the KMS service used to open a key-wrap keeper.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KMSKeeper returns the keeper that wraps the server-stored file key, or
// nil when KeyWrapURI is unconfigured. A nil keeper leaves blobUseCase
// storing that key unwrapped, exactly as before key wrapping existed.
func (c *Container) KMSKeeper() (cryptoDomain.KMSKeeper, error) {
	var err error
	c.kmsKeeperInit.Do(func() {
		c.kmsKeeper, err = c.initKMSKeeper()
		if err != nil {
			c.initErrors["kmsKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, storedErr
	}
	return c.kmsKeeper, nil
}

func (c *Container) initKMSKeeper() (cryptoDomain.KMSKeeper, error) {
	if c.config.KeyWrapURI == "" {
		return nil, nil
	}
	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KeyWrapURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper for KEY_WRAP_URI: %w", err)
	}
	return keeper, nil
}
