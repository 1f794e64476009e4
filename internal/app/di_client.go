package app

import (
	"fmt"

	clientState "github.com/dsse/forwardpriv/internal/client/state"
	clientUsecase "github.com/dsse/forwardpriv/internal/client/usecase"
)

// StateStore returns the client's persistent keyword -> chain-head store.
func (c *Container) StateStore() (*clientState.Store, error) {
	var err error
	c.stateStoreInit.Do(func() {
		c.stateStore, err = clientState.NewStore(c.config.ClientStatePath)
		if err != nil {
			c.initErrors["stateStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["stateStore"]; exists {
		return nil, storedErr
	}
	return c.stateStore, nil
}

// ClientUseCase returns the client-side upload/search/download/clear use case.
func (c *Container) ClientUseCase() (clientUsecase.ClientUseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

func (c *Container) initClientUseCase() (clientUsecase.ClientUseCase, error) {
	indexUseCase, err := c.IndexUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get index use case for client use case: %w", err)
	}

	blobUseCase, err := c.BlobUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob use case for client use case: %w", err)
	}

	engine, err := c.SearchEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get search engine for client use case: %w", err)
	}

	stateStore, err := c.StateStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get state store for client use case: %w", err)
	}

	return clientUsecase.NewClientUseCase(
		indexUseCase,
		blobUseCase,
		engine,
		c.AEADManager(),
		c.KeyDeriver(),
		c.Algorithm(),
		stateStore,
	), nil
}
