package app

import (
	"fmt"

	blobHTTP "github.com/dsse/forwardpriv/internal/blob/http"
	blobRepository "github.com/dsse/forwardpriv/internal/blob/repository"
	blobStorage "github.com/dsse/forwardpriv/internal/blob/storage"
	blobUsecase "github.com/dsse/forwardpriv/internal/blob/usecase"
)

// BlobRepository returns the blob metadata repository, based on the
// configured database driver.
func (c *Container) BlobRepository() (blobUsecase.BlobRepository, error) {
	var err error
	c.blobRepoInit.Do(func() {
		c.blobRepo, err = c.initBlobRepository()
		if err != nil {
			c.initErrors["blobRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blobRepo"]; exists {
		return nil, storedErr
	}
	return c.blobRepo, nil
}

// ByteStore returns the opaque byte container blob payloads are written to.
func (c *Container) ByteStore() (blobUsecase.ByteStore, error) {
	var err error
	c.byteStoreInit.Do(func() {
		c.byteStore, err = blobStorage.NewLocalDiskStore(c.config.BlobStorageDir)
		if err != nil {
			c.initErrors["byteStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["byteStore"]; exists {
		return nil, storedErr
	}
	return c.byteStore, nil
}

// BlobUseCase returns the blob use case.
func (c *Container) BlobUseCase() (blobUsecase.BlobUseCase, error) {
	var err error
	c.blobUseCaseInit.Do(func() {
		c.blobUseCase, err = c.initBlobUseCase()
		if err != nil {
			c.initErrors["blobUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blobUseCase"]; exists {
		return nil, storedErr
	}
	return c.blobUseCase, nil
}

// BlobHandler returns the HTTP handler for blob operations.
func (c *Container) BlobHandler() (*blobHTTP.BlobHandler, error) {
	var err error
	c.blobHandlerInit.Do(func() {
		c.blobHandler, err = c.initBlobHandler()
		if err != nil {
			c.initErrors["blobHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blobHandler"]; exists {
		return nil, storedErr
	}
	return c.blobHandler, nil
}

func (c *Container) initBlobRepository() (blobUsecase.BlobRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for blob repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return blobRepository.NewPostgreSQLBlobRepository(db), nil
	case "mysql":
		return blobRepository.NewMySQLBlobRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initBlobUseCase() (blobUsecase.BlobUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for blob use case: %w", err)
	}

	blobRepo, err := c.BlobRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob repository for blob use case: %w", err)
	}

	byteStore, err := c.ByteStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get byte store for blob use case: %w", err)
	}

	keeper, err := c.KMSKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get kms keeper for blob use case: %w", err)
	}

	return blobUsecase.NewBlobUseCase(txManager, blobRepo, byteStore, keeper), nil
}

func (c *Container) initBlobHandler() (*blobHTTP.BlobHandler, error) {
	blobUseCase, err := c.BlobUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob use case for blob handler: %w", err)
	}
	return blobHTTP.NewBlobHandler(blobUseCase, c.Logger()), nil
}
