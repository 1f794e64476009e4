package app

import (
	"fmt"

	indexHTTP "github.com/dsse/forwardpriv/internal/index/http"
	indexRepository "github.com/dsse/forwardpriv/internal/index/repository"
	indexUsecase "github.com/dsse/forwardpriv/internal/index/usecase"
)

// IndexRepository returns the index repository for the server's encrypted
// chain-node store, based on the configured database driver.
func (c *Container) IndexRepository() (indexUsecase.IndexRepository, error) {
	var err error
	c.indexRepoInit.Do(func() {
		c.indexRepo, err = c.initIndexRepository()
		if err != nil {
			c.initErrors["indexRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["indexRepo"]; exists {
		return nil, storedErr
	}
	return c.indexRepo, nil
}

// IndexUseCase returns the index use case.
func (c *Container) IndexUseCase() (indexUsecase.IndexUseCase, error) {
	var err error
	c.indexUseCaseInit.Do(func() {
		c.indexUseCase, err = c.initIndexUseCase()
		if err != nil {
			c.initErrors["indexUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["indexUseCase"]; exists {
		return nil, storedErr
	}
	return c.indexUseCase, nil
}

// IndexHandler returns the HTTP handler for index node operations.
func (c *Container) IndexHandler() (*indexHTTP.IndexHandler, error) {
	var err error
	c.indexHandlerInit.Do(func() {
		c.indexHandler, err = c.initIndexHandler()
		if err != nil {
			c.initErrors["indexHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["indexHandler"]; exists {
		return nil, storedErr
	}
	return c.indexHandler, nil
}

// SearchHandler returns the HTTP handler for the chain-walk search endpoint.
func (c *Container) SearchHandler() (*indexHTTP.SearchHandler, error) {
	var err error
	c.searchHandlerInit.Do(func() {
		c.searchHandler, err = c.initSearchHandler()
		if err != nil {
			c.initErrors["searchHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["searchHandler"]; exists {
		return nil, storedErr
	}
	return c.searchHandler, nil
}

func (c *Container) initIndexRepository() (indexUsecase.IndexRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for index repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return indexRepository.NewPostgreSQLIndexRepository(db), nil
	case "mysql":
		return indexRepository.NewMySQLIndexRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initIndexUseCase() (indexUsecase.IndexUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for index use case: %w", err)
	}

	indexRepo, err := c.IndexRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get index repository for index use case: %w", err)
	}

	return indexUsecase.NewIndexUseCase(txManager, indexRepo), nil
}

func (c *Container) initIndexHandler() (*indexHTTP.IndexHandler, error) {
	indexUseCase, err := c.IndexUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get index use case for index handler: %w", err)
	}
	return indexHTTP.NewIndexHandler(indexUseCase, c.Logger()), nil
}

func (c *Container) initSearchHandler() (*indexHTTP.SearchHandler, error) {
	engine, err := c.SearchEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get search engine for search handler: %w", err)
	}
	return indexHTTP.NewSearchHandler(engine, c.Logger()), nil
}
