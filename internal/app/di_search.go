package app

import (
	"fmt"

	"github.com/dsse/forwardpriv/internal/search"
)

// SearchEngine returns the chain-walk search engine used by both the
// server-side search endpoint and the client's local search.
func (c *Container) SearchEngine() (*search.Engine, error) {
	var err error
	c.searchEngineInit.Do(func() {
		c.searchEngine, err = c.initSearchEngine()
		if err != nil {
			c.initErrors["searchEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["searchEngine"]; exists {
		return nil, storedErr
	}
	return c.searchEngine, nil
}

func (c *Container) initSearchEngine() (*search.Engine, error) {
	indexUseCase, err := c.IndexUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get index use case for search engine: %w", err)
	}

	return search.NewEngine(
		indexUseCase,
		c.AEADManager(),
		c.Algorithm(),
		c.config.SearchMaxChainLength,
		c.Logger(),
	), nil
}
