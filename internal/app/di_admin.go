package app

import (
	"fmt"

	appHTTP "github.com/dsse/forwardpriv/internal/http"
)

// AdminHandler returns the HTTP handler for server-wide clear operations.
func (c *Container) AdminHandler() (*appHTTP.AdminHandler, error) {
	var err error
	c.adminHandlerInit.Do(func() {
		c.adminHandler, err = c.initAdminHandler()
		if err != nil {
			c.initErrors["adminHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminHandler"]; exists {
		return nil, storedErr
	}
	return c.adminHandler, nil
}

func (c *Container) initAdminHandler() (*appHTTP.AdminHandler, error) {
	indexUseCase, err := c.IndexUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get index use case for admin handler: %w", err)
	}

	blobUseCase, err := c.BlobUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob use case for admin handler: %w", err)
	}

	return appHTTP.NewAdminHandler(indexUseCase, blobUseCase, c.Logger()), nil
}
