package commands

import (
	"fmt"
	"io"

	clientUsecase "github.com/dsse/forwardpriv/internal/client/usecase"
)

// RunListKeywords prints every keyword the client has local chain-head
// state for, one per line, to out.
func RunListKeywords(useCase clientUsecase.ClientUseCase, out io.Writer) error {
	for _, keyword := range useCase.ListKeywords() {
		_, _ = fmt.Fprintln(out, keyword)
	}
	return nil
}
