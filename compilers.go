package wandbox

import (
	"context"
	"net/http"
)

// Compilers fetches the list of compiler/language targets the service
// offers, in the order the server returns them.
func (c *Client) Compilers(ctx context.Context) ([]Compiler, error) {
	var list []Compiler
	if err := c.doJSON(ctx, http.MethodGet, "list.json", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
