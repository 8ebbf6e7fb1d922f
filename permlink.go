package wandbox

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetPermlink fetches a previously saved compile request/result pair by its
// server-assigned identifier.
func (c *Client) GetPermlink(ctx context.Context, link string) (*PermlinkRecord, error) {
	if link == "" {
		return nil, fmt.Errorf("wandbox: permlink identifier must be set")
	}

	var record PermlinkRecord
	if err := c.doJSON(ctx, http.MethodGet, "permlink/"+url.PathEscape(link), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreatePermlink saves a compile request together with the stream events a
// prior [Client.CompileStream] run produced, and returns the permanent link
// the server assigned. The request is submitted as a JSON body like every
// other POST endpoint.
func (c *Client) CreatePermlink(ctx context.Context, req *PermlinkRequest) (*PermlinkCreated, error) {
	if req == nil {
		return nil, fmt.Errorf("wandbox: permlink request is required")
	}
	if req.Compiler == "" {
		return nil, fmt.Errorf("wandbox: compiler must be set")
	}

	body := *req
	if body.Codes == nil {
		body.Codes = []SourceFile{}
	}
	if body.Results == nil {
		body.Results = []StreamEvent{}
	}

	var created PermlinkCreated
	if err := c.doJSON(ctx, http.MethodPost, "permlink", &body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
