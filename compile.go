package wandbox

import (
	"context"
	"fmt"
	"net/http"
)

// Compile submits code for remote compilation and execution and returns the
// finished result in one piece. Set req.Save to also create a permanent
// link; the result then carries [CompileResult.Permlink] and
// [CompileResult.URL]. For incremental output use [Client.CompileStream].
func (c *Client) Compile(ctx context.Context, req *CompileRequest) (*CompileResult, error) {
	if req == nil {
		return nil, fmt.Errorf("wandbox: compile request is required")
	}
	if req.Compiler == "" {
		return nil, fmt.Errorf("wandbox: compiler must be set")
	}

	// The remote expects "codes" as a list, never null.
	body := *req
	if body.Codes == nil {
		body.Codes = []SourceFile{}
	}

	var result CompileResult
	if err := c.doJSON(ctx, http.MethodPost, "compile.json", &body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
