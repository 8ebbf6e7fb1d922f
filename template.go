package wandbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// GetTemplate fetches the sample code for a template name (see
// [Compiler.Templates]). The remote serves templates either as a bare JSON
// string or wrapped in a {"code": ...} envelope; both shapes yield the code
// text. An unknown name surfaces as a *StatusError.
func (c *Client) GetTemplate(ctx context.Context, name string) (string, error) {
	docs, contentType, err := c.do(ctx, http.MethodGet, "template/"+url.PathEscape(name), nil)
	if err != nil {
		return "", err
	}

	var doc json.RawMessage
	if err := unmarshalOne(contentType, docs, &doc); err != nil {
		return "", err
	}

	var envelope struct {
		Code *string `json:"code"`
	}
	if err := json.Unmarshal(doc, &envelope); err == nil && envelope.Code != nil {
		return *envelope.Code, nil
	}

	var code string
	if err := json.Unmarshal(doc, &code); err == nil {
		return code, nil
	}

	return "", &DecodeError{ContentType: contentType, msg: "template payload is neither a string nor a code envelope"}
}
