package wandbox

import (
	"bufio"
	"bytes"
	"encoding/json"
	"mime"
	"strings"
)

// ndjsonContentType is the media type that selects line-by-line decoding.
// Any other media type is decoded as a single JSON document. The selection
// is driven solely by the declared content type, never by body sniffing.
const ndjsonContentType = "application/x-ndjson"

// maxScanTokenSize bounds a single ND-JSON line. Program output lines can be
// large but a line beyond this indicates a broken stream.
const maxScanTokenSize = 10 * 1024 * 1024

// decodeBody decodes a response body according to its declared content type.
// ND-JSON yields one value per non-empty line in arrival order; anything
// else yields exactly one value.
func decodeBody(contentType string, body []byte) ([]json.RawMessage, error) {
	mediaType, err := checkCharset(contentType)
	if err != nil {
		return nil, err
	}

	if mediaType == ndjsonContentType {
		return decodeLines(contentType, body)
	}

	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &DecodeError{ContentType: contentType, Err: err}
	}
	return []json.RawMessage{doc}, nil
}

// decodeLines splits body into newline-delimited JSON documents.
func decodeLines(contentType string, body []byte) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 64*1024), maxScanTokenSize)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var doc json.RawMessage
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, &DecodeError{ContentType: contentType, Err: err}
		}
		docs = append(docs, doc)
	}
	if err := sc.Err(); err != nil {
		return nil, &DecodeError{ContentType: contentType, Err: err}
	}
	return docs, nil
}

// checkCharset parses the Content-Type header and rejects any declared
// character set that JSON decoding cannot honor. encoding/json only
// handles UTF-8 (and its ASCII subset).
func checkCharset(contentType string) (string, error) {
	if contentType == "" {
		return "", nil
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", &DecodeError{ContentType: contentType, Err: err}
	}
	switch cs := strings.ToLower(params["charset"]); cs {
	case "", "utf-8", "us-ascii":
		return mediaType, nil
	default:
		return "", &DecodeError{ContentType: contentType, msg: "unsupported charset " + cs}
	}
}

// unmarshalOne decodes exactly one document into out.
func unmarshalOne(contentType string, docs []json.RawMessage, out any) error {
	if len(docs) != 1 {
		return &DecodeError{ContentType: contentType, msg: "expected a single JSON document"}
	}
	if err := json.Unmarshal(docs[0], out); err != nil {
		return &DecodeError{ContentType: contentType, Err: err}
	}
	return nil
}
