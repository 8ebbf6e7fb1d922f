package wandbox

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
)

// Stream is an active ND-JSON compile stream. Events arrive one record at a
// time as the remote produces them; the stream is finite and ends when the
// remote closes it. It is not restartable.
//
//	stream, err := client.CompileStream(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for stream.Next() {
//	    fmt.Print(stream.Event().Data)
//	}
//	if err := stream.Err(); err != nil {
//	    log.Fatal(err)
//	}
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	current StreamEvent
	err     error
	closed  atomic.Bool
}

// Next advances to the next event. It returns false when the stream is
// exhausted, closed, or broken; check [Stream.Err] afterwards.
func (s *Stream) Next() bool {
	if s.closed.Load() || s.err != nil {
		return false
	}

	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var event StreamEvent
		if err := json.Unmarshal(line, &event); err != nil {
			s.err = &DecodeError{ContentType: ndjsonContentType, Err: err}
			return false
		}
		streamEventsTotal.Inc()
		s.current = event
		return true
	}

	if err := s.scanner.Err(); err != nil && !s.closed.Load() {
		s.err = err
	}
	return false
}

// Event returns the current event. Call it after [Stream.Next] returns true.
func (s *Stream) Event() StreamEvent {
	return s.current
}

// Err returns the error that terminated the stream, or nil if it ended
// normally or is still active.
func (s *Stream) Err() error {
	return s.err
}

// Close releases the underlying response body. Always call it, preferably
// with defer; it is safe to call multiple times and from other goroutines,
// which unblocks a reader waiting on the network.
func (s *Stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.body.Close()
}

// Collect drains the remaining events into a slice. This mirrors the
// non-streaming view of the endpoint and feeds directly into
// [PermlinkRequest.Results].
func (s *Stream) Collect() ([]StreamEvent, error) {
	var events []StreamEvent
	for s.Next() {
		events = append(events, s.current)
	}
	return events, s.Err()
}

// Events returns a channel that yields the remaining events. The channel
// closes when the stream ends, an error occurs, or ctx is cancelled;
// cancellation also closes the stream so a reader blocked on the network
// does not leak.
func (s *Stream) Events(ctx context.Context) <-chan StreamEvent {
	ch := make(chan StreamEvent)
	go func() {
		defer close(ch)

		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				_ = s.Close()
			case <-done:
			}
		}()
		defer close(done)

		for s.Next() {
			select {
			case ch <- s.current:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// CompileStream submits code for remote compilation and execution and
// returns the results as a lazy sequence of [StreamEvent] records, decoded
// one per ND-JSON line as they arrive. Saving is not supported on this
// endpoint; collect the events and pass them to [Client.CreatePermlink]
// instead.
//
// The client timeout from [WithTimeout] does not bound the stream; use a
// context deadline for long-running compilations. Cancelling ctx aborts the
// stream and leaves the transport reusable.
func (c *Client) CompileStream(ctx context.Context, req *StreamRequest) (*Stream, error) {
	if req == nil {
		return nil, fmt.Errorf("wandbox: stream request is required")
	}
	if req.Compiler == "" {
		return nil, fmt.Errorf("wandbox: compiler must be set")
	}

	rest, err := c.transport()
	if err != nil {
		return nil, err
	}

	body := *req
	if body.Codes == nil {
		body.Codes = []SourceFile{}
	}
	payload, err := json.Marshal(&body)
	if err != nil {
		return nil, fmt.Errorf("wandbox: encode compile.ndjson request: %w", err)
	}

	requestsTotal.WithLabelValues("compile.ndjson", http.MethodPost).Inc()
	resp, err := rest.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Content-Type", ndjsonContentType).
		SetHeader("Accept", "text/plain").
		SetBody(payload).
		Post("/compile.ndjson")
	if err != nil {
		requestFailuresTotal.WithLabelValues("compile.ndjson", http.MethodPost).Inc()
		return nil, fmt.Errorf("wandbox: POST compile.ndjson: %w", err)
	}

	raw := resp.RawBody()
	if resp.IsError() {
		defer func() { _ = raw.Close() }()
		requestFailuresTotal.WithLabelValues("compile.ndjson", http.MethodPost).Inc()
		limited, _ := io.ReadAll(io.LimitReader(raw, maxErrorBodySize))
		return nil, &StatusError{
			StatusCode: resp.StatusCode(),
			URL:        resp.Request.URL,
			Body:       string(limited),
		}
	}

	contentType := resp.Header().Get("Content-Type")
	if mediaType, err := checkCharset(contentType); err != nil {
		_ = raw.Close()
		return nil, err
	} else if mediaType != ndjsonContentType {
		_ = raw.Close()
		return nil, &DecodeError{ContentType: contentType, msg: "expected " + ndjsonContentType}
	}

	scanner := bufio.NewScanner(raw)
	scanner.Buffer(make([]byte, 64*1024), maxScanTokenSize)
	return &Stream{body: raw, scanner: scanner}, nil
}
