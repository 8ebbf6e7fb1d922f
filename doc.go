// Package wandbox provides an HTTP client for the Wandbox
// compile-and-execute API at https://wandbox.org.
//
// The client wraps [github.com/go-resty/resty/v2] with lazy connection
// management, optional retries, and pluggable logging. Methods map 1:1 to
// remote endpoints: listing compilers, fetching code templates, submitting
// code for compilation (buffered or streamed as ND-JSON), and reading or
// creating permanent links to saved results.
//
// # Basic Usage
//
//	c := wandbox.New()
//	defer c.Close()
//
//	result, err := c.Compile(ctx, &wandbox.CompileRequest{
//	    Code:     `println!("hello")`,
//	    Compiler: "rust-head",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.ProgramOutput)
//
// # Lifecycle
//
// A client owns at most one HTTP transport. [Client.Connect] creates it
// explicitly; otherwise the first endpoint call creates it lazily. Both
// [Client.Connect] and [Client.Close] are idempotent, and a closed client
// can be reconnected. Every connected client is tracked in a package-level
// registry; [CloseActive] drains them all concurrently at the end of the
// owning scope.
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained; the
// resulting options are validated when the transport is created. Retries
// are off by default; enable them with [WithRetryCount], and see
// [DefaultRetryPolicy] for what is retried. TLS certificate verification is
// on by default; [WithInsecureSkipVerify] is the explicit opt-out.
//
// # Streaming
//
// [Client.CompileStream] returns a [Stream] that decodes one ND-JSON event
// per line as it arrives. Iterate with [Stream.Next]/[Stream.Event], drain
// with [Stream.Collect], or range over [Stream.Events]. Responses are
// decoded strictly by their declared content type: application/x-ndjson is
// read line by line, anything else as a single JSON document.
//
// # Errors
//
// A non-2xx response surfaces as a [StatusError] carrying the status code
// and request URL; an unparseable body surfaces as a [DecodeError];
// transport failures are wrapped and inspectable with errors.Is/As. Nothing
// is caught or retried internally beyond the opt-in retry policy.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library, or use [ZerologLogger] for zerolog.
// The default [NoopLogger] discards all log output. Setting
// WANDBOX_DEBUG=true (or DEBUG=true) additionally dumps full requests and
// responses; keep it off in production.
package wandbox
