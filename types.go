package wandbox

// Compiler describes one compiler/language target offered by Wandbox.
// Descriptors are read-only and sourced entirely from the list endpoint.
type Compiler struct {
	// Name is the identifier passed in compile requests, e.g. "gcc-head".
	Name string `json:"name"`

	// Version is the compiler's own version string.
	Version string `json:"version"`

	// Language is the display language, e.g. "C++".
	Language string `json:"language"`

	// DisplayName is the human-readable compiler name.
	DisplayName string `json:"display-name"`

	// DisplayCompileCommand is the command line shown to users,
	// e.g. "g++ prog.cc".
	DisplayCompileCommand string `json:"display-compile-command"`

	// CompilerOptionRaw reports whether the compiler accepts raw
	// compile-time command-line flags.
	CompilerOptionRaw bool `json:"compiler-option-raw"`

	// RuntimeOptionRaw reports whether the compiler accepts raw
	// run-time command-line flags.
	RuntimeOptionRaw bool `json:"runtime-option-raw"`

	// Switches lists the selectable compile switches.
	Switches []Switch `json:"switches,omitempty"`

	// Templates names the code templates available for this compiler.
	Templates []string `json:"templates,omitempty"`
}

// Switch is one selectable compile switch. Single switches carry a boolean
// Default and no Options; select switches carry the default option name in
// Default and the candidates in Options.
type Switch struct {
	Name         string         `json:"name,omitempty"`
	Default      any            `json:"default,omitempty"`
	DisplayFlags string         `json:"display-flags,omitempty"`
	DisplayName  string         `json:"display-name,omitempty"`
	Options      []SwitchOption `json:"options,omitempty"`
}

// SwitchOption is one candidate of a select switch.
type SwitchOption struct {
	Name         string `json:"name"`
	DisplayFlags string `json:"display-flags"`
	DisplayName  string `json:"display-name"`
}

// SourceFile is a supplementary source file submitted alongside the primary
// code, importable from it under File's name.
type SourceFile struct {
	File string `json:"file"`
	Code string `json:"code"`
}

// CompileRequest is the input to [Client.Compile]. Field names are
// serialized with the hyphenated wire spelling the API expects; the
// zero value of every field is a valid request parameter.
type CompileRequest struct {
	// Code is the primary source file.
	Code string `json:"code"`

	// Codes lists supplementary source files.
	Codes []SourceFile `json:"codes"`

	// Compiler is the compiler identifier from [Client.Compilers].
	Compiler string `json:"compiler"`

	// CompilerOptionRaw enables raw compile-time flags on this endpoint.
	CompilerOptionRaw bool `json:"compiler-option-raw"`

	// Options is the free-form switch selection, comma separated.
	Options string `json:"options"`

	// RuntimeOptionRaw enables raw run-time flags on this endpoint.
	RuntimeOptionRaw bool `json:"runtime-option-raw"`

	// Save requests a permanent link for this compilation; the result
	// then carries Permlink and URL.
	Save bool `json:"save"`

	// Stdin is fed to the program's standard input.
	Stdin string `json:"stdin"`
}

// CompileResult is the output of [Client.Compile]. The server omits fields
// that do not apply; Permlink and URL are present only when the request set
// Save.
type CompileResult struct {
	Status          string `json:"status,omitempty"`
	Signal          string `json:"signal,omitempty"`
	CompilerOutput  string `json:"compiler_output,omitempty"`
	CompilerError   string `json:"compiler_error,omitempty"`
	CompilerMessage string `json:"compiler_message,omitempty"`
	ProgramOutput   string `json:"program_output,omitempty"`
	ProgramError    string `json:"program_error,omitempty"`
	ProgramMessage  string `json:"program_message,omitempty"`
	Permlink        string `json:"permlink,omitempty"`
	URL             string `json:"url,omitempty"`
}

// StreamRequest is the input to [Client.CompileStream]. It mirrors
// [CompileRequest] except that the raw-option flags are free-form strings
// on this endpoint and saving is not applicable.
type StreamRequest struct {
	Code              string       `json:"code"`
	Codes             []SourceFile `json:"codes"`
	Compiler          string       `json:"compiler"`
	CompilerOptionRaw string       `json:"compiler-option-raw"`
	Options           string       `json:"options"`
	RuntimeOptionRaw  string       `json:"runtime-option-raw"`
	Stdin             string       `json:"stdin"`
}

// StreamEvent is one decoded record from the ND-JSON compile stream.
// Every event carries exactly a type tag and a data payload.
//
// Common types: "Control" (e.g. "Start", "Finish"), "CompilerMessageS",
// "CompilerMessageE", "StdOut", "StdErr", "ExitCode", "Signal".
type StreamEvent struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// PermlinkRequest is the input to [Client.CreatePermlink]. It carries the
// standard request fields plus the stream events produced by a prior
// [Client.CompileStream] run.
type PermlinkRequest struct {
	Code              string        `json:"code"`
	Codes             []SourceFile  `json:"codes"`
	Compiler          string        `json:"compiler"`
	CompilerOptionRaw string        `json:"compiler-option-raw"`
	Options           string        `json:"options"`
	Results           []StreamEvent `json:"results"`
	RuntimeOptionRaw  string        `json:"runtime-option-raw"`
	Stdin             string        `json:"stdin"`
}

// PermlinkCreated is the server's acknowledgement of [Client.CreatePermlink].
type PermlinkCreated struct {
	Permlink string `json:"permlink"`
	URL      string `json:"url"`
	Success  bool   `json:"success"`
}

// PermlinkRecord is a previously saved compile request/result pair as
// returned by [Client.GetPermlink]. Parameter echoes the saved request
// fields under their wire names.
type PermlinkRecord struct {
	Parameter map[string]any `json:"parameter,omitempty"`
	Results   []StreamEvent  `json:"results,omitempty"`
	Result    *CompileResult `json:"result,omitempty"`
}

// User is the login status returned by [Client.GetUser].
type User struct {
	Login    bool   `json:"login"`
	Username string `json:"username"`
}
