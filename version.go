package wandbox

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
const Version = "0.1.0"

// userAgent identifies this SDK on the wire.
const userAgent = "wandbox-go/" + Version
