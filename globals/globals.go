package globals

const VERSION = "v0.1.0"

// LOG enables progress output, DEBUG enables detailed tracing. Both are set from the
// command line.
var LOG, DEBUG bool
