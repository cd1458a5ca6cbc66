package parameter

// Application - Files
const (
	// ConfigFile is the configuration file read when present in the working directory
	ConfigFile = "routega.toml"

	// LogDir and LogFile locate the debug log
	LogDir  = "logs"
	LogFile = "routega.log"

	// LogMaxSize rotates the debug log once it grows past this many bytes
	LogMaxSize = 10 * 1024 * 1024
)

// Application - Run History
const (
	// StoreKind is the default history backend: sqlite, or memory for a single process
	StoreKind = "sqlite"

	// StorePath is the default sqlite database file
	StorePath = "./routega.db"
)
