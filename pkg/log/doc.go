// Package log provides the logging abstraction used by detdump components.
//
// It defines a small Logger interface that can be backed by any logging
// library. A zerolog adapter is provided for the CLI, and a no-op logger
// for library and test use.
package log
