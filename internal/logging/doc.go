// Package logging sets up structured JSON logging for promptdex.
// Logs go to a size-rotated file under ~/.promptdex/logs/ and, outside MCP
// mode, to stderr as well. The package also reads those files back for
// the `promptdex logs` command.
package logging
