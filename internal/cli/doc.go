// Package cli builds the jsonui command tree. It parses flags and JSONUI_*
// environment variables into the application's configuration, runs the
// requested command, and maps failures to process exit codes.
package cli
