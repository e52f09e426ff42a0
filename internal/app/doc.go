// Package app contains the core application logic. It wires the project
// configuration, the component registry and the two sinks into the commands
// the CLI exposes, decoupled from any specific entrypoint.
package app
