// Package app contains the core application logic. It loads configuration,
// assembles the configured system from the compiled-in modules and runs it,
// decoupled from any specific entrypoint like a CLI or server.
package app
