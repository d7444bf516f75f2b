// Package domain defines the calculator MCP tool surface.
//
// Each tool pairs a typed input/output contract with a handler that
// delegates to the calc package. Handlers return plain errors; the MCP
// runtime renders them as tool-level error results, never transport
// failures.
package domain
