// Package branding centralizes user-facing product naming.
package branding

// AppName is the product name shown to MCP clients and in logs.
const AppName = "mcpcalc"
