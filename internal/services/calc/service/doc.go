// Package service hosts the MCP calculator server runtime.
//
// It registers the tool modules from the domain package onto an MCP server
// and serves that server over stdio or HTTP/SSE. Transport selection happens
// at startup; both transports share the same tool registrations.
package service
