// Package cmd contains the CLI entrypoints for fireflies-mcp: the serve
// command that runs the MCP server over stdio or streamable HTTP, the
// version command, and generate-docs for tool reference generation.
package cmd
