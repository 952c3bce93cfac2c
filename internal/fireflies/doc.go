// Package fireflies provides a client for the Fireflies.ai meeting
// transcription GraphQL API.
//
// The client adapts the backend's single RPC endpoint (POST {query,
// variables} with a bearer token) into typed operations: listing transcripts,
// fetching full transcript details, client-side substring search, and
// retrieving summaries. Failures are classified into a small taxonomy
// (Unauthorized, NotFound, InvalidParams, Timeout, Internal) so the MCP tool
// layer can surface them uniformly.
//
// Listing has a degraded-query fallback: when the primary query times out, a
// single retry with a minimal field set (id, title, date) is issued and the
// reduced result is returned instead of the timeout, flagged so callers can
// annotate their output.
//
// The package also contains the summary synthesizer, a pure function that
// renders a transcript's heterogeneous summary fields (which may arrive as a
// string or a list per field) into bullet-point or paragraph text.
//
// A Client holds only immutable configuration (endpoint, API key, logger), so
// concurrent tool invocations share one instance without locking.
package fireflies
