// Package transcript_tools registers the MCP tools that expose meeting
// transcripts to AI assistants.
//
// Four tools are provided:
//   - get_transcripts: list recent transcripts with optional date filters;
//     falls back to a reduced field set when the backend times out
//   - get_transcript_details: full transcript content including sentences
//   - search_transcripts: case-insensitive keyword search over titles,
//     sentence text and keywords
//   - generate_summary: render a transcript's summary as bullet points or a
//     paragraph
//
// Handlers validate caller input before any network call and render results
// as JSON (transcripts) or plain text (summaries). Every handler is wrapped
// with metrics and audit instrumentation.
package transcript_tools
