package fireflies

// Canonical GraphQL documents for every backend operation. The backend's
// schema accepts ISO-8601 DateTime scalars for the date bounds; epoch
// milliseconds only appear in responses (see Timestamp).

// listTranscriptsQuery fetches one page of transcripts with the fields the
// get_transcripts tool exposes.
const listTranscriptsQuery = `query ListTranscripts($limit: Int, $fromDate: DateTime, $toDate: DateTime) {
  transcripts(limit: $limit, fromDate: $fromDate, toDate: $toDate) {
    id
    title
    date
    duration
    transcript_url
    speakers {
      id
      name
    }
    summary {
      overview
      action_items
      keywords
      topics_discussed
    }
  }
}`

// listTranscriptsMinimalQuery is the degraded variant issued after the
// primary list query times out. It trades completeness for latency.
const listTranscriptsMinimalQuery = `query ListTranscriptsMinimal($limit: Int, $fromDate: DateTime, $toDate: DateTime) {
  transcripts(limit: $limit, fromDate: $fromDate, toDate: $toDate) {
    id
    title
    date
  }
}`

// transcriptDetailsQuery fetches the full shape of one transcript, including
// the sentence-level content.
const transcriptDetailsQuery = `query TranscriptDetails($transcriptId: String!) {
  transcript(id: $transcriptId) {
    id
    title
    date
    duration
    transcript_url
    speakers {
      id
      name
    }
    sentences {
      index
      speaker_name
      text
      start_time
      end_time
    }
    summary {
      overview
      action_items
      keywords
      topics_discussed
    }
  }
}`

// searchCandidatesQuery fetches one page of transcripts with just the fields
// the client-side search matches against (title, sentence text, keywords).
const searchCandidatesQuery = `query SearchCandidates($limit: Int) {
  transcripts(limit: $limit) {
    id
    title
    date
    duration
    transcript_url
    speakers {
      id
      name
    }
    sentences {
      index
      speaker_name
      text
      start_time
      end_time
    }
    summary {
      keywords
    }
  }
}`

// transcriptSummaryQuery fetches the summary-focused subset used by
// generate_summary.
const transcriptSummaryQuery = `query TranscriptSummary($transcriptId: String!) {
  transcript(id: $transcriptId) {
    id
    title
    summary {
      overview
      action_items
      keywords
      topics_discussed
    }
  }
}`
