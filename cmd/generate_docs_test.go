package cmd

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.NewTool("get_transcripts",
		mcp.WithDescription("List recent meeting transcripts"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of transcripts to return"),
		),
		mcp.WithString("from_date",
			mcp.Required(),
			mcp.Description("Only include meetings on or after this date"),
		),
	)

	md := generateToolMarkdown(tool)

	if !strings.Contains(md, "## get_transcripts") {
		t.Errorf("expected tool heading, got:\n%s", md)
	}
	if !strings.Contains(md, "List recent meeting transcripts") {
		t.Errorf("expected description, got:\n%s", md)
	}
	if !strings.Contains(md, "`from_date` (required)") {
		t.Errorf("expected required marker for from_date, got:\n%s", md)
	}
	if !strings.Contains(md, "`limit` (optional)") {
		t.Errorf("expected optional marker for limit, got:\n%s", md)
	}
}

func TestGenerateToolsMarkdown_SortsAndIndexes(t *testing.T) {
	tools := []mcp.Tool{
		mcp.NewTool("search_transcripts", mcp.WithDescription("Search")),
		mcp.NewTool("generate_summary", mcp.WithDescription("Summarize")),
	}

	md := generateToolsMarkdown(tools)

	if !strings.Contains(md, "## Table of Contents") {
		t.Errorf("expected table of contents, got:\n%s", md)
	}
	if !strings.Contains(md, "- [generate_summary](#generate-summary)") {
		t.Errorf("expected TOC entry with anchor, got:\n%s", md)
	}

	// Sorted alphabetically: generate_summary before search_transcripts.
	genIdx := strings.Index(md, "## generate_summary")
	searchIdx := strings.Index(md, "## search_transcripts")
	if genIdx == -1 || searchIdx == -1 || genIdx > searchIdx {
		t.Errorf("expected sorted tool sections, got:\n%s", md)
	}
}

func TestContains(t *testing.T) {
	if !contains([]string{"a", "b"}, "b") {
		t.Error("expected contains to find element")
	}
	if contains([]string{"a", "b"}, "c") {
		t.Error("expected contains to miss absent element")
	}
	if contains(nil, "a") {
		t.Error("expected contains to handle nil slice")
	}
}

func TestGetPropertyType(t *testing.T) {
	if got := getPropertyType(map[string]interface{}{"type": "string"}); got != "string" {
		t.Errorf("expected 'string', got %q", got)
	}
	if got := getPropertyType(map[string]interface{}{}); got != "any" {
		t.Errorf("expected 'any', got %q", got)
	}
}
