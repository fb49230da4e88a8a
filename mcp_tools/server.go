package mcp_tools

import (
	"context"
	"net/http"

	"github.com/KincaidYang/whoisparser/metrics"
	"github.com/KincaidYang/whoisparser/whois_tools"
	"github.com/KincaidYang/whoisparser/whois_tools/structs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RawInput is the argument of the text-only tools.
type RawInput struct {
	Raw string `json:"raw" jsonschema:"raw WHOIS response text"`
}

// ClassifyOutput is the result of whois_classify.
type ClassifyOutput struct {
	Verdict string `json:"verdict" jsonschema:"registered, unregistered, rate_limited or unknown"`
	Tier    string `json:"tier" jsonschema:"name of the rule that decided"`
}

// CleanOutput is the result of whois_clean.
type CleanOutput struct {
	Clean string `json:"clean"`
}

// InterpretInput is the argument of whois_interpret.
type InterpretInput struct {
	Raw     string   `json:"raw" jsonschema:"raw WHOIS response text"`
	Domain  string   `json:"domain,omitempty" jsonschema:"domain the response belongs to"`
	Servers []string `json:"servers,omitempty" jsonschema:"WHOIS server templates, {{domain}} is substituted"`
}

// InterpretOutput is the result of whois_interpret.
type InterpretOutput struct {
	Verdict    string              `json:"verdict"`
	Registered *bool               `json:"registered"`
	Record     structs.WhoIsRecord `json:"record"`
}

// NewServer returns an MCP server exposing the interpretation engine.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "whoisparser", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "whois_classify",
		Description: "Decide whether a raw WHOIS response describes a registered, unregistered or rate limited domain.",
	}, Classify)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "whois_clean",
		Description: "Strip comments, notices and blank lines from a raw WHOIS response.",
	}, Clean)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "whois_interpret",
		Description: "Turn a raw WHOIS response into a structured registration record.",
	}, Interpret)

	return server
}

// Handler serves server over streamable HTTP.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// Classify implements whois_classify.
func Classify(ctx context.Context, req *mcp.CallToolRequest, in RawInput) (*mcp.CallToolResult, ClassifyOutput, error) {
	verdict, tier := whois_tools.ClassifyTier(in.Raw)
	metrics.ObserveVerdict(verdict.String(), tier)
	return nil, ClassifyOutput{Verdict: verdict.String(), Tier: tier}, nil
}

// Clean implements whois_clean.
func Clean(ctx context.Context, req *mcp.CallToolRequest, in RawInput) (*mcp.CallToolResult, CleanOutput, error) {
	return nil, CleanOutput{Clean: whois_tools.CleanUnwantedWhoIsResult(in.Raw)}, nil
}

// Interpret implements whois_interpret.
func Interpret(ctx context.Context, req *mcp.CallToolRequest, in InterpretInput) (*mcp.CallToolResult, InterpretOutput, error) {
	result := whois_tools.NewWhoIsResult(in.Raw, whois_tools.MatchPatterns(in.Raw), in.Domain, in.Servers)
	metrics.ObserveVerdict(result.Verdict().String(), result.Tier())
	return nil, InterpretOutput{
		Verdict:    result.Verdict().String(),
		Registered: result.IsRegistered(),
		Record:     result.Record(),
	}, nil
}
