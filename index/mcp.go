package index

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fwojciec/krpcdocs"
)

// RegisterMCP registers the four documentation tools on an MCP server. The
// tools forward to svc and return JSON payloads as text content. Lookup
// misses are reported in-band as {"error":"not_found",...} payloads so an
// MCP client sees a regular tool result rather than a protocol failure.
func RegisterMCP(srv *mcp.Server, svc krpcdocs.DocService) {
	registerSearchTool(srv, svc)
	registerGetPageTool(srv, svc)
	registerGetMemberTool(srv, svc)
	registerReindexTool(srv, svc)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// notFoundPayload is the in-band shape for ENOTFOUND results.
type notFoundPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// registerTool wires a decoded endpoint onto the server: argument decoding
// failures and ENOTFOUND become in-band tool results, everything else a tool
// error.
func registerTool(srv *mcp.Server, tool *mcp.Tool, endpoint func(ctx context.Context, args json.RawMessage) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := endpoint(ctx, req.Params.Arguments)
		if err != nil {
			if krpcdocs.ErrorCode(err) == krpcdocs.ENOTFOUND {
				resp = &notFoundPayload{Error: "not_found", Message: krpcdocs.ErrorMessage(err)}
			} else {
				var res mcp.CallToolResult
				res.SetError(fmt.Errorf("%s", krpcdocs.ErrorMessage(err)))
				return &res, nil
			}
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// --- search ---

type searchReq struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func registerSearchTool(srv *mcp.Server, svc krpcdocs.DocService) {
	tool := &mcp.Tool{
		Name:        "search",
		Description: "Search the kRPC Python documentation. Returns scored results with highlight snippets.",
		InputSchema: inputSchema(map[string]any{
			"query": map[string]any{"type": "string", "description": "Free-text search query"},
			"limit": map[string]any{"type": "integer", "description": "Maximum results, clamped to [1, 20]. Defaults to 5."},
		}, []string{"query"}),
	}

	registerTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		r := searchReq{Limit: 5}
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, krpcdocs.Errorf(krpcdocs.EINVALID, "invalid arguments: %v", err)
		}
		return svc.Search(ctx, r.Query, r.Limit)
	})
}

// --- getPage ---

type getPageReq struct {
	SlugOrURL string `json:"slugOrUrl"`
}

func registerGetPageTool(srv *mcp.Server, svc krpcdocs.DocService) {
	tool := &mcp.Tool{
		Name:        "getPage",
		Description: "Fetch the full indexed text of a documentation page by slug or URL.",
		InputSchema: inputSchema(map[string]any{
			"slugOrUrl": map[string]any{"type": "string", "description": "Page slug (e.g. python/api/space-center.html) or full URL"},
		}, []string{"slugOrUrl"}),
	}

	registerTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r getPageReq
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, krpcdocs.Errorf(krpcdocs.EINVALID, "invalid arguments: %v", err)
		}
		return svc.Page(ctx, r.SlugOrURL)
	})
}

// --- getMember ---

type getMemberReq struct {
	Service string `json:"service"`
	Class   string `json:"class"`
	Member  string `json:"member"`
}

func registerGetMemberTool(srv *mcp.Server, svc krpcdocs.DocService) {
	tool := &mcp.Tool{
		Name:        "getMember",
		Description: "Resolve an API member such as SpaceCenter.Vessel.flight to its documentation anchor. Matching is fuzzy; close alternatives are included.",
		InputSchema: inputSchema(map[string]any{
			"service": map[string]any{"type": "string", "description": "Service name, e.g. SpaceCenter"},
			"class":   map[string]any{"type": "string", "description": "Class name, e.g. Vessel"},
			"member":  map[string]any{"type": "string", "description": "Member name, e.g. flight"},
		}, []string{"service", "class", "member"}),
	}

	registerTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r getMemberReq
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, krpcdocs.Errorf(krpcdocs.EINVALID, "invalid arguments: %v", err)
		}
		return svc.Member(ctx, r.Service, r.Class, r.Member)
	})
}

// --- reindex ---

type reindexReq struct {
	Force bool `json:"force"`
}

func registerReindexTool(srv *mcp.Server, svc krpcdocs.DocService) {
	tool := &mcp.Tool{
		Name:        "reindex",
		Description: "Rebuild the documentation index. A no-op while the index is fresh unless force is set.",
		InputSchema: inputSchema(map[string]any{
			"force": map[string]any{"type": "boolean", "description": "Re-crawl even if the index is fresh"},
		}, nil),
	}

	registerTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r reindexReq
		if len(args) > 0 {
			if err := json.Unmarshal(args, &r); err != nil {
				return nil, krpcdocs.Errorf(krpcdocs.EINVALID, "invalid arguments: %v", err)
			}
		}
		return svc.Reindex(ctx, r.Force)
	})
}
