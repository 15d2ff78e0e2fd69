package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fwojciec/krpcdocs/index"
)

// Run executes the serve command: an MCP server speaking JSON-RPC over
// stdio until the client disconnects.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "krpcdocs", Version: version}, nil)
	index.RegisterMCP(srv, deps.Service)

	return srv.Run(deps.Ctx, &mcp.StdioTransport{})
}
