// Package mcpserver exposes registered tools over the Model Context Protocol
// using the official SDK. Tool parameter specs are translated into JSON
// schemas so MCP clients can discover and validate tool inputs.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tagus/ontograph/pkg/interfaces"
	"github.com/tagus/ontograph/pkg/logging"
)

// Server wraps an MCP server and bridges it to interfaces.Tool
type Server struct {
	impl   *mcp.Server
	logger logging.Logger
}

// Option represents an option for configuring the server
type Option func(*Server)

// WithLogger sets the logger for the server
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a new MCP server with the given implementation info
func New(name, version string, options ...Option) *Server {
	server := &Server{
		impl: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
		logger: logging.New(),
	}

	for _, option := range options {
		option(server)
	}

	return server
}

// Register exposes a tool over MCP. Internal tools are skipped.
func (s *Server) Register(tool interfaces.Tool) {
	if tool.Internal() {
		return
	}

	s.impl.AddTool(&mcp.Tool{
		Name:        tool.Name(),
		Title:       tool.DisplayName(),
		Description: tool.Description(),
		InputSchema: SchemaForTool(tool),
	}, s.handlerFor(tool))
}

// RegisterAll registers every tool from the registry
func (s *Server) RegisterAll(registry interfaces.ToolRegistry) {
	for _, tool := range registry.List() {
		s.Register(tool)
	}
}

// handlerFor adapts a tool's Run method to the SDK handler signature.
func (s *Server) handlerFor(tool interfaces.Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.runTool(ctx, tool, req.Params.Arguments), nil
	}
}

// runTool dispatches a call and converts the outcome. Tool errors become
// error results on the MCP level rather than protocol errors, so the client
// sees the message.
func (s *Server) runTool(ctx context.Context, tool interfaces.Tool, arguments json.RawMessage) *mcp.CallToolResult {
	input := "{}"
	if len(arguments) > 0 {
		input = string(arguments)
	}

	s.logger.Debug(ctx, "Dispatching tool call", map[string]interface{}{
		"tool_name": tool.Name(),
	})

	output, err := tool.Run(ctx, input)
	if err != nil {
		s.logger.Error(ctx, "Tool call failed", map[string]interface{}{
			"tool_name": tool.Name(),
			"error":     err.Error(),
		})
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			IsError: true,
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}
}

// Run serves MCP over stdio until the context is cancelled
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info(ctx, "Starting MCP server over stdio", nil)
	if err := s.impl.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

// SchemaForTool converts a tool's parameter specs into a JSON schema
func SchemaForTool(tool interfaces.Tool) *jsonschema.Schema {
	params := tool.Parameters()

	properties := make(map[string]*jsonschema.Schema, len(params))
	var required []string

	for name, spec := range params {
		property := &jsonschema.Schema{
			Type:        spec.Type,
			Description: spec.Description,
		}
		if spec.Default != nil {
			if encoded, err := json.Marshal(spec.Default); err == nil {
				property.Default = encoded
			}
		}
		properties[name] = property

		if spec.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
