package interfaces

import "context"

// ParameterSpec describes a single tool parameter
type ParameterSpec struct {
	// Type is the JSON schema type ("string", "integer", "number", "boolean")
	Type string

	// Description explains the parameter to the calling model
	Description string

	// Required indicates whether the parameter must be provided
	Required bool

	// Default is the value used when the parameter is absent
	Default interface{}
}

// Tool represents a capability exposed to a calling agent
type Tool interface {
	// Name returns the name of the tool
	Name() string

	// DisplayName returns a human-friendly name for the tool
	DisplayName() string

	// Description returns a description of what the tool does
	Description() string

	// Internal indicates whether the tool is hidden from end users
	Internal() bool

	// Parameters returns the parameters that the tool accepts
	Parameters() map[string]ParameterSpec

	// Run executes the tool with a JSON-encoded argument object
	Run(ctx context.Context, input string) (string, error)
}

// ToolRegistry manages a set of tools
type ToolRegistry interface {
	Register(tool Tool)
	Get(name string) (Tool, bool)
	List() []Tool
}

// VectorStoreConfig contains connection settings for a vector store
type VectorStoreConfig struct {
	Host   string
	Scheme string
	APIKey string
}
