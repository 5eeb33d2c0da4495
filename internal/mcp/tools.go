// ABOUTME: MCP tool definitions and registration for the assistant
// ABOUTME: Exposes the conversation engine to LLM agents over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/pmcavoy/aide/internal/core"
)

// RegisterTools registers all assistant tools with the MCP server.
func RegisterTools(server *mcpserver.MCPServer, assistant *core.Assistant) *Handlers {
	handlers := &Handlers{assistant: assistant}

	// 1. send_message - process one utterance
	server.AddTool(mcp.Tool{
		Name:        "send_message",
		Description: "Send a message to the assistant. Classifies the intent (weather, news, calendar, greetings...) and returns the assistant's reply.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The user's message",
				},
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation to continue; omit to start a new one",
				},
				"location": map[string]interface{}{
					"type":        "string",
					"description": "Optional default location preference for a new conversation",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.SendMessage)

	// 2. get_history - recent messages of a conversation
	server.AddTool(mcp.Tool{
		Name:        "get_history",
		Description: "Get the most recent messages of a conversation in chronological order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation ID",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of messages to return (default: 20)",
					"default":     20,
				},
			},
			Required: []string{"conversation_id"},
		},
	}, handlers.GetHistory)

	// 3. get_conversation - conversation metadata and context
	server.AddTool(mcp.Tool{
		Name:        "get_conversation",
		Description: "Get conversation metadata: timestamps, message count, context and preferences.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation ID",
				},
			},
			Required: []string{"conversation_id"},
		},
	}, handlers.GetConversation)

	return handlers
}
