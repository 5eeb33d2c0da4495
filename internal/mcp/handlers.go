// ABOUTME: MCP tool handler implementations for the assistant
// ABOUTME: Translates tool calls into core engine operations with JSON results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pmcavoy/aide/internal/core"
)

// Handlers contains the handler functions for all assistant tools.
type Handlers struct {
	assistant *core.Assistant
}

// SendMessage handles the send_message tool.
func (h *Handlers) SendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	conversationID := request.GetString("conversation_id", "")
	preferences := map[string]string{}
	if location := request.GetString("location", ""); location != "" {
		preferences["location"] = location
	}

	result := h.assistant.Process(ctx, message, conversationID, preferences)
	if !result.Success {
		return mcp.NewToolResultError(result.Error), nil
	}

	response := map[string]interface{}{
		"conversation_id": result.ConversationID,
		"intent":          result.Intent,
		"confidence":      result.Confidence,
		"message":         result.Response.Message,
		"response_type":   result.Response.ResponseType,
		"suggestions":     result.Response.Suggestions,
		"actions_taken":   result.Response.ActionsTaken,
	}
	responseJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetHistory handles the get_history tool.
func (h *Handlers) GetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}
	limit := request.GetInt("limit", 20)

	messages := h.assistant.History(conversationID, limit)

	response := map[string]interface{}{
		"conversation_id": conversationID,
		"total_messages":  len(messages),
		"messages":        messages,
	}
	responseJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetConversation handles the get_conversation tool.
func (h *Handlers) GetConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}

	info, ok := h.assistant.ConversationInfo(conversationID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("conversation %q not found", conversationID)), nil
	}

	responseJSON, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
