package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/USBABC1/v60/models"
	"github.com/USBABC1/v60/pkg"
)

const (
	agentTemperature  = 0.4
	agentMaxTokens    = 1024
	apologyReply      = "Desculpe, ocorreu um problema ao falar com o assistente. Tente novamente."
	emptyReply        = "Desculpe, não consegui gerar resposta."
	fallbackLastReply = "Problema ao processar a solicitação. Tente novamente."
)

// ChatCompleter is the completion collaborator consumed by the orchestrator.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request pkg.ChatCompletionRequest) (*pkg.ChatCompletionResponse, error)
}

// MessageStore is the durable ordered history log consumed by the orchestrator.
type MessageStore interface {
	Append(ctx context.Context, sessionID string, msg *models.Message) (*models.Message, error)
	GetRecent(ctx context.Context, sessionID string, limit int) ([]models.Message, error)
	GetAll(ctx context.Context, sessionID string) ([]models.Message, error)
	LastOrder(ctx context.Context, sessionID string) (int, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// TurnResult is the single user-visible response produced for one inbound message
type TurnResult struct {
	Response string  `json:"response"`
	Action   *Action `json:"action,omitempty"`
}

// AgentLogic orchestrates one conversation turn: persist the user message,
// assemble the prompt, call the model, dispatch at most one tool invocation
// and compose the reply.
type AgentLogic struct {
	messages   MessageStore
	chat       ChatCompleter
	registry   *ToolRegistry
	logger     *slog.Logger
	model      string
	maxHistory int

	// Serializes turns of the same session; different sessions run concurrently.
	sessionLocks sync.Map
}

func NewAgentLogic(
	messages MessageStore,
	chat ChatCompleter,
	registry *ToolRegistry,
	logger *slog.Logger,
	model string,
	maxHistory int,
) *AgentLogic {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &AgentLogic{
		messages:   messages,
		chat:       chat,
		registry:   registry,
		logger:     logger,
		model:      model,
		maxHistory: maxHistory,
	}
}

func (l *AgentLogic) lockSession(sessionID string) *sync.Mutex {
	mu, _ := l.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// appendBestEffort persists a history entry, logging instead of failing the
// turn when the write is rejected.
func (l *AgentLogic) appendBestEffort(ctx context.Context, sessionID string, msg *models.Message) {
	if _, err := l.messages.Append(ctx, sessionID, msg); err != nil {
		l.logger.Error("failed to persist history entry",
			"session_id", sessionID,
			"role", msg.Role,
			"error", &StorageError{Op: "append", Err: err})
	}
}

// HandleMessage processes one inbound user message and always produces
// exactly one user-visible reply, degrading to an apology on internal errors.
func (l *AgentLogic) HandleMessage(ctx context.Context, sessionID, message, path string) *TurnResult {
	mu := l.lockSession(sessionID)
	mu.Lock()
	defer mu.Unlock()

	// Read the prior history before the new append so an append failure still
	// leaves the turn with its in-memory context.
	history, err := l.messages.GetRecent(ctx, sessionID, l.maxHistory)
	if err != nil {
		l.logger.Error("failed to read history, continuing with empty context",
			"session_id", sessionID,
			"error", &StorageError{Op: "read", Err: err})
		history = nil
	}

	l.appendBestEffort(ctx, sessionID, &models.Message{Role: models.RoleUser, Content: message})

	// The history keeps the user's plain words; the page context only travels
	// in the prompt.
	promptMessage := message
	if path != "" {
		promptMessage = fmt.Sprintf("Contexto: O usuário está na página '%s'.\n\nMensagem: %s", path, message)
	}

	temperature := float32(agentTemperature)
	req := pkg.ChatCompletionRequest{
		Model:       l.model,
		Messages:    BuildPrompt(history, promptMessage),
		MaxTokens:   agentMaxTokens,
		Temperature: &temperature,
	}

	resp, err := l.chat.CreateChatCompletion(ctx, req)
	if err != nil {
		l.logger.Error("chat completion failed", "session_id", sessionID, "error", err)
		l.appendBestEffort(ctx, sessionID, &models.Message{
			Role:    models.RoleAssistant,
			Content: fmt.Sprintf("Erro Interno: %v", err),
		})
		return &TurnResult{Response: apologyReply}
	}

	if len(resp.Choices) == 0 {
		l.logger.Warn("chat completion returned no choices", "session_id", sessionID)
		return &TurnResult{Response: emptyReply}
	}

	assistant := resp.Choices[0].Message
	text := assistant.Content
	calls := assistant.ToolCalls

	if text == "" && len(calls) == 0 {
		l.logger.Warn("chat completion returned empty content and no tool calls", "session_id", sessionID)
		return &TurnResult{Response: emptyReply}
	}

	// Persist the assistant turn: plain text, or the JSON-encoded invocation
	// list when the model called a tool without accompanying text.
	assistantContent := text
	if assistantContent == "" {
		encoded, err := json.Marshal(calls)
		if err != nil {
			l.logger.Error("failed to encode tool calls for history", "session_id", sessionID, "error", err)
		} else {
			assistantContent = string(encoded)
		}
	}
	l.appendBestEffort(ctx, sessionID, &models.Message{
		Role:    models.RoleAssistant,
		Content: assistantContent,
	})

	if len(calls) == 0 {
		return &TurnResult{Response: text}
	}

	// At most one invocation per turn: the first one wins.
	call := calls[0]
	outcome := l.registry.Dispatch(ctx, call)

	l.appendBestEffort(ctx, sessionID, &models.Message{
		Role:       models.RoleTool,
		Content:    outcome.Result,
		ToolCallID: call.ID,
		ToolName:   call.Function.Name,
	})

	if outcome.Action != nil {
		// Navigation-style tools: the reply is the model's own text, the tool
		// result stays in history for context continuity only.
		reply := text
		if reply == "" {
			reply = fmt.Sprintf("Ok, navegando para %v...", outcome.Action.Payload["path"])
		}
		return &TurnResult{Response: reply, Action: outcome.Action}
	}

	if outcome.Result == "" {
		return &TurnResult{Response: fallbackLastReply}
	}
	return &TurnResult{Response: outcome.Result}
}
