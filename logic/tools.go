package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/USBABC1/v60/models"
	"github.com/USBABC1/v60/pkg"
)

var validate = validator.New()

// Action is a client-facing side effect accompanying a reply
type Action struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ToolOutcome is the human-readable result of one tool execution plus an
// optional client action
type ToolOutcome struct {
	Result string
	Action *Action
}

// Tool executes one domain operation over raw JSON arguments. Business-level
// failures (missing argument, unknown campaign) are reported inside the
// ToolOutcome result string; the error return is reserved for infrastructure
// failures.
type Tool interface {
	Name() string
	Execute(ctx context.Context, args json.RawMessage) (ToolOutcome, error)
}

// ToolRegistry maps tool names to their implementations
type ToolRegistry struct {
	tools  map[string]Tool
	logger *slog.Logger
}

func NewToolRegistry(logger *slog.Logger) *ToolRegistry {
	return &ToolRegistry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register inserts a tool when its name is not in use
func (r *ToolRegistry) Register(tool Tool) error {
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}
	r.tools[name] = tool
	return nil
}

// Get fetches a tool by name
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Dispatch executes one tool invocation. It never returns an error: unknown
// tools and infrastructure failures are normalized into result strings so the
// turn always completes.
func (r *ToolRegistry) Dispatch(ctx context.Context, call pkg.ToolCall) ToolOutcome {
	name := call.Function.Name
	tool, ok := r.tools[name]
	if !ok {
		r.logger.Warn("unknown tool requested", "tool", name)
		return ToolOutcome{Result: fmt.Sprintf("Erro: Ferramenta '%s' desconhecida.", name)}
	}

	args := json.RawMessage(call.Function.Arguments)
	if !json.Valid(args) || len(args) == 0 {
		argErr := &ToolArgumentError{Tool: name, Reason: "arguments are not valid JSON"}
		r.logger.Warn("falling back to empty tool arguments", "tool", name, "error", argErr)
		args = json.RawMessage("{}")
	}

	outcome, err := tool.Execute(ctx, args)
	if err != nil {
		r.logger.Error("tool execution failed", "tool", name, "error", &ToolExecutionError{Tool: name, Err: err})
		return ToolOutcome{Result: fmt.Sprintf("❌ Falha ao executar '%s'. Tente novamente.", name)}
	}
	return outcome
}

// navigateTool produces a client navigation action; it touches no stored data.
type navigateTool struct{}

func NewNavigateTool() Tool { return navigateTool{} }

func (navigateTool) Name() string { return "navigate" }

func (navigateTool) Execute(ctx context.Context, args json.RawMessage) (ToolOutcome, error) {
	var params struct {
		Path string `json:"path" validate:"required"`
	}
	if err := json.Unmarshal(args, &params); err != nil || validate.Struct(params) != nil {
		return ToolOutcome{Result: "❌ Falha: Informe a página de destino."}, nil
	}
	return ToolOutcome{
		Result: fmt.Sprintf("(Ação de navegação para %s)", params.Path),
		Action: &Action{
			Type:    "navigate",
			Payload: map[string]interface{}{"path": params.Path},
		},
	}, nil
}

// CampaignService is the campaign collaborator consumed by the tools.
// Lookups report absence as a nil record, not an error.
type CampaignService interface {
	ListNames(ctx context.Context) ([]string, error)
	GetByName(ctx context.Context, name string) (*models.Campaign, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	FindIDByName(ctx context.Context, name string) (string, error)
	Create(ctx context.Context, c *models.Campaign) error
	Patch(ctx context.Context, id string, fields map[string]interface{}) error
}

// MetricsService aggregates period performance for a campaign.
type MetricsService interface {
	SumCostAndRevenue(ctx context.Context, campaignID string) (float64, float64, error)
}
