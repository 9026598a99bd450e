package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/USBABC1/v60/models"
)

// listCampaignsTool reads campaign names; an empty list is not an error.
type listCampaignsTool struct {
	campaigns CampaignService
}

func NewListCampaignsTool(campaigns CampaignService) Tool {
	return &listCampaignsTool{campaigns: campaigns}
}

func (t *listCampaignsTool) Name() string { return "list_campaigns" }

func (t *listCampaignsTool) Execute(ctx context.Context, args json.RawMessage) (ToolOutcome, error) {
	names, err := t.campaigns.ListNames(ctx)
	if err != nil {
		return ToolOutcome{}, err
	}
	if len(names) == 0 {
		return ToolOutcome{Result: "ℹ️ Nenhuma campanha."}, nil
	}
	return ToolOutcome{
		Result: fmt.Sprintf("📁 Campanhas (%d): %s.", len(names), strings.Join(names, ", ")),
	}, nil
}

// getCampaignDetailsTool looks up one campaign by exact name and aggregates
// its fixed costs with the summed period cost/revenue.
type getCampaignDetailsTool struct {
	campaigns CampaignService
	metrics   MetricsService
	logger    *slog.Logger
}

func NewGetCampaignDetailsTool(campaigns CampaignService, metrics MetricsService, logger *slog.Logger) Tool {
	return &getCampaignDetailsTool{campaigns: campaigns, metrics: metrics, logger: logger}
}

func (t *getCampaignDetailsTool) Name() string { return "get_campaign_details" }

func (t *getCampaignDetailsTool) Execute(ctx context.Context, args json.RawMessage) (ToolOutcome, error) {
	var params struct {
		CampaignName string `json:"campaign_name" validate:"required"`
	}
	if err := json.Unmarshal(args, &params); err != nil || validate.Struct(params) != nil {
		return ToolOutcome{Result: "❌ Especifique nome."}, nil
	}

	c, err := t.campaigns.GetByName(ctx, params.CampaignName)
	if err != nil {
		return ToolOutcome{}, err
	}
	if c == nil {
		// Not an error: absence is a normal, user-visible outcome
		return ToolOutcome{Result: fmt.Sprintf("ℹ️ Campanha \"%s\" não encontrada.", params.CampaignName)}, nil
	}

	totalCost, totalRevenue, err := t.metrics.SumCostAndRevenue(ctx, c.ID)
	if err != nil {
		t.logger.Error("failed to aggregate campaign metrics", "campaign_id", c.ID, "error", err)
		totalCost, totalRevenue = 0, 0
	}

	status := c.Status
	if status == "" {
		status = "N/A"
	}
	result := fmt.Sprintf(
		"📊 Detalhes \"%s\" (ID: %s): St %s, Orç.T %s, Orç.D %s. Custos Fixos (T:%s, C:%s, O:%s). Período(Custo %s, Receita %s).",
		c.Name, c.ID, status,
		formatCurrency(c.Budget), formatCurrency(c.DailyBudget),
		formatCurrency(c.CostTraffic), formatCurrency(c.CostCreative), formatCurrency(c.CostOperational),
		formatCurrency(totalCost), formatCurrency(totalRevenue),
	)
	return ToolOutcome{Result: result}, nil
}

// createCampaignTool creates a new draft campaign from a name and daily budget.
type createCampaignTool struct {
	campaigns CampaignService
}

func NewCreateCampaignTool(campaigns CampaignService) Tool {
	return &createCampaignTool{campaigns: campaigns}
}

func (t *createCampaignTool) Name() string { return "create_campaign" }

func (t *createCampaignTool) Execute(ctx context.Context, args json.RawMessage) (ToolOutcome, error) {
	var params struct {
		Name   string   `json:"name" validate:"required"`
		Budget *float64 `json:"budget" validate:"required,gte=0"`
	}
	if err := json.Unmarshal(args, &params); err != nil || validate.Struct(params) != nil {
		return ToolOutcome{Result: "❌ Falha: Nome e orçamento diário obrigatórios."}, nil
	}

	c := &models.Campaign{
		ID:          uuid.NewString(),
		Name:        params.Name,
		DailyBudget: *params.Budget,
		Status:      models.CampaignStatusDraft,
	}
	if err := t.campaigns.Create(ctx, c); err != nil {
		return ToolOutcome{}, err
	}
	return ToolOutcome{Result: fmt.Sprintf("✅ Campanha \"%s\" (ID: %s) criada!", c.Name, c.ID)}, nil
}

// Fields the model is allowed to patch on a campaign.
var modifiableCampaignFields = map[string]bool{
	"name":             true,
	"daily_budget":     true,
	"status":           true,
	"budget":           true,
	"cost_traffic":     true,
	"cost_creative":    true,
	"cost_operational": true,
}

// modifyCampaignTool patches an existing campaign identified by name or id.
type modifyCampaignTool struct {
	campaigns CampaignService
}

func NewModifyCampaignTool(campaigns CampaignService) Tool {
	return &modifyCampaignTool{campaigns: campaigns}
}

func (t *modifyCampaignTool) Name() string { return "modify_campaign" }

func (t *modifyCampaignTool) Execute(ctx context.Context, args json.RawMessage) (ToolOutcome, error) {
	var params struct {
		Identifier struct {
			Name string `json:"name"`
			ID   string `json:"id"`
		} `json:"identifier"`
		FieldsToUpdate map[string]interface{} `json:"fields_to_update"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return ToolOutcome{Result: "❌ Falha: Identifique a campanha."}, nil
	}
	if params.Identifier.Name == "" && params.Identifier.ID == "" {
		return ToolOutcome{Result: "❌ Falha: Identifique a campanha."}, nil
	}

	fields := make(map[string]interface{})
	for k, v := range params.FieldsToUpdate {
		if modifiableCampaignFields[k] {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return ToolOutcome{Result: "❌ Falha: Especifique campos."}, nil
	}

	campaignID := params.Identifier.ID
	if campaignID == "" {
		id, err := t.campaigns.FindIDByName(ctx, params.Identifier.Name)
		if err != nil {
			return ToolOutcome{}, err
		}
		if id == "" {
			return ToolOutcome{Result: fmt.Sprintf("❌ Falha: Campanha \"%s\" não encontrada.", params.Identifier.Name)}, nil
		}
		campaignID = id
	}

	if err := t.campaigns.Patch(ctx, campaignID, fields); err != nil {
		return ToolOutcome{}, err
	}

	finalName := params.Identifier.Name
	if newName, ok := fields["name"].(string); ok && newName != "" {
		finalName = newName
	} else if finalName == "" {
		if c, err := t.campaigns.GetByID(ctx, campaignID); err == nil && c != nil {
			finalName = c.Name
		} else {
			finalName = fmt.Sprintf("ID %s", campaignID)
		}
	}

	updated := make([]string, 0, len(fields))
	for k := range fields {
		updated = append(updated, k)
	}
	sort.Strings(updated)
	return ToolOutcome{
		Result: fmt.Sprintf("✅ Campanha \"%s\" atualizada! (Campos: %s)", finalName, strings.Join(updated, ", ")),
	}, nil
}

// formatCurrency renders a value as Brazilian Real, pt-BR separators
func formatCurrency(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, decPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
