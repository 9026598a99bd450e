package logic

import (
	"encoding/json"

	"github.com/USBABC1/v60/models"
	"github.com/USBABC1/v60/pkg"
)

// SystemPrompt describes the agent persona and the full tool contract, one
// worked example per tool.
const SystemPrompt = `
Você é o MCP Agent, um assistente IA avançado para o aplicativo de marketing digital USBMKT.
Seu objetivo é ajudar o usuário a navegar na aplicação e gerenciar campanhas de marketing.
A página atual do usuário é fornecida no contexto.

Ferramentas Disponíveis:

1.  **Navegar:** Use para ir para uma página. Ferramenta: ` + "`navigate`" + `, Argumentos: ` + "`" + `{"path": "/pagina_desejada"}` + "`" + ` (Ex: "/", "/Metrics", "/Campaign"). IMPORTANTE: Se disser "campanha", interprete como /Campaign. Ex: "ir para campanha" -> JSON: ` + "`" + `{"tool": "navigate", "arguments": {"path": "/Campaign"}}` + "`" + `
2.  **Listar Campanhas:** Use para ver campanhas. Ferramenta: ` + "`list_campaigns`" + `, Argumentos: ` + "`{}`" + `. Ex: "Quais campanhas temos?" -> JSON: ` + "`" + `{"tool": "list_campaigns", "arguments": {}}` + "`" + `
3.  **Obter Detalhes da Campanha:** Use para detalhes de UMA campanha PELO NOME. Ferramenta: ` + "`get_campaign_details`" + `, Argumentos: ` + "`" + `{"campaign_name": "Nome Exato"}` + "`" + `. Ex: "Detalhes da Campanha de Verão" -> JSON: ` + "`" + `{"tool": "get_campaign_details", "arguments": {"campaign_name": "Campanha de Verão"}}` + "`" + `
4.  **Criar Campanha:** Use para criar NOVA campanha. Extraia NOME e ORÇAMENTO DIÁRIO. Ferramenta: ` + "`create_campaign`" + `, Argumentos: ` + "`" + `{"name": "Nome", "budget": valor_numerico}` + "`" + `. Ex: "Crie Black Friday com 50 reais por dia" -> JSON: ` + "`" + `{"tool": "create_campaign", "arguments": {"name": "Black Friday", "budget": 50}}` + "`" + `
5.  **Modificar Campanha:** Use para ALTERAR campanha. Precisa NOME (ou ID) e campos a alterar. Ferramenta: ` + "`modify_campaign`" + `, Argumentos: ` + "`" + `{"identifier": {"name": "Nome Exato"}, "fields_to_update": {"campo1": valor1}}` + "`" + `. Campos: ` + "`name`, `daily_budget`, `status`" + ` ('active', 'paused', 'draft', 'completed'), ` + "`budget`, `cost_traffic`, `cost_creative`, `cost_operational`" + `. Ex: "Pause Black Friday" -> JSON: ` + "`" + `{"tool": "modify_campaign", "arguments": {"identifier": {"name": "Black Friday"}, "fields_to_update": {"status": "paused"}}}` + "`" + `

Instruções IMPORTANTES:
- Responda diretamente a perguntas gerais.
- Se uma ação é solicitada, gere APENAS E SOMENTE UM objeto JSON da ferramenta, sem texto adicional.
- SE O USUÁRIO PEDIR MÚLTIPLAS AÇÕES: 1. Identifique a ação PRINCIPAL. 2. Responda textualmente confirmando a ação principal E mencionando que você navegará DEPOIS (se solicitado). 3. NÃO gere JSON nesta resposta textual. ESPERE ou gere APENAS o JSON da ação PRINCIPAL.
- Se não tiver certeza ou faltar informação, peça esclarecimentos.
- Use ` + "`identifier`" + ` com ` + "`name`" + ` para modificar.
`

// replayKind tags a persisted message for structural replay.
type replayKind int

const (
	replayUserMsg replayKind = iota
	replayAssistantText
	replayAssistantToolCall
	replayToolResult
	replaySystem
)

type replayedMessage struct {
	kind      replayKind
	msg       models.Message
	toolCalls []pkg.ToolCall
}

// classifyMessage maps a persisted row onto its replay variant. An assistant
// row whose content is a JSON-encoded tool_calls array replays as a structured
// tool-call turn, not as literal JSON text. Roles outside the completion
// protocol are coerced to tool results.
func classifyMessage(msg models.Message) replayedMessage {
	switch msg.Role {
	case models.RoleSystem:
		return replayedMessage{kind: replaySystem, msg: msg}
	case models.RoleUser:
		return replayedMessage{kind: replayUserMsg, msg: msg}
	case models.RoleTool:
		return replayedMessage{kind: replayToolResult, msg: msg}
	case models.RoleAssistant:
		var calls []pkg.ToolCall
		if err := json.Unmarshal([]byte(msg.Content), &calls); err == nil &&
			len(calls) > 0 && calls[0].Function.Name != "" {
			return replayedMessage{kind: replayAssistantToolCall, msg: msg, toolCalls: calls}
		}
		return replayedMessage{kind: replayAssistantText, msg: msg}
	default:
		return replayedMessage{kind: replayToolResult, msg: msg}
	}
}

// BuildPrompt assembles the ordered message list for one completion call:
// system instructions, the persisted recent history, then the inbound user
// message. Gaps in the persisted history are replayed as-is.
func BuildPrompt(history []models.Message, userMessage string) []pkg.RequestMessage {
	prompt := make([]pkg.RequestMessage, 0, len(history)+2)
	prompt = append(prompt, pkg.RequestMessage{
		Role:    models.RoleSystem,
		Content: SystemPrompt,
	})

	for _, msg := range history {
		replayed := classifyMessage(msg)
		switch replayed.kind {
		case replayAssistantToolCall:
			prompt = append(prompt, pkg.RequestMessage{
				Role:      models.RoleAssistant,
				Content:   "",
				ToolCalls: replayed.toolCalls,
			})
		case replayToolResult:
			prompt = append(prompt, pkg.RequestMessage{
				Role:       models.RoleTool,
				Content:    msg.Content,
				ToolCallID: msg.ToolCallID,
				Name:       msg.ToolName,
			})
		default:
			prompt = append(prompt, pkg.RequestMessage{
				Role:    replayed.msg.Role,
				Content: msg.Content,
			})
		}
	}

	prompt = append(prompt, pkg.RequestMessage{
		Role:    models.RoleUser,
		Content: userMessage,
	})
	return prompt
}
