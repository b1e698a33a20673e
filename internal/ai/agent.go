package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// FallbackNarrative substitutes for the generated insight whenever the
// text-generation service is unavailable or fails. The reconciliation engine
// never errors because of this call.
const FallbackNarrative = "Automatic insight is unavailable right now. Review the unmatched entries on both sides manually, starting with the largest amounts and the oldest dates."

// Insight is the structured narrative returned by the model.
type Insight struct {
	Narrative   string   `json:"narrative" jsonschema_description:"A short plain-language narrative (2-4 sentences) describing the state of the reconciliation"`
	Suggestions []string `json:"suggestions" jsonschema_description:"Up to three concrete next steps for the person reconciling, ordered by impact"`
}

// InsightService produces a free-text narrative from a compact textual
// summary of the two unmatched pools.
type InsightService interface {
	ReconciliationInsight(ctx context.Context, summary string) (*Insight, error)
}

type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// ReconciliationInsight sends the pool summary to the model and returns the
// structured insight. Callers substitute FallbackNarrative on any error.
func (a *Agent) ReconciliationInsight(ctx context.Context, summary string) (*Insight, error) {
	prompt := fmt.Sprintf(`You are an experienced accountant reviewing a two-set transaction reconciliation (for example a bank export against a ledger export).
Given the summary below, write a short narrative of where the reconciliation stands and what most likely explains the remaining differences.
Rules:
1. Be concrete: reference the totals and the largest items from the summary.
2. Do not invent transactions that are not in the summary.
3. Keep the narrative under four sentences.

Summary:
%s`, summary)

	// Dynamically generate the JSON schema from the Go struct
	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "reconciliation_insight",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A short narrative insight over the unmatched pools of a reconciliation"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var insight Insight
	if err := json.Unmarshal([]byte(content), &insight); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	if insight.Narrative == "" {
		return nil, fmt.Errorf("model returned an empty narrative")
	}
	return &insight, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&Insight{})
}
