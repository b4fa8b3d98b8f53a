package advice

import (
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/zenfin/internal/model"

	"github.com/sashabaranov/go-openai/jsonschema"
)

const promptTemplate = `Analyze these financial transactions (all amounts are in Indian Rupees - INR) and provide expert financial advice relevant to the Indian context:
%s

Return a JSON object with:
1. A summary of spending habits.
2. 3 actionable tips to save money (consider Indian savings habits like FDs, RDs, or local cost management).
3. A financial health score from 0-100.
`

// BuildPrompt embeds the full transaction list as JSON in the advice prompt.
func BuildPrompt(txs []model.Transaction) (string, error) {
	if txs == nil {
		txs = []model.Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return "", fmt.Errorf("advice: encoding transactions: %w", err)
	}
	return fmt.Sprintf(promptTemplate, data), nil
}

// Schema is the structured-output shape every provider is asked for.
func Schema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"summary": {Type: jsonschema.String},
			"tips": {
				Type:  jsonschema.Array,
				Items: &jsonschema.Definition{Type: jsonschema.String},
			},
			"healthScore": {Type: jsonschema.Number},
		},
		Required:             []string{"summary", "tips", "healthScore"},
		AdditionalProperties: false,
	}
}
