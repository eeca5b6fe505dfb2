package guide

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/ghostbook/internal/engine"
	"github.com/tatianab/ghostbook/internal/logging"
	"github.com/tatianab/ghostbook/internal/models"
)

//go:embed prompts/advise.txt
var advisePrompt string

var adviseTmpl = template.Must(template.New("advise").Parse(advisePrompt))

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// maxCandidates and maxHints bound the prompt size.
const (
	maxCandidates = 6
	maxHints      = 3
)

// Guide asks Gemini for a short spoken tip about the current investigation.
type Guide struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func New(ctx context.Context, apiKey, modelName string) (*Guide, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("guide: no API key")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("guide: create client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	return &Guide{
		client: client,
		model:  model,
	}, nil
}

func (g *Guide) Close() error {
	return g.client.Close()
}

// Advise turns the engine output into a prompt and returns the model's tip.
func (g *Guide) Advise(ctx context.Context, state models.EvidenceState, result engine.Result, hints []engine.Hint, summary engine.Summary) (string, error) {
	prompt, err := BuildPrompt(state, result, hints, summary)
	if err != nil {
		return "", err
	}

	log := logging.For("guide")
	log.Debug("asking for advice", "confirmed", summary.Confirmed, "candidates", len(result.Remaining()))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("guide: generate: %w", err)
	}
	return responseText(resp)
}

type promptCandidate struct {
	Name       string
	Confidence int
	Missing    string
	Strength   string
	Weakness   string
}

type promptHint struct {
	Equipment string
	Evidence  string
	Priority  string
}

// BuildPrompt renders the advice prompt. It is pure so it can be tested
// without a model.
func BuildPrompt(state models.EvidenceState, result engine.Result, hints []engine.Hint, summary engine.Summary) (string, error) {
	data := struct {
		Confirmed  []string
		Suspected  []string
		Status     string
		Candidates []promptCandidate
		Hints      []promptHint
	}{
		Confirmed: kindNames(state.Confirmed().Kinds()),
		Suspected: kindNames(state.Suspected().Kinds()),
		Status:    summary.Message,
	}

	for _, c := range result.Remaining() {
		if len(data.Candidates) == maxCandidates {
			break
		}
		missing := "nothing"
		if len(c.Missing) > 0 {
			missing = strings.Join(kindNames(c.Missing), ", ")
		}
		data.Candidates = append(data.Candidates, promptCandidate{
			Name:       c.Ghost.Name,
			Confidence: c.Confidence,
			Missing:    missing,
			Strength:   c.Ghost.Strength,
			Weakness:   c.Ghost.Weakness,
		})
	}
	for _, h := range hints {
		if len(data.Hints) == maxHints {
			break
		}
		data.Hints = append(data.Hints, promptHint{
			Equipment: h.Equipment,
			Evidence:  h.Evidence.String(),
			Priority:  h.Priority.String(),
		})
	}

	var buf bytes.Buffer
	if err := adviseTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("guide: render prompt: %w", err)
	}
	return buf.String(), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("guide: no content returned from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("guide: unexpected response type from Gemini")
	}
	return CleanResponse(sb.String()), nil
}

// CleanResponse strips markdown fences and surrounding whitespace.
func CleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func kindNames(kinds []models.EvidenceKind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}
