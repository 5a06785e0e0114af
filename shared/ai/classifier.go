package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"comment-pulse/internal/models"
	"comment-pulse/shared/config"

	"google.golang.org/genai"
)

// ErrInvalidAPIKey signals that the Gemini API rejected the deployment's
// credential. This invalidates every future classification call, so the
// orchestrator aborts the whole run instead of dropping one comment.
var ErrInvalidAPIKey = errors.New("Gemini API key rejected")

const classifyTimeout = 30 * time.Second

const stancePromptFormat = `Analyze if this YouTube comment agrees, disagrees, or is neutral about the video content. Only respond with one word: AGREE, DISAGREE, or NEUTRAL.
Comment: %q`

// Classifier labels a comment's stance toward the video using Gemini.
type Classifier struct {
	client *genai.Client
	model  string
}

func NewClassifier(ctx context.Context, cfg *config.AIConfig) (*Classifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Classifier{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Classify submits a single comment to the model and maps its free-form
// reply to one of the three stance labels.
func (c *Classifier) Classify(ctx context.Context, comment string) (models.Stance, error) {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	prompt := fmt.Sprintf(stancePromptFormat, comment)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		if isInvalidKeyError(err) {
			return "", fmt.Errorf("%w: %v", ErrInvalidAPIKey, err)
		}
		return "", fmt.Errorf("failed to classify comment: %w", err)
	}

	return ParseStance(result.Text()), nil
}

// ParseStance maps a free-form model reply to a stance label. DISAGREE
// is checked first because it contains AGREE as a substring; anything
// without a recognized keyword falls back to neutral.
func ParseStance(reply string) models.Stance {
	text := strings.ToUpper(strings.TrimSpace(reply))

	if strings.Contains(text, "DISAGREE") {
		return models.StanceDisagree
	}
	if strings.Contains(text, "AGREE") {
		return models.StanceAgree
	}
	return models.StanceNeutral
}

// The genai SDK surfaces credential rejection only in the error text, so
// discrimination has to go through string matching.
func isInvalidKeyError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "API key not valid") || strings.Contains(msg, "API_KEY_INVALID")
}
