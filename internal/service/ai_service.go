package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/pkg/logger"

	"go.uber.org/zap"
)

// classifyVotes is how many classification rounds feed the majority vote.
const classifyVotes = 3

type AIService struct {
	config     config.AIConfig
	httpClient *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config:     cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one chat-completion round trip and returns the reply text.
func (s *AIService) Complete(ctx context.Context, system, prompt string) (string, error) {
	body := chatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.BaseURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("ai completion failed: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("ai completion returned no choices")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// Summarize condenses a project README into a short showcase blurb.
func (s *AIService) Summarize(ctx context.Context, text string) (string, error) {
	system := "You summarize student project READMEs for a course showcase. " +
		"Reply with three to five plain sentences covering what the project does, " +
		"its main technologies and anything notable. No markdown, no headings."
	return s.Complete(ctx, system, text)
}

// ClassifyQuestion asks the model to pick one category for a question and
// takes the majority over several rounds, since a single completion is too
// noisy for a stable label.
func (s *AIService) ClassifyQuestion(ctx context.Context, text string, categories []string) (string, error) {
	system := fmt.Sprintf("You label programming questions. Reply with exactly one "+
		"word from this list and nothing else: %s. If unsure, reply others.",
		strings.Join(categories, ", "))

	allowed := make(map[string]bool, len(categories))
	for _, category := range categories {
		allowed[category] = true
	}

	votes := make(map[string]int)
	for i := 0; i < classifyVotes; i++ {
		reply, err := s.Complete(ctx, system, text)
		if err != nil {
			logger.Log.Warn("classification round failed", zap.Error(err))
			continue
		}
		label := strings.ToLower(strings.TrimSpace(reply))
		if !allowed[label] {
			label = "others"
		}
		votes[label]++
	}
	if len(votes) == 0 {
		return "others", nil
	}

	winner, best := "others", 0
	for label, count := range votes {
		if count > best {
			winner, best = label, count
		}
	}
	return winner, nil
}
