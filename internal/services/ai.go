package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rodrigojspires/caminhos-hekate-sub006/internal/game"
)

// AIService turns a resolved game context into therapeutic text through a
// chat-completions API. It never touches room state; the actor resolves the
// context first and the HTTP call happens outside the room loop.
type AIService struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
}

func NewAIService(apiKey, apiURL, model string) *AIService {
	return &AIService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiKey:     apiKey,
		apiURL:     apiURL,
		model:      model,
	}
}

func (s *AIService) IsAvailable() bool {
	return s.apiKey != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const tipSystemPrompt = `You are a gentle companion for a therapeutic board game journey based on the Leela game of self-knowledge. ` +
	`Given the player's current house on the board, offer a short reflection (3-5 sentences) that invites self-inquiry. ` +
	`Speak warmly and directly to the player. Never diagnose, never prescribe, never mention that you are an AI.`

const reportSystemPrompt = `You are a gentle companion for a therapeutic board game journey based on the Leela game of self-knowledge. ` +
	`Given the full sequence of a player's moves and notes, write a closing reflection of their journey: ` +
	`the themes that appeared, the transitions between houses, and one open question to carry forward. ` +
	`Write 2-4 short paragraphs. Speak warmly and directly to the player. Never diagnose, never prescribe, never mention that you are an AI.`

func (s *AIService) GenerateTip(aiCtx *game.AIContext, intention string) (string, error) {
	if aiCtx.House == nil {
		return "", fmt.Errorf("player has not entered the board yet")
	}
	var b strings.Builder
	fmt.Fprintf(&b,
		"Player %s is on house %d, %q: %s\nReflection theme: %s\n",
		aiCtx.Participant.DisplayName,
		aiCtx.House.Number,
		aiCtx.House.Title,
		aiCtx.House.Description,
		aiCtx.House.Reflection,
	)
	if intention != "" {
		fmt.Fprintf(&b, "The player's stated intention for this journey: %s\n", intention)
	}
	return s.complete(tipSystemPrompt, b.String())
}

func (s *AIService) GenerateFinalReport(aiCtx *game.AIContext, intention string) (string, error) {
	if len(aiCtx.Moves) == 0 {
		return "", fmt.Errorf("no moves recorded for this journey")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Journey of player %s (%d moves):\n", aiCtx.Participant.DisplayName, len(aiCtx.Moves))
	for _, mv := range aiCtx.Moves {
		fmt.Fprintf(&b, "- turn %d: rolled %d, %d -> %d", mv.TurnNumber, mv.DiceValue, mv.FromPos, mv.ToPos)
		if mv.Note != nil {
			fmt.Fprintf(&b, " | emotion: %s (%d/10), insight: %s", mv.Note.Emotion, mv.Note.Intensity, mv.Note.Insight)
		}
		b.WriteString("\n")
	}
	if intention != "" {
		fmt.Fprintf(&b, "The player's stated intention for this journey: %s\n", intention)
	}
	return s.complete(reportSystemPrompt, b.String())
}

func (s *AIService) complete(system, prompt string) (string, error) {
	if !s.IsAvailable() {
		return "", fmt.Errorf("AI assistance is not configured")
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.apiURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse API response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from AI")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
