package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

var errEmptyResponse = errors.New("empty model response")

// stripCodeFence removes Markdown code fence markers the model likes to wrap
// JSON in.
func stripCodeFence(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func parseScreeningResponse(raw string) (models.ScreeningResult, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return models.DefaultScreeningResult(), errEmptyResponse
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return models.DefaultScreeningResult(), fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0
	}

	return models.ScreeningResult{
		Skills:        coerceStrings(data["skills"]),
		Experience:    coerceString(data["experience"]),
		Education:     coerceString(data["education"]),
		Score:         score,
		MissingSkills: coerceStrings(data["missing_skills"]),
	}, nil
}

// parseFeedback classifies the feedback response. Only a JSON object with a
// string "text" field is structured; any other reply, JSON or not, is kept as
// the text the model wrote.
func parseFeedback(raw string) models.Feedback {
	cleaned := stripCodeFence(raw)
	if strings.HasPrefix(cleaned, "{") {
		var fields map[string]any
		if err := json.Unmarshal([]byte(cleaned), &fields); err == nil {
			if _, ok := fields["text"].(string); ok {
				return models.StructuredFeedback(fields)
			}
			return models.TextFeedback(cleaned)
		}
	}
	return models.TextFeedback(strings.TrimSpace(raw))
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// coerceStrings accepts a JSON array or a single string and never returns nil.
func coerceStrings(v any) []string {
	result := []string{}

	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				result = append(result, s)
			}
		}
	case string:
		if s := strings.TrimSpace(val); s != "" {
			result = append(result, s)
		}
	}

	return result
}
