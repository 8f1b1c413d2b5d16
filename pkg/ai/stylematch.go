package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/global"
	"aurelialuxe.com/boutique/pkg/logging"
	"aurelialuxe.com/boutique/pkg/models"
)

// MaxStyleMatches caps the number of pieces the curator recommends
const MaxStyleMatches = 3

// Match is one recommended catalog piece
type Match struct {
	SKU    string `json:"sku"`
	Reason string `json:"reason"`
}

// StyleMatch is the curator's reading of an outfit photo
type StyleMatch struct {
	Analysis string  `json:"analysis"`
	Matches  []Match `json:"matches"`
}

// StyleMatcher recommends catalog pieces for an outfit photo
type StyleMatcher struct {
	completer Completer
	logger    *zap.Logger
}

func NewStyleMatcher(completer Completer, logger *zap.Logger) *StyleMatcher {
	return &StyleMatcher{completer: completer, logger: logging.OrNop(logger).Named("style-matcher")}
}

// Match analyses the image (a data URL) against the catalog summary.
// It returns nil when the model is unavailable or its answer cannot be parsed.
func (s *StyleMatcher) Match(ctx context.Context, image string, catalogSummary string) *StyleMatch {
	if s.completer == nil || isNilCompleter(s.completer) || image == "" {
		return nil
	}

	ctx, cancel := global.GetTimerFrom(ctx)
	defer cancel()

	raw, err := s.completer.Complete(ctx, CompletionRequest{
		System: StyleMatchSystemPrompt,
		Messages: []Message{{
			Role:     RoleUser,
			Text:     "Our catalog:\n" + catalogSummary + "\nWhich pieces would complete this outfit?",
			ImageURL: image,
		}},
		Temperature: 0.4,
		MaxTokens:   800,
		JSON:        true,
	})
	if err != nil {
		s.logger.Warn("style match failed", zap.Error(err))
		return nil
	}

	result, err := parseStyleMatch(raw)
	if err != nil {
		s.logger.Warn("style match response unreadable", zap.Error(err))
		return nil
	}
	return result
}

func parseStyleMatch(raw string) (*StyleMatch, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var result StyleMatch
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode style match: %w", err)
	}

	matches := make([]Match, 0, MaxStyleMatches)
	for _, m := range result.Matches {
		if strings.TrimSpace(m.SKU) == "" {
			continue
		}
		matches = append(matches, m)
		if len(matches) == MaxStyleMatches {
			break
		}
	}
	result.Matches = matches
	return &result, nil
}

// CatalogSummary renders one line per product for the curator prompt
func CatalogSummary(products []models.Product) string {
	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "%s: %s (%s, %s, %s) - %s\n", p.SKU, p.Name, p.Category, p.MetalPurity, p.StoneType, p.Description)
	}
	return b.String()
}

// ImageDataURL encodes an uploaded image as a data URL
func ImageDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
