package organizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"dotspark-backend/domain/core/entities"
)

// renderTranscript formats the turn log for a prompt
func renderTranscript(turns []entities.ConversationTurn) string {
	var b strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}
	return b.String()
}

// renderUserTurns formats only user-authored turns, so the model never
// sees its own scaffolding as source material
func renderUserTurns(turns []entities.ConversationTurn) string {
	var b strings.Builder
	for _, turn := range turns {
		if turn.Role == entities.RoleUser {
			fmt.Fprintf(&b, "- %s\n", turn.Content)
		}
	}
	return b.String()
}

// renderPatternMemory summarizes the user's historical patterns as prompt context
func renderPatternMemory(records []*entities.PatternRecord) string {
	if len(records) == 0 {
		return "none"
	}

	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "- pattern=%s style=%s keywords=%s\n",
			rec.ThoughtPattern(),
			rec.ConversationStyle(),
			strings.Join(rec.Keywords(), ", "),
		)
	}
	return b.String()
}

// extractJSON pulls the first top-level JSON object out of raw model output
// and unmarshals it into v. Models routinely wrap JSON in prose or code
// fences, so a plain Unmarshal of the whole response is not enough.
func extractJSON(raw string, v interface{}) error {
	start := strings.Index(raw, "{")
	if start < 0 {
		return fmt.Errorf("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return json.Unmarshal([]byte(raw[start:i+1]), v)
				}
			}
		}
	}

	return fmt.Errorf("unterminated JSON object in response")
}
