package briefing

import (
	"fmt"
	"strings"
	"time"

	"github.com/leofalp/sportsintel/core/intel"
)

// SystemPrompt describes the JSON document the model must produce.
var SystemPrompt = buildSystemPrompt()

func buildSystemPrompt() string {
	categories := make([]string, len(intel.Categories))
	for i, category := range intel.Categories {
		categories[i] = string(category)
	}

	var b strings.Builder
	b.WriteString("You are a sports intelligence analyst. Search the web for the latest news ")
	b.WriteString("and answer with a single JSON object and nothing else, no markdown fences.\n\n")
	b.WriteString("Write the keys in this order:\n")
	b.WriteString(`{"summary": string, "events": [event, ...], "barTalk": [string, ...]}` + "\n\n")
	b.WriteString("Each event is an object with the keys, in this order:\n")
	b.WriteString(`{"headline": string, "category": string, "description": string, "significance": "High"|"Medium"|"Low", "teams": [string], "date": string, "source": string, "links": [string]}` + "\n\n")
	b.WriteString("category must be one of: " + strings.Join(categories, ", ") + ".\n")
	b.WriteString("summary is two or three sentences. Return between 4 and 8 events, most significant first. ")
	b.WriteString("barTalk holds 3 to 5 short conversation starters a fan could use at a bar.\n")
	b.WriteString("description may use plain text only. Never invent scores or quotes you did not find.")
	return b.String()
}

// BuildPrompt returns the user prompt for query, anchored to the date of now.
func BuildPrompt(query string, now time.Time) string {
	return fmt.Sprintf("Today is %s. Brief me on: %s", now.Format("Monday, January 2, 2006"), strings.TrimSpace(query))
}
