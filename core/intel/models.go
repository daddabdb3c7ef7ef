package intel

import (
	"encoding/json"
	"slices"
	"strings"
)

// LoadingSentinel marks a text field whose real value has not streamed in yet.
// Events whose headline still equals it are never surfaced.
const LoadingSentinel = "Loading..."

// Response is the structured briefing assembled from a model stream.
//
// A nil slice means the field has not appeared in the stream at all, while an
// empty non-nil slice means the field is present but has no elements yet.
type Response struct {
	Summary *string       `json:"summary,omitempty"`
	Events  []EventRecord `json:"events"`
	BarTalk []string      `json:"barTalk"`
}

// EventRecord is a single sports event card.
type EventRecord struct {
	Category     Category     `json:"category"`
	Headline     string       `json:"headline"`
	Description  string       `json:"description"`
	Significance Significance `json:"significance"`
	Teams        []string     `json:"teams,omitempty"`
	Date         string       `json:"date,omitempty"`
	Source       string       `json:"source,omitempty"`
	Links        []string     `json:"links,omitempty"`
}

// NewEventRecord returns a record populated with the placeholder defaults used
// while fields are still streaming.
func NewEventRecord() EventRecord {
	return EventRecord{
		Category:     CategoryOther,
		Headline:     LoadingSentinel,
		Description:  LoadingSentinel,
		Significance: SignificanceMedium,
	}
}

// UnmarshalJSON decodes an event on top of the NewEventRecord defaults, so
// missing or null fields keep their placeholders. Category and significance
// are normalised onto their closed sets and a blank headline is treated as
// not yet streamed.
func (e *EventRecord) UnmarshalJSON(data []byte) error {
	type plain EventRecord
	decoded := plain(NewEventRecord())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*e = EventRecord(decoded)
	e.Category = ParseCategory(string(e.Category))
	e.Significance = ParseSignificance(string(e.Significance))
	if strings.TrimSpace(e.Headline) == "" {
		e.Headline = LoadingSentinel
	}
	return nil
}

// IsPlaceholder reports whether the headline has not streamed in yet. A blank
// headline counts as not streamed.
func (e EventRecord) IsPlaceholder() bool {
	return e.Headline == LoadingSentinel || strings.TrimSpace(e.Headline) == ""
}

// IsComplete reports whether all three top-level fields are present.
// Empty events or barTalk sequences still count as present.
func (r *Response) IsComplete() bool {
	if r == nil {
		return false
	}
	return r.Summary != nil && r.Events != nil && r.BarTalk != nil
}

// SummaryText returns the summary or an empty string when it is absent.
func (r *Response) SummaryText() string {
	if r == nil || r.Summary == nil {
		return ""
	}
	return *r.Summary
}

// Clone returns a deep copy of the response, preserving nil versus empty
// slices.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	clone := &Response{
		BarTalk: slices.Clone(r.BarTalk),
	}
	if r.Summary != nil {
		summary := *r.Summary
		clone.Summary = &summary
	}
	if r.Events != nil {
		clone.Events = make([]EventRecord, len(r.Events))
		for i, event := range r.Events {
			event.Teams = slices.Clone(event.Teams)
			event.Links = slices.Clone(event.Links)
			clone.Events[i] = event
		}
	}
	return clone
}

// Category is the sport or league an event belongs to.
type Category string

const (
	CategoryNFL               Category = "NFL"
	CategoryNBA               Category = "NBA"
	CategoryMLB               Category = "MLB"
	CategoryNHL               Category = "NHL"
	CategoryCollegeFootball   Category = "College Football"
	CategoryCollegeBasketball Category = "College Basketball"
	CategorySoccer            Category = "Soccer"
	CategoryGolf              Category = "Golf"
	CategoryTennis            Category = "Tennis"
	CategoryF1                Category = "F1"
	CategoryMMA               Category = "MMA"
	CategoryBoxing            Category = "Boxing"
	CategoryOlympics          Category = "Olympics"
	CategoryOther             Category = "Other"
)

// Categories lists the closed category set in display order.
var Categories = []Category{
	CategoryNFL,
	CategoryNBA,
	CategoryMLB,
	CategoryNHL,
	CategoryCollegeFootball,
	CategoryCollegeBasketball,
	CategorySoccer,
	CategoryGolf,
	CategoryTennis,
	CategoryF1,
	CategoryMMA,
	CategoryBoxing,
	CategoryOlympics,
	CategoryOther,
}

var categoryAliases = map[string]Category{
	"ncaaf":     CategoryCollegeFootball,
	"ncaab":     CategoryCollegeBasketball,
	"football":  CategoryNFL,
	"formula 1": CategoryF1,
	"formula1":  CategoryF1,
	"ufc":       CategoryMMA,
	"mls":       CategorySoccer,
}

// ParseCategory maps a free-form label onto the closed category set.
// Matching is case-insensitive; unknown labels become CategoryOther.
func ParseCategory(label string) Category {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return CategoryOther
	}
	for _, category := range Categories {
		if strings.ToLower(string(category)) == normalized {
			return category
		}
	}
	if category, ok := categoryAliases[normalized]; ok {
		return category
	}
	return CategoryOther
}

// Known reports whether c is one of the closed set values verbatim.
func (c Category) Known() bool {
	return slices.Contains(Categories, c)
}

// Significance ranks how much an event matters.
type Significance string

const (
	SignificanceHigh   Significance = "High"
	SignificanceMedium Significance = "Medium"
	SignificanceLow    Significance = "Low"
)

// ParseSignificance maps a label onto High, Medium or Low, defaulting to Medium.
func ParseSignificance(label string) Significance {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "high":
		return SignificanceHigh
	case "low":
		return SignificanceLow
	default:
		return SignificanceMedium
	}
}
