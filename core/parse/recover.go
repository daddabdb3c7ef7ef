package parse

import (
	"encoding/json"

	"github.com/leofalp/sportsintel/core/intel"
)

// RecoverResponse returns the best structured response available in buffer,
// the full text streamed so far. It never panics and never returns an error:
// when nothing useful can be recovered it returns nil.
//
// A buffer that strictly decodes as a JSON object is returned as decoded.
// Anything else goes through salvage, which extracts the summary string, every
// closed event object carrying a "headline" key, and the bar talk strings seen
// so far. Salvage starts at the first '{' and moves to the next one while it
// finds nothing. Events whose headline is missing, blank or still
// [intel.LoadingSentinel] are dropped on both paths.
//
// Each call returns a fresh value; the function keeps no state between calls.
func RecoverResponse(buffer string) (response *intel.Response) {
	defer func() {
		if r := recover(); r != nil {
			response = nil
		}
	}()

	if decoded, ok := decodeStrict(buffer); ok {
		return decoded
	}

	for candidate := range JSONObjectCandidates(buffer) {
		if candidate != buffer {
			if decoded, ok := decodeStrict(candidate); ok {
				return decoded
			}
		}
		if salvaged := salvage(candidate); salvaged != nil {
			return salvaged
		}
	}
	return nil
}

func decodeStrict(buffer string) (*intel.Response, bool) {
	var decoded *intel.Response
	if err := json.Unmarshal([]byte(buffer), &decoded); err != nil || decoded == nil {
		return nil, false
	}
	if decoded.Events != nil {
		decoded.Events = dropPlaceholders(decoded.Events)
	}
	return decoded, true
}

func salvage(src string) *intel.Response {
	keys := objectKeys(src)
	response := &intel.Response{}
	found := false

	if summary, ok := stringValue(src, keys, "summary"); ok {
		response.Summary = &summary
		found = true
	}

	if region, ok := arrayRegion(src, keys, "events"); ok {
		response.Events = salvageEvents(region)
		found = true
	}

	if region, ok := arrayRegion(src, keys, "barTalk"); ok {
		response.BarTalk = stringLiterals(region)
		found = true
	}

	if !found {
		return nil
	}
	return response
}

// salvageEvents decodes the closed event objects of an events array region.
// The result is never nil.
func salvageEvents(region string) []intel.EventRecord {
	events := []intel.EventRecord{}
	for _, object := range completeObjects(region) {
		keys := objectKeys(object)
		if _, hasHeadline := keys["headline"]; !hasHeadline {
			continue
		}

		event, err := DecodeLenient[intel.EventRecord](object)
		if err != nil {
			event = extractEventFields(object, keys)
		}
		if event.IsPlaceholder() {
			continue
		}
		events = append(events, event)
	}
	return events
}

// extractEventFields reads the event's string fields one by one, keeping the
// placeholder defaults for anything that is missing or not yet a string.
func extractEventFields(object string, keys map[string]int) intel.EventRecord {
	event := intel.NewEventRecord()
	if category, ok := stringValue(object, keys, "category"); ok {
		event.Category = intel.ParseCategory(category)
	}
	if headline, ok := stringValue(object, keys, "headline"); ok {
		event.Headline = headline
	}
	if description, ok := stringValue(object, keys, "description"); ok {
		event.Description = description
	}
	if significance, ok := stringValue(object, keys, "significance"); ok {
		event.Significance = intel.ParseSignificance(significance)
	}
	if date, ok := stringValue(object, keys, "date"); ok {
		event.Date = date
	}
	if source, ok := stringValue(object, keys, "source"); ok {
		event.Source = source
	}
	return event
}

func dropPlaceholders(events []intel.EventRecord) []intel.EventRecord {
	kept := make([]intel.EventRecord, 0, len(events))
	for _, event := range events {
		if !event.IsPlaceholder() {
			kept = append(kept, event)
		}
	}
	return kept
}
