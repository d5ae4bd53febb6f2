// ABOUTME: Scoreboard JSON parser that resolves each field through ordered accessor chains
// ABOUTME: Handles inconsistent nesting across endpoints and drops events without a start time

package parse

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harper/matchday/internal/models"
	"github.com/harper/matchday/internal/timeutil"
)

// node is one decoded JSON object.
type node = map[string]any

// accessor extracts a value from a scoreboard event node, "" when absent.
type accessor func(n node) string

// timeAccessor extracts a start time from a scoreboard event node.
type timeAccessor func(n node) (time.Time, bool)

var (
	idAccessors = []accessor{
		at("id"),
		at("uid"),
		at("competitions", 0, "id"),
	}

	titleAccessors = []accessor{
		at("name"),
		at("shortName"),
		at("competitions", 0, "name"),
		matchup("competitions", 0, "competitors"),
		matchup("competitors"),
		homeAway,
	}

	linkAccessors = []accessor{
		at("links", 0, "href"),
		at("link"),
		at("url"),
		at("competitions", 0, "links", 0, "href"),
	}

	startAccessors = []timeAccessor{
		timeAt("date"),
		timeAt("startDate"),
		timeAt("competitions", 0, "date"),
		timeAt("competitions", 0, "startDate"),
		timeAt("start_time"),
	}

	sportAccessors = []accessor{
		at("league", "name"),
		at("league", "abbreviation"),
		at("sport"),
		at("sport", "name"),
		at("competitions", 0, "type", "abbreviation"),
	}

	thumbnailAccessors = []accessor{
		at("competitions", 0, "competitors", 0, "team", "logo"),
		at("logo"),
		at("image"),
		at("image", "url"),
		at("thumbnail"),
	}

	teamNameAccessors = []accessor{
		at("team", "displayName"),
		at("team", "name"),
		at("team", "shortDisplayName"),
		at("displayName"),
		at("name"),
	}
)

// Scoreboard parses a scoreboard payload. Malformed input yields an empty slice.
func Scoreboard(data []byte, label string) []models.Event {
	events, _ := DecodeScoreboard(data, label)
	return events
}

// DecodeScoreboard is Scoreboard that also reports ErrMalformed when the
// payload is not JSON or holds no recognizable event list. The returned slice
// is never nil.
func DecodeScoreboard(data []byte, label string) (events []models.Event, err error) {
	events = []models.Event{}
	defer func() {
		if r := recover(); r != nil {
			events = []models.Event{}
			err = fmt.Errorf("%w: scoreboard traversal panic: %v", ErrMalformed, r)
		}
	}()

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return events, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	list, ok := eventList(root)
	if !ok {
		return events, fmt.Errorf("%w: no event list found", ErrMalformed)
	}

	sourceSport := ""
	if obj, ok := root.(node); ok {
		sourceSport = at("leagues", 0, "name")(obj)
	}

	for _, raw := range list {
		n, ok := raw.(node)
		if !ok {
			continue
		}

		start, ok := firstTime(n, startAccessors)
		if !ok {
			continue
		}

		e := models.Event{
			ExternalID:  first(n, idAccessors),
			Title:       first(n, titleAccessors),
			Link:        first(n, linkAccessors),
			StartTime:   start,
			SportType:   first(n, sportAccessors),
			Thumbnail:   first(n, thumbnailAccessors),
			SourceLabel: label,
		}
		if e.SportType == "" {
			e.SportType = sourceSport
		}
		events = append(events, e)
	}

	return events, nil
}

func eventList(root any) ([]any, bool) {
	if list, ok := root.([]any); ok {
		return list, true
	}
	obj, ok := root.(node)
	if !ok {
		return nil, false
	}
	for _, path := range [][]any{{"events"}, {"data", "events"}, {"games"}} {
		if list, ok := lookup(obj, path...).([]any); ok {
			return list, true
		}
	}
	return nil, false
}

// lookup walks path through nested objects (string keys) and arrays (int indexes).
func lookup(v any, path ...any) any {
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := v.(node)
			if !ok {
				return nil
			}
			v = obj[key]
		case int:
			arr, ok := v.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil
			}
			v = arr[key]
		default:
			return nil
		}
	}
	return v
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func at(path ...any) accessor {
	return func(n node) string {
		return scalar(lookup(n, path...))
	}
}

func timeAt(path ...any) timeAccessor {
	return func(n node) (time.Time, bool) {
		switch v := lookup(n, path...).(type) {
		case string:
			return timeutil.Parse(v)
		case float64:
			return timeutil.FromUnix(v)
		}
		return time.Time{}, false
	}
}

// matchup builds "A vs B" from a competitor array at path.
func matchup(path ...any) accessor {
	return func(n node) string {
		list, ok := lookup(n, path...).([]any)
		if !ok {
			return ""
		}
		var names []string
		for _, c := range list {
			if obj, ok := c.(node); ok {
				if name := first(obj, teamNameAccessors); name != "" {
					names = append(names, name)
				}
			}
		}
		if len(names) < 2 {
			return ""
		}
		return strings.Join(names, " vs ")
	}
}

func homeAway(n node) string {
	var names []string
	for _, side := range []string{"homeTeam", "awayTeam"} {
		obj, ok := n[side].(node)
		if !ok {
			continue
		}
		if name := first(obj, teamNameAccessors[3:]); name != "" {
			names = append(names, name)
		}
	}
	if len(names) < 2 {
		return ""
	}
	return strings.Join(names, " vs ")
}

func first(n node, accessors []accessor) string {
	for _, get := range accessors {
		if v := get(n); v != "" {
			return v
		}
	}
	return ""
}

func firstTime(n node, accessors []timeAccessor) (time.Time, bool) {
	for _, get := range accessors {
		if t, ok := get(n); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
