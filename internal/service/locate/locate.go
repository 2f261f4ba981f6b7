// Package locate extracts geographic coordinates from the free-form JSON
// payloads that lookup workers write into the jobs.result column.
//
// Two extraction strategies exist and are deliberately kept separate. The
// dashboard map only trusts the canonical worker payload shape
// {"data":{"latitude":...,"longitude":...}} (ExtractStrict), while the
// per-number drill-down accepts coordinates wherever historical worker
// versions put them (Extract). Unifying the two would change which points
// appear on which map, so both are preserved as-is.
package locate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Point is a latitude/longitude pair. Zero is a valid coordinate on either
// axis.
type Point struct {
	Lat float64
	Lng float64
}

var latKeys = []string{"lat", "latitude"}

// Only the nested "location" and "data" objects may use the abbreviated
// "long" key; at the top level it is too likely to mean something else.
var (
	lngKeys       = []string{"lng", "longitude"}
	nestedLngKeys = []string{"lng", "longitude", "long"}
)

// Extract attempts to pull a coordinate pair out of an arbitrarily shaped
// payload. Latitude and longitude resolve independently: each field takes the
// first non-null candidate found scanning the top level, then "location", then
// "data". Malformed JSON, missing fields and non-numeric candidates all yield
// (Point{}, false); extraction never fails loudly.
func Extract(raw string) (Point, bool) {
	root, ok := parseObject(raw)
	if !ok {
		return Point{}, false
	}

	scopes := []map[string]any{root}
	for _, key := range []string{"location", "data"} {
		if nested, ok := root[key].(map[string]any); ok {
			scopes = append(scopes, nested)
		} else {
			scopes = append(scopes, nil)
		}
	}

	latRaw, latFound := firstCandidate([]scopedLookup{
		{scopes[0], latKeys},
		{scopes[1], latKeys},
		{scopes[2], latKeys},
	})
	lngRaw, lngFound := firstCandidate([]scopedLookup{
		{scopes[0], lngKeys},
		{scopes[1], nestedLngKeys},
		{scopes[2], nestedLngKeys},
	})
	if !latFound || !lngFound {
		return Point{}, false
	}

	lat, ok := coerceFloat(latRaw)
	if !ok {
		return Point{}, false
	}
	lng, ok := coerceFloat(lngRaw)
	if !ok {
		return Point{}, false
	}

	return Point{Lat: lat, Lng: lng}, true
}

// ExtractStrict only accepts the canonical worker payload shape
// {"data":{"latitude":...,"longitude":...}}. Candidates that are absent,
// null, false, an empty string or the number zero are rejected; numeric
// strings (including "0") pass. Any other shape yields no location.
func ExtractStrict(raw string) (Point, bool) {
	root, ok := parseObject(raw)
	if !ok {
		return Point{}, false
	}

	data, ok := root["data"].(map[string]any)
	if !ok {
		return Point{}, false
	}

	latRaw := data["latitude"]
	lngRaw := data["longitude"]
	if !truthy(latRaw) || !truthy(lngRaw) {
		return Point{}, false
	}

	lat, ok := coerceFloat(latRaw)
	if !ok {
		return Point{}, false
	}
	lng, ok := coerceFloat(lngRaw)
	if !ok {
		return Point{}, false
	}

	return Point{Lat: lat, Lng: lng}, true
}

func parseObject(raw string) (map[string]any, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, false
	}
	return root, true
}

// scopedLookup pairs one scope with the keys recognized inside it.
type scopedLookup struct {
	scope map[string]any
	keys  []string
}

// firstCandidate scans the lookups in order and returns the first non-null
// value stored under any of that scope's keys. The scan stops at the
// shallowest scope that has one, even if the value later fails numeric
// coercion.
func firstCandidate(lookups []scopedLookup) (any, bool) {
	for _, lookup := range lookups {
		if lookup.scope == nil {
			continue
		}
		for _, key := range lookup.keys {
			if value, ok := lookup.scope[key]; ok && value != nil {
				return value, true
			}
		}
	}
	return nil, false
}

func coerceFloat(value any) (float64, bool) {
	var parsed float64
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		parsed = f
	case float64:
		parsed = v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		parsed = f
	default:
		return 0, false
	}

	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

// truthy mirrors how the legacy dashboard gated strict extraction: a
// JavaScript-style truthiness test on the raw candidate before coercion.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return true
		}
		return f != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
