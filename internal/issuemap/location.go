package issuemap

import (
	"math"
	"strconv"
	"strings"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseLocation reads a "lat,lng" string. It reports false for anything that
// cannot be placed on the map: wrong part count, unparsable or non-finite
// numbers, and coordinates outside the valid ranges.
func ParseLocation(s string) (Point, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, false
	}

	lat, ok := parseCoord(parts[0])
	if !ok || lat < -90 || lat > 90 {
		return Point{}, false
	}
	lng, ok := parseCoord(parts[1])
	if !ok || lng < -180 || lng > 180 {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}

func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
