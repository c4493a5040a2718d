package domain

import (
	"errors"
	"strconv"
	"strings"
)

// AreaKind tags the variant of an AreaFilter.
type AreaKind int

const (
	AreaCircle AreaKind = iota
	AreaRectangle
)

// AreaFilter is the structured form of the wire-level in_area parameter,
// parsed once at the boundary.
type AreaFilter struct {
	Kind AreaKind

	// Circle fields.
	Lat, Lon, RadiusMeters float64

	// Rectangle fields, inclusive bounds.
	MinLat, MinLon, MaxLat, MaxLon float64
}

var ErrInvalidArea = errors.New("invalid_area_filter")

// ParseAreaFilter decodes the wire formats
//
//	circle:<lat>,<lon>,<radius>
//	rect:<minLat>,<minLon>,<maxLat>,<maxLon>
//
// Any other prefix, wrong arity, or non-numeric part is ErrInvalidArea.
func ParseAreaFilter(raw string) (*AreaFilter, error) {
	prefix, body, ok := strings.Cut(raw, ":")
	if !ok {
		return nil, ErrInvalidArea
	}

	switch prefix {
	case "circle":
		parts, err := parseFloats(body, 3)
		if err != nil {
			return nil, err
		}
		return &AreaFilter{
			Kind:         AreaCircle,
			Lat:          parts[0],
			Lon:          parts[1],
			RadiusMeters: parts[2],
		}, nil
	case "rect":
		parts, err := parseFloats(body, 4)
		if err != nil {
			return nil, err
		}
		return &AreaFilter{
			Kind:   AreaRectangle,
			MinLat: parts[0],
			MinLon: parts[1],
			MaxLat: parts[2],
			MaxLon: parts[3],
		}, nil
	default:
		return nil, ErrInvalidArea
	}
}

func parseFloats(body string, count int) ([]float64, error) {
	parts := strings.Split(body, ",")
	if len(parts) != count {
		return nil, ErrInvalidArea
	}
	values := make([]float64, count)
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, ErrInvalidArea
		}
		values[i] = value
	}
	return values, nil
}
