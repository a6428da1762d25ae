package datastructure

import (
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/Accessx/pkg"
	"github.com/paulmach/osm"
)

type Index uint32

/*
EdgeAttributes. read-only view of a pedestrian network edge.

optional attributes are pointers, nil means the tag is absent on the edge.
*/
type EdgeAttributes struct {
	Length       float64  // meter
	Highway      string   // osm highway=*
	Footway      string   // osm footway=*, e.g. crossing
	Elevator     bool     // footway leads to / is an elevator
	OpeningHours *string  // osm opening_hours=*
	Incline      *float64 // grade, rise/run
	CurbRamps    *bool
}

func NewEdgeAttributes(length float64, highway string) *EdgeAttributes {
	return &EdgeAttributes{
		Length:  length,
		Highway: highway,
	}
}

func (e *EdgeAttributes) GetLength() float64 {
	return e.Length
}

func (e *EdgeAttributes) GetHighwayType() pkg.OsmHighwayType {
	return pkg.GetHighwayType(e.Highway)
}

func (e *EdgeAttributes) IsCrossing() bool {
	return e.Footway == pkg.FOOTWAY_CROSSING
}

func (e *EdgeAttributes) GetIncline() (float64, bool) {
	if e.Incline == nil || math.IsNaN(*e.Incline) || math.IsInf(*e.Incline, 0) {
		return 0, false
	}
	return *e.Incline, true
}

func (e *EdgeAttributes) GetOpeningHours() (string, bool) {
	if e.OpeningHours == nil {
		return "", false
	}
	return *e.OpeningHours, true
}

func (e *EdgeAttributes) HasCurbRamps() bool {
	return e.CurbRamps != nil && *e.CurbRamps
}

func (e *EdgeAttributes) SetIncline(incline float64) *EdgeAttributes {
	e.Incline = &incline
	return e
}

func (e *EdgeAttributes) SetCurbRamps(curbRamps bool) *EdgeAttributes {
	e.CurbRamps = &curbRamps
	return e
}

func (e *EdgeAttributes) SetOpeningHours(openingHours string) *EdgeAttributes {
	e.OpeningHours = &openingHours
	return e
}

func (e *EdgeAttributes) SetFootway(footway string) *EdgeAttributes {
	e.Footway = footway
	return e
}

func (e *EdgeAttributes) SetElevator(elevator bool) *EdgeAttributes {
	e.Elevator = elevator
	return e
}

/*
EdgeAttributesFromMap. build EdgeAttributes from a loosely typed edge attribute mapping, as stored on graph edges.
required keys: length, highway. optional keys: footway, elevator, opening_hours, incline, curbramps.

a malformed optional value is treated as missing. a missing/malformed length is kept as NaN and a missing highway
as empty string, both never traversable by the cost functions.
*/
func EdgeAttributesFromMap(d map[string]any) *EdgeAttributes {
	e := &EdgeAttributes{Length: math.NaN()}
	if d == nil {
		return e
	}

	if v, ok := d["length"]; ok {
		if length, ok := toFloat(v); ok {
			e.Length = length
		}
	}
	if v, ok := d["highway"].(string); ok {
		e.Highway = v
	}
	if v, ok := d["footway"].(string); ok {
		e.Footway = v
	}
	if v, ok := d["elevator"]; ok {
		if elevator, ok := toBool(v); ok {
			e.Elevator = elevator
		}
	}
	if v, ok := d["opening_hours"].(string); ok {
		e.OpeningHours = &v
	}
	if v, ok := d["incline"]; ok {
		if incline, ok := toIncline(v); ok {
			e.Incline = &incline
		}
	}
	if v, ok := d["curbramps"]; ok {
		if curbRamps, ok := toBool(v); ok {
			e.CurbRamps = &curbRamps
		}
	}
	return e
}

// EdgeAttributesFromTags. same mapping as EdgeAttributesFromMap, over the osm tags of the way the edge belongs to.
func EdgeAttributesFromTags(tags osm.Tags, length float64) *EdgeAttributes {
	e := NewEdgeAttributes(length, tags.Find("highway"))
	e.Footway = tags.Find("footway")
	if tags.HasTag("elevator") {
		e.Elevator, _ = toBool(tags.Find("elevator"))
	}
	if tags.HasTag("opening_hours") {
		oh := tags.Find("opening_hours")
		e.OpeningHours = &oh
	}
	if tags.HasTag("incline") {
		if incline, ok := toIncline(tags.Find("incline")); ok {
			e.Incline = &incline
		}
	}
	if tags.HasTag("curbramps") {
		if curbRamps, ok := toBool(tags.Find("curbramps")); ok {
			e.CurbRamps = &curbRamps
		}
	}
	return e
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case int:
		return val != 0, true
	case float64:
		return val != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "yes", "true", "1":
			return true, true
		case "no", "false", "0":
			return false, true
		}
	}
	return false, false
}

// toIncline. incline as grade. "5%" -> 0.05, "-0.02" -> -0.02. "up"/"down" carry no grade and are treated as missing.
func toIncline(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil {
				return 0, false
			}
			return validGrade(f / 100)
		}
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return validGrade(f)
}

func validGrade(g float64) (float64, bool) {
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return 0, false
	}
	return g, true
}

// Edge. directed edge u -> v of the pedestrian network with its attributes.
type Edge struct {
	From, To   Index
	Attributes *EdgeAttributes
}
