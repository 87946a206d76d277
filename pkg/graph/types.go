package graph

import (
	"fmt"
	"strings"
)

// Level is the skill level a repository demands of a learner.
// Levels are ordered: LevelBasic < LevelIntermediate < LevelAdvanced < LevelExpert.
type Level int

const (
	LevelBasic Level = iota
	LevelIntermediate
	LevelAdvanced
	LevelExpert
)

var levelNames = []string{"BASIC", "INTERMEDIATE", "ADVANCED", "EXPERT"}

// Levels lists every level in ascending order.
var Levels = []Level{LevelBasic, LevelIntermediate, LevelAdvanced, LevelExpert}

func (l Level) String() string { return enumName(levelNames, int(l), "Level") }

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) { return marshalEnum(levelNames, int(l), "level") }

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (l *Level) UnmarshalText(b []byte) error {
	v, err := parseEnum(levelNames, string(b), "level")
	if err != nil {
		return err
	}
	*l = Level(v)
	return nil
}

// ParseLevel parses a level name such as "basic" or "EXPERT".
func ParseLevel(s string) (Level, error) {
	var l Level
	err := l.UnmarshalText([]byte(s))
	return l, err
}

// EdgeType classifies the relation an edge expresses. Only [Prerequisite]
// edges constrain ordering; the other types are advisory.
type EdgeType int

const (
	Prerequisite EdgeType = iota
	Recommended
	Related
)

var edgeTypeNames = []string{"PREREQUISITE", "RECOMMENDED", "RELATED"}

func (t EdgeType) String() string { return enumName(edgeTypeNames, int(t), "EdgeType") }

// MarshalText implements encoding.TextMarshaler.
func (t EdgeType) MarshalText() ([]byte, error) { return marshalEnum(edgeTypeNames, int(t), "edge type") }

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (t *EdgeType) UnmarshalText(b []byte) error {
	v, err := parseEnum(edgeTypeNames, string(b), "edge type")
	if err != nil {
		return err
	}
	*t = EdgeType(v)
	return nil
}

// Strength is how strongly an edge's source is needed before its target.
// Strengths are ordered: Weak < Moderate < Strong < Critical.
type Strength int

const (
	Weak Strength = iota
	Moderate
	Strong
	Critical
)

var strengthNames = []string{"WEAK", "MODERATE", "STRONG", "CRITICAL"}

func (s Strength) String() string { return enumName(strengthNames, int(s), "Strength") }

// MarshalText implements encoding.TextMarshaler.
func (s Strength) MarshalText() ([]byte, error) { return marshalEnum(strengthNames, int(s), "strength") }

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (s *Strength) UnmarshalText(b []byte) error {
	v, err := parseEnum(strengthNames, string(b), "strength")
	if err != nil {
		return err
	}
	*s = Strength(v)
	return nil
}

// Origin records who asserted an edge.
type Origin int

const (
	// Inferred edges come from the upstream analyzer.
	Inferred Origin = iota
	// ManualOverride edges were added by a caller override and are only
	// removed by the cycle resolver as a last resort.
	ManualOverride
)

var originNames = []string{"INFERRED", "MANUAL_OVERRIDE"}

func (o Origin) String() string { return enumName(originNames, int(o), "Origin") }

// MarshalText implements encoding.TextMarshaler.
func (o Origin) MarshalText() ([]byte, error) { return marshalEnum(originNames, int(o), "origin") }

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (o *Origin) UnmarshalText(b []byte) error {
	v, err := parseEnum(originNames, string(b), "origin")
	if err != nil {
		return err
	}
	*o = Origin(v)
	return nil
}

func enumName(names []string, v int, typ string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", typ, v)
	}
	return names[v]
}

func marshalEnum(names []string, v int, what string) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("invalid %s %d", what, v)
	}
	return []byte(names[v]), nil
}

func parseEnum(names []string, s, what string) (int, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (must be one of: %s)", what, s, strings.Join(names, ", "))
}
