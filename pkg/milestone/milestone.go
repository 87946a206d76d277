package milestone

import (
	"github.com/matzehuels/learnpath/pkg/graph"
)

// Phase names the stage of a learning path a milestone belongs to. It is
// derived from the milestone's dominant level.
type Phase string

const (
	PhaseFoundations       Phase = "FOUNDATIONS"
	PhaseCoreSkills        Phase = "CORE_SKILLS"
	PhaseAdvancedSystems   Phase = "ADVANCED_SYSTEMS"
	PhaseSpecializedTopics Phase = "SPECIALIZED_TOPICS"
)

// PhaseFor returns the phase label for a dominant level.
func PhaseFor(l graph.Level) Phase {
	switch l {
	case graph.LevelBasic:
		return PhaseFoundations
	case graph.LevelIntermediate:
		return PhaseCoreSkills
	case graph.LevelAdvanced:
		return PhaseAdvancedSystems
	default:
		return PhaseSpecializedTopics
	}
}

// Milestone is one bounded step of a learning path.
type Milestone struct {
	// Index is the 0-based position of the milestone in the path.
	Index int `json:"index" yaml:"index"`

	// Nodes lists member IDs in display order, which is their relative order
	// in the topological ordering.
	Nodes []string `json:"nodes" yaml:"nodes"`

	// Hours is the sum of the members' estimated hours.
	Hours float64 `json:"hours" yaml:"hours"`

	// Level is the most common member level. Ties go to the higher level.
	Level graph.Level `json:"level" yaml:"level"`

	// Phase is derived from Level.
	Phase Phase `json:"phase" yaml:"phase"`

	// OverCapacity is set when honoring a pin kept a node in this milestone
	// past MaxNodes or MaxHours.
	OverCapacity bool `json:"over_capacity,omitempty" yaml:"over_capacity,omitempty"`
}

// Contains reports whether id is a member of m.
func (m Milestone) Contains(id string) bool {
	for _, n := range m.Nodes {
		if n == id {
			return true
		}
	}
	return false
}

// dominant returns the mode of levels, breaking ties toward the higher level.
func dominant(levels []graph.Level) graph.Level {
	counts := make([]int, len(graph.Levels))
	for _, l := range levels {
		if int(l) >= 0 && int(l) < len(counts) {
			counts[l]++
		}
	}
	best := len(counts) - 1
	for i := best - 1; i >= 0; i-- {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return graph.Level(best)
}

// Assignment maps every node ID to the index of the milestone holding it.
func Assignment(ms []Milestone) map[string]int {
	out := make(map[string]int)
	for _, m := range ms {
		for _, id := range m.Nodes {
			out[id] = m.Index
		}
	}
	return out
}
