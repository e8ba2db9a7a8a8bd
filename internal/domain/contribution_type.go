package domain

// ContributionType is the enumerated kind of a recorded contribution
type ContributionType string

const (
	ContributionTypeMajorEdit  ContributionType = "major-edit"
	ContributionTypeMinorEdit  ContributionType = "minor-edit"
	ContributionTypeComment    ContributionType = "comment"
	ContributionTypeCitation   ContributionType = "citation"
	ContributionTypeSuggestion ContributionType = "suggestion"
	ContributionTypeReview     ContributionType = "review"
	ContributionTypeMedia      ContributionType = "media"
)

// ContributionTypeInfo describes a contribution type for callers
type ContributionTypeInfo struct {
	Type          ContributionType `json:"type"`
	Label         string           `json:"label"`
	DefaultWeight int64            `json:"default_weight"`
}

// contributionTypes is ordered for stable presentation
var contributionTypes = []ContributionTypeInfo{
	{Type: ContributionTypeMajorEdit, Label: "Major Edit", DefaultWeight: 10},
	{Type: ContributionTypeMinorEdit, Label: "Minor Edit", DefaultWeight: 3},
	{Type: ContributionTypeComment, Label: "Comment", DefaultWeight: 1},
	{Type: ContributionTypeCitation, Label: "Citation Added", DefaultWeight: 5},
	{Type: ContributionTypeSuggestion, Label: "Accepted Suggestion", DefaultWeight: 7},
	{Type: ContributionTypeReview, Label: "Review", DefaultWeight: 4},
	{Type: ContributionTypeMedia, Label: "Media Added", DefaultWeight: 6},
}

// ContributionTypes returns the fixed contribution type table
func ContributionTypes() []ContributionTypeInfo {
	out := make([]ContributionTypeInfo, len(contributionTypes))
	copy(out, contributionTypes)
	return out
}

// LookupContributionType returns the table entry for a type
func LookupContributionType(t ContributionType) (ContributionTypeInfo, bool) {
	for _, info := range contributionTypes {
		if info.Type == t {
			return info, true
		}
	}
	return ContributionTypeInfo{}, false
}

// ContributionWeights maps each contribution type to the weight applied when no explicit weight is given
type ContributionWeights map[ContributionType]int64

// DefaultContributionWeights returns the default weight table
func DefaultContributionWeights() ContributionWeights {
	weights := make(ContributionWeights, len(contributionTypes))
	for _, info := range contributionTypes {
		weights[info.Type] = info.DefaultWeight
	}
	return weights
}

// WithOverrides returns a copy of the table with the given overrides applied.
// Overrides for unknown types or negative weights are ignored.
func (w ContributionWeights) WithOverrides(overrides map[string]int64) ContributionWeights {
	out := make(ContributionWeights, len(w))
	for k, v := range w {
		out[k] = v
	}
	for k, v := range overrides {
		t := ContributionType(k)
		if _, ok := LookupContributionType(t); !ok || v < 0 {
			continue
		}
		out[t] = v
	}
	return out
}
