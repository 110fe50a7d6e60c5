package compliance

import "sort"

// Validation failure reasons, surfaced verbatim to callers. The order of
// checks in ValidateCombination decides which one wins.
const (
	ReasonNoActivity  = "at least one business activity required"
	ReasonNoSector    = "at least one sector required"
	ReasonNoScenarios = "no applicable scenarios for this combination"
)

// ResolveScenarios computes the scenario codes applicable to a selection of
// business activities and sectors. Inputs are treated as sets: order is
// irrelevant and duplicates collapse. The result is the union over the full
// Cartesian product of the two sets, deduplicated and sorted ascending.
//
// Unknown or inapplicable pairs contribute nothing and raise no error; an
// empty input on either side short-circuits to an empty result. Callers that
// need "empty means invalid" semantics use ValidateCombination instead.
func ResolveScenarios(activities, sectors []string) []ScenarioCode {
	if len(activities) == 0 || len(sectors) == 0 {
		return []ScenarioCode{}
	}

	seen := make(map[ScenarioCode]struct{})
	for _, a := range activities {
		for _, s := range sectors {
			for _, code := range CodesFor(BusinessActivity(a), Sector(s)) {
				seen[code] = struct{}{}
			}
		}
	}

	out := make([]ScenarioCode, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CombinationResult is the outcome of ValidateCombination.
type CombinationResult struct {
	Valid  bool
	Reason string
}

// ValidateCombination checks that an activity/sector selection is usable for
// compliance reporting. Checks run in a fixed order so the surfaced reason is
// stable: missing activities, then missing sectors, then an empty resolution.
func ValidateCombination(activities, sectors []string) CombinationResult {
	if len(activities) == 0 {
		return CombinationResult{Valid: false, Reason: ReasonNoActivity}
	}
	if len(sectors) == 0 {
		return CombinationResult{Valid: false, Reason: ReasonNoSector}
	}
	if len(ResolveScenarios(activities, sectors)) == 0 {
		return CombinationResult{Valid: false, Reason: ReasonNoScenarios}
	}
	return CombinationResult{Valid: true}
}

// IsPairApplicable is the strict single-pair check: both labels must belong
// to the closed enumerations and the pair must resolve to at least one code.
//
// Note the deliberate asymmetry with ResolveScenarios, which silently skips
// unknown labels: this function rejects them outright. It serves callers
// probing one explicit pair, where an out-of-enum label is a caller bug
// rather than an inapplicable selection.
func IsPairApplicable(activity, sector string) bool {
	if !BusinessActivity(activity).IsValid() {
		return false
	}
	if !Sector(sector).IsValid() {
		return false
	}
	return len(CodesFor(BusinessActivity(activity), Sector(sector))) > 0
}
