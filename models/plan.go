package models

// Sowing methods a plan may select.
const (
	MethodEither     = "either"
	MethodDirectSow  = "direct_sow"
	MethodTransplant = "transplant"
)

// Season selections.
const (
	SeasonBoth   = "both"
	SeasonSpring = "spring"
	SeasonFall   = "fall"
)

// Plan is a user's per-plant planting choice. A resolved plan always
// has all three fields populated; DefaultPlan supplies the values used
// when nothing has been saved yet.
type Plan struct {
	Method string `json:"method" yaml:"method" validate:"required,oneof=either direct_sow transplant"`
	Season string `json:"season" yaml:"season" validate:"required,oneof=both spring fall"`
	Cycles int    `json:"cycles" yaml:"cycles" validate:"required,min=1"`
}

// DefaultPlan is the plan assumed for any plant the user has not
// configured.
func DefaultPlan() Plan {
	return Plan{Method: MethodEither, Season: SeasonBoth, Cycles: 1}
}

// PlanPatch is a partial plan update. Nil fields are left unchanged.
type PlanPatch struct {
	Method *string `json:"method,omitempty"`
	Season *string `json:"season,omitempty"`
	Cycles *int    `json:"cycles,omitempty"`
}

// Merge applies the patch over p and returns the result. Cycles is
// coerced to at least 1; a plan never carries a non-positive cycle
// count.
func (p Plan) Merge(patch PlanPatch) Plan {
	out := p
	if patch.Method != nil {
		out.Method = *patch.Method
	}
	if patch.Season != nil {
		out.Season = *patch.Season
	}
	if patch.Cycles != nil {
		out.Cycles = *patch.Cycles
	}
	if out.Cycles < 1 {
		out.Cycles = 1
	}
	return out
}
