package validation

// Error is a single field-scoped rule violation.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result aggregates the outcome of running a rule set. Errors keep the
// declaration order of the rules that produced them.
type Result struct {
	Valid  bool    `json:"valid"`
	Errors []Error `json:"errors,omitempty"`
}

// Messages flattens the error list into plain strings.
func (r Result) Messages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}
	return out
}

// Rule is one declarative check. Ok was evaluated against a snapshot of the
// subject when the rule set was built, so running a set has no side effects.
type Rule struct {
	Field   string
	Ok      bool
	Message string
}

// Check builds a rule for the given field.
func Check(field string, ok bool, message string) Rule {
	return Rule{Field: field, Ok: ok, Message: message}
}

// RuleSet is an ordered list of rules evaluated as a unit.
type RuleSet []Rule

// Validate collects every violated rule in order.
func (rs RuleSet) Validate() Result {
	var errs []Error
	for _, r := range rs {
		if !r.Ok {
			errs = append(errs, Error{Field: r.Field, Message: r.Message})
		}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}
