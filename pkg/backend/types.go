package backend

import "kestrel-hq/forge/pkg/control/editor"

// Environment is a deployment target. Environments differ only in the
// confirmation messaging the caller shows; production deploys carry the same
// structural validation as any other.
type Environment string

const (
	EnvDraft      Environment = "draft"
	EnvSandbox    Environment = "sandbox"
	EnvStaging    Environment = "staging"
	EnvProduction Environment = "production"
)

// Valid reports whether the environment is one of the known targets.
func (e Environment) Valid() bool {
	switch e {
	case EnvDraft, EnvSandbox, EnvStaging, EnvProduction:
		return true
	}
	return false
}

// LintViolation is one finding from the advisory lint service. Violations
// never mutate the draft; they only drive inline annotations.
type LintViolation struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Rule     string `json:"rule,omitempty"`
	Category string `json:"category,omitempty"`
}

// Suggestion is one smart suggestion for a resource. When Implementation is
// set the user can apply it to the draft; it travels as the same structured
// mutation shape a hand edit uses, so it passes through the same leaf-limit
// gate.
type Suggestion struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Implementation *editor.Mutation `json:"implementation,omitempty"`
}
