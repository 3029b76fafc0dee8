package ast

import "strings"

// Effect is the action a policy clause takes when its conditions hold.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
	EffectMask  Effect = "mask" // redact response data
	EffectLog   Effect = "log"  // observe only
)

// Effects returns every effect the builder accepts, in display order.
func Effects() []Effect {
	return []Effect{EffectAllow, EffectDeny, EffectMask, EffectLog}
}

// Valid reports whether the effect is one of the enumerated set.
func (e Effect) Valid() bool {
	switch e {
	case EffectAllow, EffectDeny, EffectMask, EffectLog:
		return true
	}
	return false
}

// Status is the lifecycle state of a draft, persisted by the policy backend.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
)

// SourceKind records which representation of the policy is authoritative.
// Generation is one-directional: hand edits to the source text do not
// reverse-parse into the condition tree, so once a draft is marked manual the
// two representations may diverge and regeneration is a destructive overwrite
// the caller must opt into.
type SourceKind string

const (
	// SourceTree means the condition tree is authoritative and the Rego text
	// is derived from it.
	SourceTree SourceKind = "tree"

	// SourceManual means the Rego text was edited directly and no longer
	// reflects the condition tree.
	SourceManual SourceKind = "manual"
)

// Draft is the in-progress policy record the builder mutates in memory: name
// and description, the target resource and its paired enforcement point, the
// effect, the condition tree, and the generated (or hand-edited) source text.
type Draft struct {
	// ID identifies the draft, primarily for autosave/crash-recovery keys.
	ID string `yaml:"id" json:"id"`

	// Name is required non-empty before save/test/deploy.
	Name string `yaml:"name" json:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// ResourceID is the protected resource. Required before save/test/deploy.
	ResourceID string `yaml:"resource_id" json:"resource_id"`

	// BouncerID is the enforcement point paired with ResourceID. Selecting a
	// resource in the builder auto-populates it. Required before
	// save/test/deploy.
	BouncerID string `yaml:"bouncer_id" json:"bouncer_id"`

	// Effect is the clause action: allow, deny, mask, or log.
	Effect Effect `yaml:"effect" json:"effect"`

	// RequiredAttributes are input attributes the clause asserts as present,
	// one free-standing truthy check per entry.
	RequiredAttributes []string `yaml:"required_attributes,omitempty" json:"required_attributes,omitempty"`

	// Conditions is the root condition group.
	Conditions *Group `yaml:"conditions" json:"conditions"`

	// Rego is the generated or hand-edited source text.
	Rego string `yaml:"rego,omitempty" json:"rego,omitempty"`

	// Source records whether Rego was derived from the tree or edited by hand.
	Source SourceKind `yaml:"source,omitempty" json:"source,omitempty"`

	// Status is the lifecycle flag persisted by the policy backend.
	Status Status `yaml:"status,omitempty" json:"status,omitempty"`

	// ContextConfig carries enrichment/side-effect configuration. Opaque to
	// this core; passed through to the backend untouched.
	ContextConfig map[string]any `yaml:"context_config,omitempty" json:"context_config,omitempty"`
}

// Clone returns a deep copy of the draft, including its condition tree.
func (d *Draft) Clone() *Draft {
	c := *d
	if d.Conditions != nil {
		c.Conditions = d.Conditions.CloneGroup()
	}
	if d.RequiredAttributes != nil {
		c.RequiredAttributes = append([]string(nil), d.RequiredAttributes...)
	}
	if d.ContextConfig != nil {
		c.ContextConfig = make(map[string]any, len(d.ContextConfig))
		for k, v := range d.ContextConfig {
			c.ContextConfig[k] = v
		}
	}
	return &c
}

// ReadyToPersist reports whether the draft passes the minimal completeness
// check gating save, test, and deploy: name, resource, and enforcement point
// all non-blank after trimming. Deployment environments carry no additional
// structural validation beyond this.
func (d *Draft) ReadyToPersist() bool {
	return strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.ResourceID) != "" &&
		strings.TrimSpace(d.BouncerID) != ""
}
