// Package templates provides canned starter drafts the builder offers when a
// new policy is created, so users begin from a working condition tree instead
// of a blank one.
package templates

import (
	"kestrel-hq/forge/pkg/control/ast"
)

// Template is a named starter draft.
type Template struct {
	// ID is the stable template identifier (kebab-case).
	ID string

	// Name and Description are shown in the template picker.
	Name        string
	Description string

	// build constructs the draft; newID allocates node ids.
	build func(newID func() string) *ast.Draft
}

// Build instantiates the template's draft with fresh node ids from newID.
func (t Template) Build(newID func() string) *ast.Draft {
	draft := t.build(newID)
	draft.ID = newID()
	draft.Source = ast.SourceTree
	draft.Status = ast.StatusDraft
	return draft
}

// All returns the available templates in display order.
func All() []Template {
	return []Template{roleGate, businessHours, networkCIDR}
}

// ByID returns the template with the given id, or false if none matches.
func ByID(id string) (Template, bool) {
	for _, t := range All() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

var roleGate = Template{
	ID:          "role-gate",
	Name:        "Role gate",
	Description: "Allow access only to callers holding one of a set of roles.",
	build: func(newID func() string) *ast.Draft {
		return &ast.Draft{
			Name:        "Role Gate",
			Description: "Allow requests from privileged roles only.",
			Effect:      ast.EffectAllow,
			Conditions: &ast.Group{
				ID: newID(),
				Op: ast.GroupOpAnd,
				Conditions: []ast.Node{
					&ast.Rule{
						ID:        newID(),
						Attribute: "user.role",
						Operator:  ast.OperatorIn,
						Value:     "admin,owner",
					},
				},
			},
		}
	},
}

var businessHours = Template{
	ID:          "business-hours",
	Name:        "Business hours",
	Description: "Deny access outside working days.",
	build: func(newID func() string) *ast.Draft {
		return &ast.Draft{
			Name:        "Business Hours",
			Description: "Deny requests on weekends.",
			Effect:      ast.EffectDeny,
			Conditions: &ast.Group{
				ID: newID(),
				Op: ast.GroupOpAnd,
				Conditions: []ast.Node{
					&ast.Rule{
						ID:        newID(),
						BuiltinFn: `time.weekday(time.now_ns()) in ["Saturday", "Sunday"]`,
					},
				},
			},
		}
	},
}

var networkCIDR = Template{
	ID:          "network-cidr",
	Name:        "Network range",
	Description: "Allow access only from a trusted network range.",
	build: func(newID func() string) *ast.Draft {
		return &ast.Draft{
			Name:        "Trusted Network",
			Description: "Allow requests from the corporate network only.",
			Effect:      ast.EffectAllow,
			Conditions: &ast.Group{
				ID: newID(),
				Op: ast.GroupOpAnd,
				Conditions: []ast.Node{
					&ast.Rule{
						ID:        newID(),
						Attribute: "request.ip",
						BuiltinFn: `net.cidr_contains("10.0.0.0/8", input.request.ip)`,
						Operator:  ast.OperatorNotEqual,
						Value:     "",
					},
				},
			},
		}
	},
}
