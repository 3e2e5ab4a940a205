// Package generic resolves polymorphic content references. Endpoints that
// act on "some content object" name its concrete type as a string; only
// members of a closed, per-endpoint-family registry are dereferenceable.
package generic

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

// FuncRule is a stateless permission check with no associated object.
type FuncRule func(*shared.Principal) error

// Target couples an allow-listed resource with its permission chain.
type Target struct {
	Resource authz.Resource
	// FuncRules run immediately, unconditionally of object resolution.
	FuncRules []FuncRule
	// Rules are object-bound, enforced through the gate against object_id.
	Rules []authz.Rule
}

// Registry is a closed mapping from a folded model name to a target.
// Immutable after construction.
type Registry struct {
	targets map[string]Target
}

var fold = cases.Fold()

// NewRegistry builds a registry, folding the keys once at startup.
func NewRegistry(targets map[string]Target) *Registry {
	folded := make(map[string]Target, len(targets))
	for name, target := range targets {
		folded[fold.String(name)] = target
	}
	return &Registry{targets: folded}
}

// Resolve maps a caller-supplied model name to its target. Unregistered
// names are rejected before any object lookup happens, so an invalid type
// can never leak whether a given id exists.
func (r *Registry) Resolve(name string) (Target, error) {
	target, ok := r.targets[fold.String(name)]
	if !ok {
		return Target{}, fmt.Errorf("%w: invalid generic model", shared.ErrValidation)
	}
	return target, nil
}

// Authorize runs the target's permission chain: function-style rules
// first, then the object-bound rules through the gate. Unlike the gate's
// optional resolution, a missing object id here is a hard error, because
// no type-specific rule can be evaluated without a concrete instance.
func (t Target) Authorize(ctx context.Context, gate *authz.Gate, p *shared.Principal, objectID int64) (*authz.Object, error) {
	for _, rule := range t.FuncRules {
		if err := rule(p); err != nil {
			return nil, err
		}
	}
	if len(t.Rules) == 0 {
		return nil, nil
	}
	if objectID <= 0 {
		return nil, fmt.Errorf("%w: object_id is required", shared.ErrValidation)
	}
	return gate.Resolve(ctx, t.Resource, p, objectID, t.Rules...)
}

// AnswerTargets lists the content types an answer may attach to.
func AnswerTargets() map[string]Target {
	return map[string]Target{
		"message": {
			Resource:  authz.Message,
			FuncRules: []FuncRule{authz.RequireAuthenticated},
			Rules:     []authz.Rule{authz.IsEnrolled{}},
		},
		"rating": {
			Resource:  authz.Rating,
			FuncRules: []FuncRule{authz.RequireAuthenticated},
			Rules:     []authz.Rule{authz.IsEnrolled{}},
		},
		"question": {
			Resource:  authz.Question,
			FuncRules: []FuncRule{authz.RequireAuthenticated},
			Rules:     []authz.Rule{authz.IsEnrolled{}},
		},
	}
}

// ActionTargets lists the content types a like/dislike may attach to.
func ActionTargets() map[string]Target {
	return map[string]Target{
		"answer": {
			Resource:  authz.Answer,
			FuncRules: []FuncRule{authz.RequireAuthenticated},
			Rules:     []authz.Rule{authz.IsEnrolled{}},
		},
		"rating": {
			Resource:  authz.Rating,
			FuncRules: []FuncRule{authz.RequireAuthenticated},
			Rules:     []authz.Rule{authz.IsEnrolled{}},
		},
		"question": {
			Resource:  authz.Question,
			FuncRules: []FuncRule{authz.RequireAuthenticated},
			Rules:     []authz.Rule{authz.IsEnrolled{}},
		},
	}
}
