package generic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educa-hq/educa/internal/authz"
	"github.com/educa-hq/educa/internal/shared"
)

func TestResolveFoldsCase(t *testing.T) {
	registry := NewRegistry(AnswerTargets())

	for _, name := range []string{"message", "Message", "MESSAGE"} {
		target, err := registry.Resolve(name)
		require.NoErrorf(t, err, "name %q", name)
		assert.Equal(t, authz.Message, target.Resource)
	}
}

func TestResolveRejectsUnregisteredName(t *testing.T) {
	registry := NewRegistry(AnswerTargets())

	_, err := registry.Resolve("course")
	require.True(t, errors.Is(err, shared.ErrValidation))
	assert.Contains(t, err.Error(), "invalid generic model")
}

func TestActionRegistryAllowsAnswerNotMessage(t *testing.T) {
	registry := NewRegistry(ActionTargets())

	_, err := registry.Resolve("answer")
	assert.NoError(t, err)
	_, err = registry.Resolve("message")
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestAuthorizeRunsFuncRulesBeforeObjectLookup(t *testing.T) {
	target := Target{
		Resource:  authz.Rating,
		FuncRules: []FuncRule{authz.RequireAuthenticated},
		Rules:     []authz.Rule{authz.IsEnrolled{}},
	}

	// Unauthenticated fails before the gate is ever consulted: a nil gate
	// would panic if the object-bound path ran.
	_, err := target.Authorize(context.Background(), nil, nil, 1)
	assert.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestAuthorizeRequiresObjectID(t *testing.T) {
	target := Target{
		Resource: authz.Rating,
		Rules:    []authz.Rule{authz.IsEnrolled{}},
	}

	_, err := target.Authorize(context.Background(), nil, &shared.Principal{ID: 1}, 0)
	require.True(t, errors.Is(err, shared.ErrValidation))
	assert.Contains(t, err.Error(), "object_id")
}

func TestAuthorizeWithoutObjectRulesSkipsGate(t *testing.T) {
	target := Target{
		Resource:  authz.Rating,
		FuncRules: []FuncRule{authz.RequireAuthenticated},
	}

	obj, err := target.Authorize(context.Background(), nil, &shared.Principal{ID: 1}, 0)
	require.NoError(t, err)
	assert.Nil(t, obj)
}
