package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAnonymous = "anonymous"
	RoleUser      = "user"
	RoleAdmin     = "admin"

	ObjectCatalog  = "catalog"
	ObjectRecipe   = "recipe"
	ObjectRelation = "relation"
	ObjectUser     = "user"

	ActionRead  = "read"
	ActionWrite = "write"
)

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Enforcer answers role/object/action questions. Ownership of a recipe is
// checked by the domain, not here.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	policies := [][]string{
		{RoleAnonymous, ObjectCatalog, ActionRead},
		{RoleAnonymous, ObjectRecipe, ActionRead},
		{RoleAnonymous, ObjectUser, ActionRead},
		{RoleUser, ObjectRecipe, ActionWrite},
		{RoleUser, ObjectRelation, ActionRead},
		{RoleUser, ObjectRelation, ActionWrite},
		{RoleAdmin, ObjectCatalog, ActionWrite},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	grouping := [][]string{
		{RoleUser, RoleAnonymous},
		{RoleAdmin, RoleUser},
	}
	if _, err := e.AddGroupingPolicies(grouping); err != nil {
		return nil, fmt.Errorf("failed to load role hierarchy: %w", err)
	}

	return &Enforcer{enforcer: e}, nil
}

func (e *Enforcer) Allowed(role, object, action string) (bool, error) {
	return e.enforcer.Enforce(role, object, action)
}
