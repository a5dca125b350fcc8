package access

import (
	"context"
	"strings"

	"github.com/noah-isme/daycare-api/internal/models"
	appErrors "github.com/noah-isme/daycare-api/pkg/errors"
)

// Resource describes the target of an authorization check.
type Resource struct {
	Kind    string
	ID      string
	OwnerID string
}

// Decision is the outcome of a policy.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow grants access.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny refuses access with a reason surfaced to the caller.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Policy decides whether an identity may act on a resource.
type Policy interface {
	Evaluate(ctx context.Context, id Identity, res Resource) (Decision, error)
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(ctx context.Context, id Identity, res Resource) (Decision, error)

// Evaluate implements Policy.
func (f PolicyFunc) Evaluate(ctx context.Context, id Identity, res Resource) (Decision, error) {
	return f(ctx, id, res)
}

// EnrollmentChecker answers the single-row existence check behind child access.
type EnrollmentChecker interface {
	HasApprovedEnrollment(ctx context.Context, parentID, childID string) (bool, error)
}

// RequireRoles allows identities holding one of the roles.
func RequireRoles(roles ...models.UserRole) Policy {
	return PolicyFunc(func(_ context.Context, id Identity, _ Resource) (Decision, error) {
		if HasRole(id, roles...) {
			return Allow(), nil
		}
		return Deny("insufficient role"), nil
	})
}

// OwnerOrStaff allows the resource owner and staff.
func OwnerOrStaff() Policy {
	return PolicyFunc(func(_ context.Context, id Identity, res Resource) (Decision, error) {
		if IsOwnerOrStaff(id, res.OwnerID) {
			return Allow(), nil
		}
		return Deny("not the owner of this " + kindOr(res.Kind, "resource")), nil
	})
}

// Owner allows only the identity whose id matches res.OwnerID.
func Owner() Policy {
	return PolicyFunc(func(_ context.Context, id Identity, res Resource) (Decision, error) {
		if res.OwnerID != "" && id.UserID == res.OwnerID {
			return Allow(), nil
		}
		return Deny("not the owner of this " + kindOr(res.Kind, "resource")), nil
	})
}

// ChildAccess allows staff, and parents holding an approved enrollment for the child in res.ID.
func ChildAccess(checker EnrollmentChecker) Policy {
	return PolicyFunc(func(ctx context.Context, id Identity, res Resource) (Decision, error) {
		if IsStaff(id) {
			return Allow(), nil
		}
		if !HasRole(id, models.RoleParent) || res.ID == "" {
			return Deny("no approved enrollment for child"), nil
		}
		ok, err := checker.HasApprovedEnrollment(ctx, id.UserID, res.ID)
		if err != nil {
			return Decision{}, err
		}
		if !ok {
			return Deny("no approved enrollment for child"), nil
		}
		return Allow(), nil
	})
}

// AnyOf allows when at least one policy allows. Policies run in order and stop at the first allow.
func AnyOf(policies ...Policy) Policy {
	return PolicyFunc(func(ctx context.Context, id Identity, res Resource) (Decision, error) {
		reasons := make([]string, 0, len(policies))
		for _, p := range policies {
			d, err := p.Evaluate(ctx, id, res)
			if err != nil {
				return Decision{}, err
			}
			if d.Allowed {
				return d, nil
			}
			if d.Reason != "" {
				reasons = append(reasons, d.Reason)
			}
		}
		return Deny(strings.Join(reasons, "; ")), nil
	})
}

// AllOf allows only when every policy allows. The first denial wins.
func AllOf(policies ...Policy) Policy {
	return PolicyFunc(func(ctx context.Context, id Identity, res Resource) (Decision, error) {
		for _, p := range policies {
			d, err := p.Evaluate(ctx, id, res)
			if err != nil {
				return Decision{}, err
			}
			if !d.Allowed {
				return d, nil
			}
		}
		return Allow(), nil
	})
}

// Authorize evaluates the policy and maps the outcome onto the error taxonomy:
// nil, Unauthenticated for anonymous callers, Forbidden with the denial reason, or Internal.
func Authorize(ctx context.Context, policy Policy, id Identity, res Resource) error {
	if !id.Authenticated() {
		return appErrors.ErrUnauthenticated
	}
	d, err := policy.Evaluate(ctx, id, res)
	if err != nil {
		return appErrors.Internal(err, "failed to evaluate access")
	}
	if !d.Allowed {
		reason := d.Reason
		if reason == "" {
			reason = appErrors.ErrForbidden.Message
		}
		return appErrors.Clone(appErrors.ErrForbidden, reason)
	}
	return nil
}

func kindOr(kind, fallback string) string {
	if kind == "" {
		return fallback
	}
	return kind
}
