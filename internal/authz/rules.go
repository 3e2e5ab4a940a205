package authz

import (
	"fmt"
	"strings"

	"github.com/educa-hq/educa/internal/shared"
)

// Annotation aliases shared between rules.
const (
	FlagInstructor = "user_is_instructor"
	FlagEnrolled   = "user_is_enrolled"
)

// Rule is a composable policy bound to a resource type. Compose augments
// the lookup query; with many=true it additionally filters the collection,
// which is the entire enforcement in list mode. Check validates a resolved
// row in single mode.
type Rule interface {
	Compose(q *Query, many bool)
	Check(p *shared.Principal, obj *Object) error
}

func instructorExpr(q *Query) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM course_instructors ci WHERE ci.course_id = %s AND ci.user_id = %s)",
		q.CourseRef(), q.PrincipalArg(),
	)
}

func enrolledExpr(q *Query) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM course_relations cr WHERE cr.course_id = %s AND cr.creator_id = %s)",
		q.CourseRef(), q.PrincipalArg(),
	)
}

// IsCourseInstructor passes when the principal belongs to the instructor
// set of the resource's owning course.
type IsCourseInstructor struct{}

func (IsCourseInstructor) Compose(q *Query, many bool) {
	expr := instructorExpr(q)
	q.Annotate(FlagInstructor, expr)
	if many {
		q.Filter(expr)
	}
}

func (IsCourseInstructor) Check(p *shared.Principal, obj *Object) error {
	if !obj.Flag(FlagInstructor) {
		return fmt.Errorf("%w: only course instructors are allowed to perform this action", shared.ErrForbidden)
	}
	return nil
}

// IsEnrolled passes when the principal is enrolled in the owning course or
// is one of its instructors. It reuses the instructor annotation and adds
// its own, then accepts the logical OR of both flags.
type IsEnrolled struct{}

func (IsEnrolled) Compose(q *Query, many bool) {
	instructor := instructorExpr(q)
	enrolled := enrolledExpr(q)
	q.Annotate(FlagInstructor, instructor)
	q.Annotate(FlagEnrolled, enrolled)
	if many {
		q.Filter("(" + instructor + " OR " + enrolled + ")")
	}
}

func (IsEnrolled) Check(p *shared.Principal, obj *Object) error {
	if !obj.Flag(FlagEnrolled) && !obj.Flag(FlagInstructor) {
		return fmt.Errorf("%w: only users enrolled in this course are allowed to perform this action", shared.ErrForbidden)
	}
	return nil
}

// IsCreator passes when the principal created the resource row.
type IsCreator struct{}

func (IsCreator) Compose(q *Query, many bool) {
	if many && q.Resource().CreatorCol != "" {
		q.Filter(fmt.Sprintf("t.%s = %s", q.Resource().CreatorCol, q.PrincipalArg()))
	}
}

func (IsCreator) Check(p *shared.Principal, obj *Object) error {
	if obj.CreatorID != p.ID {
		return fmt.Errorf("%w: only the creator is allowed to perform this action", shared.ErrForbidden)
	}
	return nil
}

// Any passes when at least one of its child rules passes. Every child
// still composes its annotations so each check has its flags available.
type Any []Rule

func (a Any) Compose(q *Query, many bool) {
	if !many {
		for _, rule := range a {
			rule.Compose(q, false)
		}
		return
	}
	sub := &Query{res: q.res, principalArg: q.principalArg}
	parts := make([]string, 0, len(a))
	for _, rule := range a {
		sub.filters = sub.filters[:0]
		rule.Compose(sub, true)
		if len(sub.filters) > 0 {
			parts = append(parts, sub.predicate())
		}
	}
	if len(parts) > 0 {
		q.Filter("(" + strings.Join(parts, " OR ") + ")")
	}
}

func (a Any) Check(p *shared.Principal, obj *Object) error {
	var err error
	for _, rule := range a {
		if err = rule.Check(p, obj); err == nil {
			return nil
		}
	}
	return err
}

// RequireAuthenticated is a function-style rule with no associated object.
func RequireAuthenticated(p *shared.Principal) error {
	if p == nil {
		return shared.ErrUnauthorized
	}
	return nil
}

// RequireAdmin is a function-style rule: the principal must carry the
// staff flag. Checked once at entry, independent of any resource.
func RequireAdmin(p *shared.Principal) error {
	if p == nil {
		return shared.ErrUnauthorized
	}
	if !p.IsStaff {
		return fmt.Errorf("%w: only admin are allowed to perform this action", shared.ErrForbidden)
	}
	return nil
}
