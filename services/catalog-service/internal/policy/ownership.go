package policy

import (
	"github.com/vasapolrittideah/course-catalog-api/services/catalog-service/internal/model"
	"github.com/vasapolrittideah/course-catalog-api/shared/auth"
)

// OwnershipPolicy decides whether an identity may mutate a course.
type OwnershipPolicy interface {
	CanMutate(identity auth.Identity, course *model.Course) bool
}

type creatorPolicy struct{}

// NewCreatorPolicy returns a policy that allows only the recorded creator.
// Courses without a creator cannot be mutated by anyone.
func NewCreatorPolicy() OwnershipPolicy {
	return creatorPolicy{}
}

func (creatorPolicy) CanMutate(identity auth.Identity, course *model.Course) bool {
	if course == nil || identity.ID == "" {
		return false
	}

	creator := course.CreatorID()
	return creator != "" && creator == identity.ID
}

type allowAllPolicy struct{}

// NewAllowAllPolicy returns a policy that lets any authenticated identity mutate
// any course. This is the behaviour when ownership enforcement is turned off.
func NewAllowAllPolicy() OwnershipPolicy {
	return allowAllPolicy{}
}

func (allowAllPolicy) CanMutate(identity auth.Identity, _ *model.Course) bool {
	return identity.ID != ""
}
