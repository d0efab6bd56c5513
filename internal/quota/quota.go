// Package quota holds the pure allowance rules evaluated on every post.
// Counts are read fresh per request by the caller; nothing here caches.
package quota

import (
	"time"

	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/shared/domain"
)

type Policy struct {
	membershipCap int
	location      *time.Location
}

// NewPolicy creates a quota policy. membershipCap is the maximum number of
// distinct pods a participant may be active in; location defines where the
// calendar day for daily caps rolls over.
func NewPolicy(membershipCap int, location *time.Location) *Policy {
	if location == nil {
		location = time.UTC
	}
	return &Policy{membershipCap: membershipCap, location: location}
}

func (p *Policy) MembershipCap() int {
	return p.membershipCap
}

// StartOfDay returns midnight of "today" in the configured location, as a
// UTC instant suitable for created_at comparisons.
func (p *Policy) StartOfDay(now time.Time) time.Time {
	local := now.In(p.location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.location)
	return midnight.UTC()
}

// CheckDaily rejects once todayCount has reached the pod's per-day ceiling.
func (p *Policy) CheckDaily(todayCount, maxPerDay int) error {
	if todayCount >= maxPerDay {
		return internal_errors.QuotaExceeded
	}
	return nil
}

// CheckMembership rejects a post into a new pod when the participant is
// already at the cap. Posting again into a pod they are a member of is
// always allowed. memberPods is the set of distinct pods the participant
// has posted in plus the pods they created (creation counts toward the cap).
func (p *Policy) CheckMembership(memberPods []domain.PodId, target domain.PodId) error {
	for _, id := range memberPods {
		if id == target {
			return nil
		}
	}
	if len(memberPods) >= p.membershipCap {
		return internal_errors.MembershipCapExceeded
	}
	return nil
}
