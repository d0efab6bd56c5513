// Package admission decides whether a message-post attempt is permitted
// right now. A rejection is final for that instant; nothing retries here.
package admission

import (
	"time"

	"github.com/peerpods-dev/peerpods/internal/clock"
	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/internal/lifecycle"
	"github.com/peerpods-dev/peerpods/internal/quota"
	"github.com/peerpods-dev/peerpods/shared/domain"
)

// Storage supplies the fresh counts admission needs. No cached counters.
// These checks fix the rejection order; the storage layer re-enforces both
// caps atomically when the message is inserted.
type Storage interface {
	// CountMessagesSince counts messages by author in pod with created_at >= since.
	CountMessagesSince(author domain.UserId, pod domain.PodId, since time.Time) (int, error)
	// MemberPods returns the distinct pods the author has posted in,
	// plus the pods they created.
	MemberPods(author domain.UserId) ([]domain.PodId, error)
}

type Controller struct {
	storage Storage
	policy  *quota.Policy
	clock   clock.Clock
}

func New(storage Storage, policy *quota.Policy, clk clock.Clock) *Controller {
	return &Controller{storage, policy, clk}
}

// AdmitMessage runs the admission pipeline, short-circuiting on the first
// failure: pod must be active, the media kind permitted, the membership cap
// respected and the daily allowance unspent.
//
// The pod's cached State field is deliberately ignored; the phase is
// recomputed from the clock so a lagging refresh can never wrongly admit.
func (c *Controller) AdmitMessage(pod *domain.Pod, author domain.UserId, kind domain.MediaKind) error {
	now := c.clock.Now()

	if lifecycle.StateOf(pod, now) != domain.PodActive {
		return internal_errors.PodNotActive
	}

	if !pod.MediaPolicy.Allows(kind) {
		return internal_errors.MediaNotAllowed
	}

	memberPods, err := c.storage.MemberPods(author)
	if err != nil {
		return err
	}
	if err := c.policy.CheckMembership(memberPods, pod.Id); err != nil {
		return err
	}

	todayCount, err := c.storage.CountMessagesSince(author, pod.Id, c.policy.StartOfDay(now))
	if err != nil {
		return err
	}
	if err := c.policy.CheckDaily(todayCount, pod.MaxMessagesPerDay); err != nil {
		return err
	}

	return nil
}
