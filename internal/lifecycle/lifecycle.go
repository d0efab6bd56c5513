// Package lifecycle derives a pod's phase from wall-clock time.
//
// The state stored on a pod row is a display cache only. Anything that
// decides whether an action is allowed must call DeriveState with a live
// clock reading.
package lifecycle

import (
	"time"

	"github.com/peerpods-dev/peerpods/shared/domain"
)

// DeriveState computes the pod phase at the given instant.
//
// With no scheduled launch (manual mode) the pod is active from creation.
// The launch instant itself belongs to active: the active window is the
// closed-open interval [launch, launch+duration), expired from the end
// instant onward. The three phases partition time with no gap or overlap.
func DeriveState(now, createdAt time.Time, scheduledLaunchAt *time.Time, duration time.Duration) domain.PodState {
	launch := createdAt
	if scheduledLaunchAt != nil {
		launch = *scheduledLaunchAt
	}

	switch {
	case now.Before(launch):
		return domain.PodScheduled
	case now.Before(launch.Add(duration)):
		return domain.PodActive
	default:
		return domain.PodExpired
	}
}

// StateOf derives the state of a pod at the given instant.
func StateOf(pod *domain.Pod, now time.Time) domain.PodState {
	return DeriveState(now, pod.CreatedAt, pod.ScheduledLaunchAt, pod.Duration())
}
