package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type PodCreationData struct {
	Creator           UserId
	Title             string
	Description       string
	DurationHours     int
	DriftTolerance    int
	LaunchMode        LaunchMode
	ScheduledLaunchAt *time.Time // required when LaunchMode == countdown
	MaxMessagesPerDay int
	MediaPolicy       MediaPolicy
	Visibility        Visibility
}

type Pod struct {
	Id                PodId
	Creator           UserId
	Title             string
	Description       string
	DurationHours     int
	DriftTolerance    int // advisory, 1-5
	LaunchMode        LaunchMode
	ScheduledLaunchAt *time.Time
	MaxMessagesPerDay int
	MediaPolicy       MediaPolicy
	Visibility        Visibility
	State             PodState // cached projection, refreshed on demand
	CreatedAt         time.Time
}

func (p *Pod) Duration() time.Duration {
	return time.Duration(p.DurationHours) * time.Hour
}

// PodCandidate carries the occupancy data the matching engine filters on.
type PodCandidate struct {
	Pod
	DistinctParticipants int
}

// PodMatch is one ranked recommendation.
type PodMatch struct {
	Pod       Pod
	Relevance int // bounded [0, 100]
}
