package domain

type (
	UserId = int64
	PodId  = int64
	MsgId  = int64

	Username = string
	Bio      = string
)

// PodState is the time-derived phase of a pod. The value stored on the pod
// row is a display cache; decision paths always recompute it from the clock.
type PodState string

const (
	PodScheduled PodState = "scheduled"
	PodActive    PodState = "active"
	PodExpired   PodState = "expired"
)

type LaunchMode string

const (
	LaunchManual    LaunchMode = "manual"
	LaunchCountdown LaunchMode = "countdown"
)

func (m LaunchMode) Valid() bool {
	return m == LaunchManual || m == LaunchCountdown
}

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate || v == VisibilityUnlisted
}

// MediaKind is what a single message carries, MediaPolicy is what a pod permits.
type MediaKind string

const (
	MediaKindText  MediaKind = "text"
	MediaKindVoice MediaKind = "voice"
)

func (k MediaKind) Valid() bool {
	return k == MediaKindText || k == MediaKindVoice
}

type MediaPolicy string

const (
	MediaText  MediaPolicy = "text"
	MediaVoice MediaPolicy = "voice"
	MediaBoth  MediaPolicy = "both"
)

func (p MediaPolicy) Valid() bool {
	return p == MediaText || p == MediaVoice || p == MediaBoth
}

func (p MediaPolicy) Allows(k MediaKind) bool {
	switch p {
	case MediaBoth:
		return k.Valid()
	case MediaText:
		return k == MediaKindText
	case MediaVoice:
		return k == MediaKindVoice
	}
	return false
}
