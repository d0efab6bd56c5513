package errors

import (
	"net/http"

	shared_errors "github.com/peerpods-dev/peerpods/shared/errors"
)

// Admission and matching error taxonomy. Sentinel values so callers can
// discriminate with errors.Is while handlers map them straight to status codes.
var (
	UserNotFound    = &shared_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	PodNotFound     = &shared_errors.ErrorWithStatusCode{Message: "Pod not found", StatusCode: http.StatusNotFound}
	MessageNotFound = &shared_errors.ErrorWithStatusCode{Message: "Message not found", StatusCode: http.StatusNotFound}

	// Pod is scheduled or expired; posting is only possible while active.
	PodNotActive = &shared_errors.ErrorWithStatusCode{Message: "Pod is not active", StatusCode: http.StatusConflict}

	// The message media kind is not permitted by the pod's media policy.
	MediaNotAllowed = &shared_errors.ErrorWithStatusCode{Message: "Media kind not allowed in this pod", StatusCode: http.StatusUnprocessableEntity}

	// Posting here would put the participant over their distinct-pod ceiling.
	MembershipCapExceeded = &shared_errors.ErrorWithStatusCode{Message: "Active pod limit reached", StatusCode: http.StatusConflict}

	// Daily per-pod message allowance is spent; resets at local midnight.
	QuotaExceeded = &shared_errors.ErrorWithStatusCode{Message: "Daily message quota exceeded", StatusCode: http.StatusTooManyRequests}

	// Embedding adapter failed; the caller may fall back to an unranked listing.
	MatchingUnavailable = &shared_errors.ErrorWithStatusCode{Message: "Recommendations temporarily unavailable", StatusCode: http.StatusServiceUnavailable}

	InvalidPodConfig = &shared_errors.ErrorWithStatusCode{Message: "Invalid pod configuration", StatusCode: http.StatusBadRequest}
)
