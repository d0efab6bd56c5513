package pg

import (
	"database/sql"
	"errors"

	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/shared/domain"
)

const podColumns = `id, creator_id, title, description, duration_hours, drift_tolerance,
	launch_mode, scheduled_launch_at, max_messages_per_day, media_policy, visibility, state, created_at`

func scanPod(row interface{ Scan(...any) error }) (*domain.Pod, error) {
	var pod domain.Pod
	var launchAt sql.NullTime
	err := row.Scan(&pod.Id, &pod.Creator, &pod.Title, &pod.Description, &pod.DurationHours,
		&pod.DriftTolerance, &pod.LaunchMode, &launchAt, &pod.MaxMessagesPerDay,
		&pod.MediaPolicy, &pod.Visibility, &pod.State, &pod.CreatedAt)
	if err != nil {
		return nil, err
	}
	if launchAt.Valid {
		t := launchAt.Time.UTC()
		pod.ScheduledLaunchAt = &t
	}
	pod.CreatedAt = pod.CreatedAt.UTC()
	return &pod, nil
}

func (s *Storage) CreatePod(data domain.PodCreationData, initialState domain.PodState) (domain.PodId, error) {
	var id domain.PodId
	err := s.db.QueryRow(`
	INSERT INTO pods(creator_id, title, description, duration_hours, drift_tolerance,
		launch_mode, scheduled_launch_at, max_messages_per_day, media_policy, visibility, state)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id`,
		data.Creator, data.Title, data.Description, data.DurationHours, data.DriftTolerance,
		data.LaunchMode, data.ScheduledLaunchAt, data.MaxMessagesPerDay, data.MediaPolicy,
		data.Visibility, initialState).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetPod(id domain.PodId) (*domain.Pod, error) {
	pod, err := scanPod(s.db.QueryRow(`SELECT `+podColumns+` FROM pods WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.PodNotFound
		}
		return nil, err
	}
	return pod, nil
}

func (s *Storage) GetPublicPods() ([]domain.Pod, error) {
	rows, err := s.db.Query(`
	SELECT ` + podColumns + `
	FROM pods
	WHERE visibility = 'public'
	ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pods []domain.Pod
	for rows.Next() {
		pod, err := scanPod(rows)
		if err != nil {
			return nil, err
		}
		pods = append(pods, *pod)
	}
	return pods, rows.Err()
}

// MemberPodsOf returns the pods the user created or has posted in.
func (s *Storage) MemberPodsOf(user domain.UserId) ([]domain.Pod, error) {
	rows, err := s.db.Query(`
	SELECT `+podColumns+`
	FROM pods
	WHERE creator_id = $1
	   OR EXISTS (SELECT 1 FROM messages m WHERE m.pod_id = pods.id AND m.author_id = $1)
	ORDER BY created_at DESC`, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pods []domain.Pod
	for rows.Next() {
		pod, err := scanPod(rows)
		if err != nil {
			return nil, err
		}
		pods = append(pods, *pod)
	}
	return pods, rows.Err()
}

// PodCandidatesFor returns public pods the user is not yet a member of,
// each with its distinct participant count, for the matching engine.
func (s *Storage) PodCandidatesFor(user domain.UserId) ([]domain.PodCandidate, error) {
	rows, err := s.db.Query(`
	SELECT `+podColumns+`, COALESCE(pc.participants, 0)
	FROM pods
	LEFT JOIN (
		SELECT pod_id, COUNT(DISTINCT author_id) AS participants
		FROM messages
		GROUP BY pod_id
	) pc ON pc.pod_id = pods.id
	WHERE visibility = 'public'
	  AND state <> 'expired'
	  AND creator_id <> $1
	  AND NOT EXISTS (
		SELECT 1 FROM messages m WHERE m.pod_id = pods.id AND m.author_id = $1
	  )
	ORDER BY id`, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.PodCandidate
	for rows.Next() {
		var c domain.PodCandidate
		var launchAt sql.NullTime
		err := rows.Scan(&c.Id, &c.Creator, &c.Title, &c.Description, &c.DurationHours,
			&c.DriftTolerance, &c.LaunchMode, &launchAt, &c.MaxMessagesPerDay,
			&c.MediaPolicy, &c.Visibility, &c.State, &c.CreatedAt, &c.DistinctParticipants)
		if err != nil {
			return nil, err
		}
		if launchAt.Valid {
			t := launchAt.Time.UTC()
			c.ScheduledLaunchAt = &t
		}
		c.CreatedAt = c.CreatedAt.UTC()
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// PodsWithStaleState feeds the lifecycle refresher. Expired is terminal,
// so expired rows can never go stale again and are skipped.
func (s *Storage) PodsWithStaleState() ([]domain.Pod, error) {
	rows, err := s.db.Query(`SELECT ` + podColumns + ` FROM pods WHERE state <> 'expired'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pods []domain.Pod
	for rows.Next() {
		pod, err := scanPod(rows)
		if err != nil {
			return nil, err
		}
		pods = append(pods, *pod)
	}
	return pods, rows.Err()
}

// SetPodState persists the cached state. Concurrent refreshers may race;
// the guard makes the write idempotent and reports whether this call won.
func (s *Storage) SetPodState(id domain.PodId, state domain.PodState) (bool, error) {
	result, err := s.db.Exec(`UPDATE pods SET state = $1 WHERE id = $2 AND state <> $1`, state, id)
	if err != nil {
		return false, err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return updated > 0, nil
}
