package pg

import (
	"database/sql"
	"time"

	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/shared/domain"

	_ "github.com/lib/pq"
)

// CreateMessage saves the message if, and only if, the author is still under
// both the pod's daily cap and the membership cap. Both counts and the
// insert run in one transaction under a per-author advisory lock, so two
// concurrent posts by the same author cannot both observe room left and both
// commit, even into two different pods.
func (s *Storage) CreateMessage(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return -1, err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	// Keyed on the author alone: the membership count spans all pods, so
	// posts into different pods must serialize too.
	_, err = tx.Exec(`SELECT pg_advisory_xact_lock($1)`, data.Author.Id)
	if err != nil {
		return -1, err
	}

	var content, voiceReference sql.NullString
	if data.Kind == domain.MediaKindText {
		content = sql.NullString{String: data.Content, Valid: true}
	} else {
		voiceReference = sql.NullString{String: data.VoiceReference, Valid: true}
	}

	createdTs := data.CreatedAt.UTC().Round(time.Microsecond) // database anyway round to microsecond

	var id domain.MsgId
	err = tx.QueryRow(`
	INSERT INTO messages(pod_id, author_id, kind, content, voice_reference, created_at)
	SELECT $1, $2, $3, $4, $5, $6
	WHERE (
		SELECT COUNT(*) FROM messages
		WHERE pod_id = $1 AND author_id = $2 AND created_at >= $7
	) < $8
	AND (
		EXISTS (SELECT 1 FROM messages WHERE pod_id = $1 AND author_id = $2)
		OR EXISTS (SELECT 1 FROM pods WHERE id = $1 AND creator_id = $2)
		OR (
			SELECT COUNT(*) FROM (
				SELECT pod_id FROM messages WHERE author_id = $2
				UNION
				SELECT id FROM pods WHERE creator_id = $2
			) AS member_pods
		) < $9
	)
	RETURNING id`,
		data.Pod, data.Author.Id, data.Kind, content, voiceReference, createdTs, dayStart, maxPerDay, membershipCap).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return -1, rejectionReason(tx, data.Pod, data.Author.Id, membershipCap)
		}
		return -1, err
	}

	if err := tx.Commit(); err != nil {
		return -1, err
	}

	return id, nil
}

// rejectionReason decides which guard stopped the insert. Runs inside the
// same transaction, lock still held, so the counts match what the insert
// condition saw. Membership is reported ahead of the daily allowance.
func rejectionReason(tx *sql.Tx, pod domain.PodId, author domain.UserId, membershipCap int) error {
	var member bool
	var memberCount int
	err := tx.QueryRow(`
	SELECT
		EXISTS (SELECT 1 FROM messages WHERE pod_id = $1 AND author_id = $2)
		OR EXISTS (SELECT 1 FROM pods WHERE id = $1 AND creator_id = $2),
		(SELECT COUNT(*) FROM (
			SELECT pod_id FROM messages WHERE author_id = $2
			UNION
			SELECT id FROM pods WHERE creator_id = $2
		) AS member_pods)`, pod, author).Scan(&member, &memberCount)
	if err != nil {
		return err
	}
	if !member && memberCount >= membershipCap {
		return internal_errors.MembershipCapExceeded
	}
	return internal_errors.QuotaExceeded
}

func (s *Storage) GetMessage(id domain.MsgId) (*domain.Message, error) {
	var msg domain.Message
	var content, voiceReference sql.NullString
	err := s.db.QueryRow(`
	SELECT m.id, m.pod_id, m.author_id, u.username, m.kind, m.content, m.voice_reference, m.created_at
	FROM messages m
	JOIN users u ON u.id = m.author_id
	WHERE m.id = $1`, id).Scan(&msg.Id, &msg.Pod, &msg.Author.Id, &msg.Author.Username,
		&msg.Kind, &content, &voiceReference, &msg.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, internal_errors.MessageNotFound
		}
		return nil, err
	}
	msg.Content = content.String
	msg.VoiceReference = voiceReference.String
	msg.CreatedAt = msg.CreatedAt.UTC()
	return &msg, nil
}

// GetPodMessages returns a pod's messages in chronological order.
func (s *Storage) GetPodMessages(pod domain.PodId, limit int) ([]domain.Message, error) {
	rows, err := s.db.Query(`
	SELECT m.id, m.pod_id, m.author_id, u.username, m.kind, m.content, m.voice_reference, m.created_at
	FROM messages m
	JOIN users u ON u.id = m.author_id
	WHERE m.pod_id = $1
	ORDER BY m.created_at, m.id
	LIMIT $2`, pod, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var content, voiceReference sql.NullString
		err := rows.Scan(&msg.Id, &msg.Pod, &msg.Author.Id, &msg.Author.Username,
			&msg.Kind, &content, &voiceReference, &msg.CreatedAt)
		if err != nil {
			return nil, err
		}
		msg.Content = content.String
		msg.VoiceReference = voiceReference.String
		msg.CreatedAt = msg.CreatedAt.UTC()
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// CountMessagesSince implements the admission storage interface.
func (s *Storage) CountMessagesSince(author domain.UserId, pod domain.PodId, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(`
	SELECT COUNT(*) FROM messages
	WHERE pod_id = $1 AND author_id = $2 AND created_at >= $3`, pod, author, since).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MemberPods returns the distinct pods the author has posted in, plus the
// pods they created. Creation counts toward the membership cap.
func (s *Storage) MemberPods(author domain.UserId) ([]domain.PodId, error) {
	rows, err := s.db.Query(`
	SELECT DISTINCT pod_id FROM messages WHERE author_id = $1
	UNION
	SELECT id FROM pods WHERE creator_id = $1
	ORDER BY 1`, author)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pods []domain.PodId
	for rows.Next() {
		var id domain.PodId
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		pods = append(pods, id)
	}
	return pods, rows.Err()
}
