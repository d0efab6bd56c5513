package service

import (
	"time"

	"github.com/peerpods-dev/peerpods/internal/admission"
	"github.com/peerpods-dev/peerpods/internal/clock"
	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/internal/quota"
	"github.com/peerpods-dev/peerpods/internal/utils"
	"github.com/peerpods-dev/peerpods/shared/domain"
)

type MessageService interface {
	Create(pod domain.PodId, author domain.User, kind domain.MediaKind, content, voiceReference string) (domain.MsgId, error)
	Get(id domain.MsgId) (*domain.Message, error)
	List(pod domain.PodId) ([]domain.Message, error)
}

type Message struct {
	storage   MessageStorage
	pods      MessagePodStorage
	admission *admission.Controller
	policy    *quota.Policy
	clock     clock.Clock
	validator MessageValidator
	pageLimit int
}

type MessageStorage interface {
	CreateMessage(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error)
	GetMessage(id domain.MsgId) (*domain.Message, error)
	GetPodMessages(pod domain.PodId, limit int) ([]domain.Message, error)
}

type MessagePodStorage interface {
	GetPod(id domain.PodId) (*domain.Pod, error)
}

type MessageValidator interface {
	Text(text string) error
	VoiceReference(ref string) error
}

func NewMessage(storage MessageStorage, pods MessagePodStorage, adm *admission.Controller, policy *quota.Policy, clk clock.Clock, validator MessageValidator, pageLimit int) MessageService {
	return &Message{storage, pods, adm, policy, clk, validator, pageLimit}
}

func (m *Message) Create(podId domain.PodId, author domain.User, kind domain.MediaKind, content, voiceReference string) (domain.MsgId, error) {
	if !kind.Valid() {
		return 0, internal_errors.MediaNotAllowed
	}
	switch kind {
	case domain.MediaKindText:
		content = utils.Sanitize(content)
		if err := m.validator.Text(content); err != nil {
			return 0, err
		}
		voiceReference = ""
	case domain.MediaKindVoice:
		if err := m.validator.VoiceReference(voiceReference); err != nil {
			return 0, err
		}
		content = ""
	}

	pod, err := m.pods.GetPod(podId)
	if err != nil {
		return 0, err
	}

	if err := m.admission.AdmitMessage(pod, author.Id, kind); err != nil {
		return 0, err
	}

	// The admission checks and this insert are not one transaction. The
	// storage re-evaluates both caps atomically and may still reject.
	now := m.clock.Now()
	id, err := m.storage.CreateMessage(domain.MessageCreationData{
		Pod:            podId,
		Author:         author,
		Kind:           kind,
		Content:        content,
		VoiceReference: voiceReference,
		CreatedAt:      now,
	}, pod.MaxMessagesPerDay, m.policy.MembershipCap(), m.policy.StartOfDay(now))
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (m *Message) Get(id domain.MsgId) (*domain.Message, error) {
	return m.storage.GetMessage(id)
}

func (m *Message) List(pod domain.PodId) ([]domain.Message, error) {
	if _, err := m.pods.GetPod(pod); err != nil {
		return nil, err
	}
	return m.storage.GetPodMessages(pod, m.pageLimit)
}
