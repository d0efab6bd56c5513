package service

import (
	"errors"
	"testing"
	"time"

	"github.com/peerpods-dev/peerpods/internal/admission"
	"github.com/peerpods-dev/peerpods/internal/clock"
	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/internal/quota"
	"github.com/peerpods-dev/peerpods/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock structs
type MockMessageStorage struct {
	CreateMessageFunc  func(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error)
	GetMessageFunc     func(id domain.MsgId) (*domain.Message, error)
	GetPodMessagesFunc func(pod domain.PodId, limit int) ([]domain.Message, error)
}

func (m *MockMessageStorage) CreateMessage(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
	if m.CreateMessageFunc != nil {
		return m.CreateMessageFunc(data, maxPerDay, membershipCap, dayStart)
	}
	return 1, nil
}

func (m *MockMessageStorage) GetMessage(id domain.MsgId) (*domain.Message, error) {
	if m.GetMessageFunc != nil {
		return m.GetMessageFunc(id)
	}
	return &domain.Message{Id: id}, nil
}

func (m *MockMessageStorage) GetPodMessages(pod domain.PodId, limit int) ([]domain.Message, error) {
	if m.GetPodMessagesFunc != nil {
		return m.GetPodMessagesFunc(pod, limit)
	}
	return nil, nil
}

type MockAdmissionStorage struct {
	CountMessagesSinceFunc func(author domain.UserId, pod domain.PodId, since time.Time) (int, error)
	MemberPodsFunc         func(author domain.UserId) ([]domain.PodId, error)
}

func (m *MockAdmissionStorage) CountMessagesSince(author domain.UserId, pod domain.PodId, since time.Time) (int, error) {
	if m.CountMessagesSinceFunc != nil {
		return m.CountMessagesSinceFunc(author, pod, since)
	}
	return 0, nil
}

func (m *MockAdmissionStorage) MemberPods(author domain.UserId) ([]domain.PodId, error) {
	if m.MemberPodsFunc != nil {
		return m.MemberPodsFunc(author)
	}
	return nil, nil
}

type MockMessageValidator struct {
	TextFunc           func(text string) error
	VoiceReferenceFunc func(ref string) error
}

func (m *MockMessageValidator) Text(text string) error {
	if m.TextFunc != nil {
		return m.TextFunc(text)
	}
	return nil
}

func (m *MockMessageValidator) VoiceReference(ref string) error {
	if m.VoiceReferenceFunc != nil {
		return m.VoiceReferenceFunc(ref)
	}
	return nil
}

type messageFixture struct {
	storage   *MockMessageStorage
	pods      *MockPodStorage
	admStore  *MockAdmissionStorage
	validator *MockMessageValidator
	service   MessageService
	now       time.Time
}

func newMessageFixture() *messageFixture {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(now)
	policy := quota.NewPolicy(3, time.UTC)
	storage := &MockMessageStorage{}
	admStore := &MockAdmissionStorage{}
	validator := &MockMessageValidator{}
	pods := &MockPodStorage{
		GetPodFunc: func(id domain.PodId) (*domain.Pod, error) {
			return &domain.Pod{
				Id:                id,
				DurationHours:     24,
				LaunchMode:        domain.LaunchManual,
				MaxMessagesPerDay: 3,
				MediaPolicy:       domain.MediaText,
				CreatedAt:         now.Add(-time.Hour),
			}, nil
		},
	}
	adm := admission.New(admStore, policy, clk)
	return &messageFixture{
		storage:   storage,
		pods:      pods,
		admStore:  admStore,
		validator: validator,
		service:   NewMessage(storage, pods, adm, policy, clk, validator, 100),
		now:       now,
	}
}

func TestMessageCreate(t *testing.T) {
	f := newMessageFixture()

	var saved domain.MessageCreationData
	var savedMax, savedCap int
	var savedDayStart time.Time
	f.storage.CreateMessageFunc = func(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
		saved, savedMax, savedCap, savedDayStart = data, maxPerDay, membershipCap, dayStart
		return 9, nil
	}

	id, err := f.service.Create(1, domain.User{Id: 2}, domain.MediaKindText, "  <i>hello</i>  ", "")
	require.NoError(t, err)
	assert.Equal(t, domain.MsgId(9), id)
	assert.Equal(t, "hello", saved.Content, "content should be sanitized")
	assert.Equal(t, 3, savedMax, "daily cap comes from the pod")
	assert.Equal(t, 3, savedCap, "membership cap comes from the policy")
	assert.True(t, saved.CreatedAt.Equal(f.now), "created instant comes from the service clock")
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), savedDayStart)
}

func TestMessageCreate_PodNotFound(t *testing.T) {
	f := newMessageFixture()
	f.pods.GetPodFunc = func(id domain.PodId) (*domain.Pod, error) {
		return nil, internal_errors.PodNotFound
	}

	_, err := f.service.Create(1, domain.User{Id: 2}, domain.MediaKindText, "hi", "")
	assert.True(t, errors.Is(err, internal_errors.PodNotFound))
}

func TestMessageCreate_AdmissionRejections(t *testing.T) {
	f := newMessageFixture()
	f.storage.CreateMessageFunc = func(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
		t.Fatal("storage should not be called when admission rejects")
		return 0, nil
	}

	// Expired pod
	f.pods.GetPodFunc = func(id domain.PodId) (*domain.Pod, error) {
		return &domain.Pod{
			Id: id, DurationHours: 1, LaunchMode: domain.LaunchManual,
			MaxMessagesPerDay: 3, MediaPolicy: domain.MediaText,
			CreatedAt: f.now.Add(-2 * time.Hour),
		}, nil
	}
	_, err := f.service.Create(1, domain.User{Id: 2}, domain.MediaKindText, "hi", "")
	assert.True(t, errors.Is(err, internal_errors.PodNotActive), "expected PodNotActive, got %v", err)

	// Media kind not allowed
	f = newMessageFixture()
	f.storage.CreateMessageFunc = func(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
		t.Fatal("storage should not be called when admission rejects")
		return 0, nil
	}
	_, err = f.service.Create(1, domain.User{Id: 2}, domain.MediaKindVoice, "", "voice/x.ogg")
	assert.True(t, errors.Is(err, internal_errors.MediaNotAllowed), "expected MediaNotAllowed, got %v", err)

	// Quota already spent
	f = newMessageFixture()
	f.storage.CreateMessageFunc = func(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
		t.Fatal("storage should not be called when admission rejects")
		return 0, nil
	}
	f.admStore.CountMessagesSinceFunc = func(author domain.UserId, pod domain.PodId, since time.Time) (int, error) {
		return 3, nil
	}
	_, err = f.service.Create(1, domain.User{Id: 2}, domain.MediaKindText, "hi", "")
	assert.True(t, errors.Is(err, internal_errors.QuotaExceeded), "expected QuotaExceeded, got %v", err)

	// Membership cap reached on a new pod
	f = newMessageFixture()
	f.storage.CreateMessageFunc = func(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
		t.Fatal("storage should not be called when admission rejects")
		return 0, nil
	}
	f.admStore.MemberPodsFunc = func(author domain.UserId) ([]domain.PodId, error) {
		return []domain.PodId{10, 11, 12}, nil
	}
	_, err = f.service.Create(1, domain.User{Id: 2}, domain.MediaKindText, "hi", "")
	assert.True(t, errors.Is(err, internal_errors.MembershipCapExceeded), "expected MembershipCapExceeded, got %v", err)
}

func TestMessageCreate_ValidationError(t *testing.T) {
	f := newMessageFixture()
	mockError := errors.New("Mock TextFunc")
	f.validator.TextFunc = func(text string) error { return mockError }

	_, err := f.service.Create(1, domain.User{Id: 2}, domain.MediaKindText, "hi", "")
	assert.True(t, errors.Is(err, mockError))

	// Unknown media kind is rejected before validation
	_, err = f.service.Create(1, domain.User{Id: 2}, "video", "hi", "")
	assert.True(t, errors.Is(err, internal_errors.MediaNotAllowed))
}

func TestMessageCreate_StorageQuotaRace(t *testing.T) {
	f := newMessageFixture()
	// Admission passed, but a concurrent writer took the last slot.
	f.storage.CreateMessageFunc = func(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
		return 0, internal_errors.QuotaExceeded
	}

	_, err := f.service.Create(1, domain.User{Id: 2}, domain.MediaKindText, "hi", "")
	assert.True(t, errors.Is(err, internal_errors.QuotaExceeded))
}

func TestMessageCreate_StorageMembershipRace(t *testing.T) {
	f := newMessageFixture()
	// Admission saw room under the cap, but a concurrent post into another
	// pod filled the last membership slot first.
	f.storage.CreateMessageFunc = func(data domain.MessageCreationData, maxPerDay, membershipCap int, dayStart time.Time) (domain.MsgId, error) {
		return 0, internal_errors.MembershipCapExceeded
	}

	_, err := f.service.Create(1, domain.User{Id: 2}, domain.MediaKindText, "hi", "")
	assert.True(t, errors.Is(err, internal_errors.MembershipCapExceeded))
}

func TestMessageList(t *testing.T) {
	f := newMessageFixture()
	f.storage.GetPodMessagesFunc = func(pod domain.PodId, limit int) ([]domain.Message, error) {
		assert.Equal(t, 100, limit)
		return []domain.Message{{Id: 1}, {Id: 2}}, nil
	}

	messages, err := f.service.List(1)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	f.pods.GetPodFunc = func(id domain.PodId) (*domain.Pod, error) {
		return nil, internal_errors.PodNotFound
	}
	_, err = f.service.List(-1)
	assert.True(t, errors.Is(err, internal_errors.PodNotFound))
}

func TestMessageGet(t *testing.T) {
	f := newMessageFixture()
	msg, err := f.service.Get(3)
	require.NoError(t, err)
	assert.Equal(t, domain.MsgId(3), msg.Id)
}
