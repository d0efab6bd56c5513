package handler

import (
	"context"

	"github.com/peerpods-dev/peerpods/shared/domain"
)

// MockUserService implements service.UserService
type MockUserService struct {
	MockRegister  func(username domain.Username, password string, bio domain.Bio) (domain.UserId, error)
	MockLogin     func(username domain.Username, password string) (string, error)
	MockGet       func(id domain.UserId) (*domain.User, error)
	MockUpdateBio func(id domain.UserId, bio domain.Bio) error
}

func (m *MockUserService) Register(username domain.Username, password string, bio domain.Bio) (domain.UserId, error) {
	if m.MockRegister != nil {
		return m.MockRegister(username, password, bio)
	}
	return 1, nil
}

func (m *MockUserService) Login(username domain.Username, password string) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(username, password)
	}
	return "token", nil
}

func (m *MockUserService) Get(id domain.UserId) (*domain.User, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.User{Id: id}, nil
}

func (m *MockUserService) UpdateBio(id domain.UserId, bio domain.Bio) error {
	if m.MockUpdateBio != nil {
		return m.MockUpdateBio(id, bio)
	}
	return nil
}

// MockPodService implements service.PodService
type MockPodService struct {
	MockCreate  func(data domain.PodCreationData) (domain.PodId, error)
	MockGet     func(id domain.PodId) (*domain.Pod, error)
	MockList    func() ([]domain.Pod, error)
	MockListFor func(user domain.UserId) ([]domain.Pod, error)
}

func (m *MockPodService) Create(data domain.PodCreationData) (domain.PodId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockPodService) Get(id domain.PodId) (*domain.Pod, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.Pod{Id: id}, nil
}

func (m *MockPodService) List() ([]domain.Pod, error) {
	if m.MockList != nil {
		return m.MockList()
	}
	return nil, nil
}

func (m *MockPodService) ListFor(user domain.UserId) ([]domain.Pod, error) {
	if m.MockListFor != nil {
		return m.MockListFor(user)
	}
	return nil, nil
}

// MockMessageService implements service.MessageService
type MockMessageService struct {
	MockCreate func(pod domain.PodId, author domain.User, kind domain.MediaKind, content, voiceReference string) (domain.MsgId, error)
	MockGet    func(id domain.MsgId) (*domain.Message, error)
	MockList   func(pod domain.PodId) ([]domain.Message, error)
}

func (m *MockMessageService) Create(pod domain.PodId, author domain.User, kind domain.MediaKind, content, voiceReference string) (domain.MsgId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(pod, author, kind, content, voiceReference)
	}
	return 1, nil
}

func (m *MockMessageService) Get(id domain.MsgId) (*domain.Message, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.Message{Id: id}, nil
}

func (m *MockMessageService) List(pod domain.PodId) ([]domain.Message, error) {
	if m.MockList != nil {
		return m.MockList(pod)
	}
	return nil, nil
}

// MockRecommendService implements service.RecommendService
type MockRecommendService struct {
	MockRecommend func(ctx context.Context, user domain.UserId, topN int) ([]domain.PodMatch, error)
}

func (m *MockRecommendService) Recommend(ctx context.Context, user domain.UserId, topN int) ([]domain.PodMatch, error) {
	if m.MockRecommend != nil {
		return m.MockRecommend(ctx, user, topN)
	}
	return nil, nil
}

// MockHealth implements Health
type MockHealth struct {
	MockPing func(ctx context.Context) error
}

func (m *MockHealth) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}
