package service

import (
	"time"

	"github.com/peerpods-dev/peerpods/internal/clock"
	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/internal/lifecycle"
	"github.com/peerpods-dev/peerpods/internal/utils"
	"github.com/peerpods-dev/peerpods/shared/domain"
)

type PodService interface {
	Create(data domain.PodCreationData) (domain.PodId, error)
	Get(id domain.PodId) (*domain.Pod, error)
	List() ([]domain.Pod, error)
	ListFor(user domain.UserId) ([]domain.Pod, error)
}

type Pod struct {
	storage   PodStorage
	validator PodValidator
	clock     clock.Clock
}

type PodStorage interface {
	CreatePod(data domain.PodCreationData, initialState domain.PodState) (domain.PodId, error)
	GetPod(id domain.PodId) (*domain.Pod, error)
	GetPublicPods() ([]domain.Pod, error)
	MemberPodsOf(user domain.UserId) ([]domain.Pod, error)
}

type PodValidator interface {
	Title(title string) error
	Description(description string) error
}

func NewPod(storage PodStorage, validator PodValidator, clk clock.Clock) PodService {
	return &Pod{storage, validator, clk}
}

func (p *Pod) Create(data domain.PodCreationData) (domain.PodId, error) {
	data.Title = utils.Sanitize(data.Title)
	data.Description = utils.Sanitize(data.Description)
	if err := p.validator.Title(data.Title); err != nil {
		return 0, err
	}
	if err := p.validator.Description(data.Description); err != nil {
		return 0, err
	}

	now := p.clock.Now()
	if data.DurationHours < 1 {
		return 0, internal_errors.InvalidPodConfig
	}
	if data.DriftTolerance < 1 || data.DriftTolerance > 5 {
		return 0, internal_errors.InvalidPodConfig
	}
	if !data.LaunchMode.Valid() || !data.MediaPolicy.Valid() || !data.Visibility.Valid() {
		return 0, internal_errors.InvalidPodConfig
	}
	if data.MaxMessagesPerDay < 1 {
		return 0, internal_errors.InvalidPodConfig
	}
	if data.LaunchMode == domain.LaunchCountdown {
		if data.ScheduledLaunchAt == nil || !data.ScheduledLaunchAt.After(now) {
			return 0, internal_errors.InvalidPodConfig
		}
	}
	// A scheduled instant on a manual pod would silently become the launch.
	if data.LaunchMode == domain.LaunchManual && data.ScheduledLaunchAt != nil {
		return 0, internal_errors.InvalidPodConfig
	}

	// Seed the cached state from the same pure derivation the refresher uses.
	initialState := lifecycle.DeriveState(now, now, data.ScheduledLaunchAt, time.Duration(data.DurationHours)*time.Hour)

	id, err := p.storage.CreatePod(data, initialState)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the pod with its state projected live, never the cached value.
func (p *Pod) Get(id domain.PodId) (*domain.Pod, error) {
	pod, err := p.storage.GetPod(id)
	if err != nil {
		return nil, err
	}
	pod.State = lifecycle.StateOf(pod, p.clock.Now())
	return pod, nil
}

func (p *Pod) List() ([]domain.Pod, error) {
	pods, err := p.storage.GetPublicPods()
	if err != nil {
		return nil, err
	}
	p.projectStates(pods)
	return pods, nil
}

// ListFor returns the pods the user created or has posted in.
func (p *Pod) ListFor(user domain.UserId) ([]domain.Pod, error) {
	pods, err := p.storage.MemberPodsOf(user)
	if err != nil {
		return nil, err
	}
	p.projectStates(pods)
	return pods, nil
}

func (p *Pod) projectStates(pods []domain.Pod) {
	now := p.clock.Now()
	for i := range pods {
		pods[i].State = lifecycle.StateOf(&pods[i], now)
	}
}
