package domain

import (
	"fmt"
	"time"
)

// for debug
func (m *Message) String() string {
	body := m.Content
	if m.Kind == MediaKindVoice {
		body = "voice:" + m.VoiceReference
	}
	return fmt.Sprintf("[id:%d, pod:%d, author:%d, %s, created:%s]",
		m.Id, m.Pod, m.Author.Id, body, m.CreatedAt.Format(time.StampMilli))
}

func (p *Pod) String() string {
	launch := "manual"
	if p.ScheduledLaunchAt != nil {
		launch = p.ScheduledLaunchAt.Format(time.Stamp)
	}
	return fmt.Sprintf("[id:%d, title:%s, launch:%s, duration:%dh, state:%s]",
		p.Id, p.Title, launch, p.DurationHours, p.State)
}
