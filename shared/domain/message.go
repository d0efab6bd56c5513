package domain

import (
	"time"
)

type Message struct {
	Id             MsgId
	Pod            PodId
	Author         User
	Kind           MediaKind
	Content        string // set when Kind == text
	VoiceReference string // set when Kind == voice
	CreatedAt      time.Time
}

// to iterate thru layers: handler -> service -> storage
type MessageCreationData struct {
	Pod            PodId
	Author         User
	Kind           MediaKind
	Content        string
	VoiceReference string
	CreatedAt      time.Time // taken from the service clock so quota windows and rows agree
}
