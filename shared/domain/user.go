package domain

import "time"

type User struct {
	Id        UserId
	Username  Username
	Bio       Bio
	PassHash  string
	CreatedAt time.Time
}

// to iterate thru layers: handler -> service -> storage
type UserCreationData struct {
	Username Username
	Bio      Bio
	PassHash string
}
