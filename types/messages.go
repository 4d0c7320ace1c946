package types

import (
	"encoding/json"
	"time"
)

type MsgTypes int

const (
	STATUS MsgTypes = iota
)

func (t MsgTypes) String() string {
	switch t {
	case STATUS:
		return "STATUS"
	default:
		return "UNKNOWN"
	}
}

type StatusReport struct {
	Elevators []Status `json:"elevators"`
}

type Header struct {
	Type     MsgTypes  `json:"type"`
	AuthorID string    `json:"author"`
	UUID     string    `json:"uuid"`
	SentAt   time.Time `json:"sentAt"`
}

type Content interface {
	StatusReport
}

type Msg[T Content] struct {
	Header  Header `json:"header"`
	Content T      `json:"content"`
}

func (m Msg[T]) ToJson() ([]byte, error) {
	return json.Marshal(m)
}
