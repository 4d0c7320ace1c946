package network

import (
	"encoding/json"
	"fmt"
	"time"

	"elevatorbank/types"

	"github.com/google/uuid"
)

func FormatStatusMsg(author string, statuses []types.Status) types.Msg[types.StatusReport] {
	if statuses == nil {
		statuses = []types.Status{}
	}

	return types.Msg[types.StatusReport]{
		Header: types.Header{
			Type:     types.STATUS,
			AuthorID: author,
			UUID:     uuid.NewString(),
			SentAt:   time.Now().UTC(),
		},
		Content: types.StatusReport{
			Elevators: statuses,
		},
	}
}

func GetMsgHeader(encodedMsg []byte) (*types.Header, error) {
	var msg struct {
		Header types.Header `json:"header"`
	}

	err := json.Unmarshal(encodedMsg, &msg)
	if err != nil {
		return nil, err
	}

	return &msg.Header, nil
}

/*
 * Decodes a full message and checks that the header type matches T
 */
func DecodeMsg[T types.Content](encodedMsg []byte, expected types.MsgTypes) (*types.Msg[T], error) {
	var msg types.Msg[T]

	err := json.Unmarshal(encodedMsg, &msg)
	if err != nil {
		return nil, err
	}

	if msg.Header.Type != expected {
		return nil, fmt.Errorf("expected %v message, got %v", expected, msg.Header.Type)
	}

	return &msg, nil
}
