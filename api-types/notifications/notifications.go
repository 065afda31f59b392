package notifications

import (
	"encoding/json"

	"github.com/synthgen/synthctl/api-types/misc/rfctime"
)

type Notification struct {
	Id        int             `json:"id"`
	UserId    int             `json:"user_id"`
	Title     string          `json:"title,omitempty"`
	Message   string          `json:"message"`
	IsRead    bool            `json:"is_read"`
	Timestamp rfctime.RFC3339 `json:"timestamp"`
}

// List accepts both a bare array and {"notifications": [...]}.
type List []Notification

func (l *List) UnmarshalJSON(b []byte) error {
	var bare []Notification
	if err := json.Unmarshal(b, &bare); err == nil {
		*l = bare
		return nil
	}

	var enveloped struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := json.Unmarshal(b, &enveloped); err != nil {
		return err
	}
	*l = enveloped.Notifications
	return nil
}

// Unread returns notifications not read yet, in the given order.
func (l List) Unread() List {
	ret := List{}
	for _, n := range l {
		if !n.IsRead {
			ret = append(ret, n)
		}
	}
	return ret
}
