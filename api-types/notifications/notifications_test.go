package notifications_test

import (
	"encoding/json"
	"testing"

	"github.com/synthgen/synthctl/api-types/notifications"
)

func TestList(t *testing.T) {
	items := `[
		{"id": 1, "user_id": 7, "title": "approved", "message": "request 3 is approved", "is_read": false, "timestamp": "2024-05-01T10:00:00"},
		{"id": 2, "user_id": 7, "title": "done", "message": "request 3 is completed", "is_read": true, "timestamp": "2024-05-01T11:00:00"}
	]`

	theory := func(body string) func(*testing.T) {
		return func(t *testing.T) {
			var l notifications.List
			if err := json.Unmarshal([]byte(body), &l); err != nil {
				t.Fatal(err)
			}
			if len(l) != 2 || l[0].Id != 1 || l[1].Id != 2 {
				t.Fatalf("unexpected list: %+v", l)
			}

			unread := l.Unread()
			if len(unread) != 1 || unread[0].Id != 1 {
				t.Errorf("unexpected unread: %+v", unread)
			}
		}
	}

	t.Run("bare array", theory(items))
	t.Run("enveloped", theory(`{"notifications": `+items+`}`))
}
