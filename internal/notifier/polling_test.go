package notifier

import (
	"encoding/json"
	"testing"
)

func update(t *testing.T, chatID int64, text string) pollUpdate {
	t.Helper()
	raw := map[string]interface{}{
		"update_id": 1,
		"message": map[string]interface{}{
			"chat": map[string]interface{}{"id": chatID},
			"text": text,
		},
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	var u pollUpdate
	if err := json.Unmarshal(data, &u); err != nil {
		t.Fatal(err)
	}
	return u
}

func TestCommand_FiltersUpdates(t *testing.T) {
	n := NewTelegramNotifier("token", "42", "")

	cases := []struct {
		name    string
		u       pollUpdate
		wantCmd string
		wantOK  bool
	}{
		{name: "no message payload", u: pollUpdate{UpdateID: 1}, wantOK: false},
		{name: "foreign chat command", u: update(t, 999, "/refresh"), wantOK: false},
		{name: "plain text from own chat", u: update(t, 42, "hello there"), wantOK: false},
		{name: "unknown slash command", u: update(t, 42, "/weather"), wantOK: false},
		{name: "empty text", u: update(t, 42, "   "), wantOK: false},
		{name: "status", u: update(t, 42, "/status"), wantCmd: "/status", wantOK: true},
		{name: "refresh with trailing words", u: update(t, 42, "/refresh now please"), wantCmd: "/refresh", wantOK: true},
		{name: "group-chat addressing", u: update(t, 42, "/status@NiftyPulseBot"), wantCmd: "/status", wantOK: true},
		{name: "help", u: update(t, 42, "/help"), wantCmd: "/help", wantOK: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, ok := n.command(tc.u)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if cmd != tc.wantCmd {
				t.Errorf("expected command %q, got %q", tc.wantCmd, cmd)
			}
		})
	}
}
