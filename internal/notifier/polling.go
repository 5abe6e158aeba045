package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CommandHandler produces the reply for one bot command.
type CommandHandler func(command string) string

// botCommands is the set of slash commands the bot dispatches. /help and
// /start resolve to the handler's usage text.
var botCommands = map[string]bool{
	"/status":  true,
	"/refresh": true,
	"/help":    true,
	"/start":   true,
}

type pollUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// command extracts the bot command carried by an update, if it is one this
// bot acts on: a known slash command sent from the configured chat. Updates
// from any other chat are acknowledged and dropped, so a stranger messaging
// the bot can neither trigger a refresh nor inject replies into the chat.
func (t *TelegramNotifier) command(u pollUpdate) (string, bool) {
	if u.Message == nil {
		return "", false
	}
	if strconv.FormatInt(u.Message.Chat.ID, 10) != t.ChatID {
		return "", false
	}
	fields := strings.Fields(u.Message.Text)
	if len(fields) == 0 {
		return "", false
	}
	cmd := fields[0]
	// Group chats address commands as /status@BotName.
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	if !botCommands[cmd] {
		return "", false
	}
	return cmd, true
}

// StartPolling runs the command loop until ctx is cancelled. Long polls share
// the notifier's transport, so the proxy configuration applies here too.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	client := &http.Client{
		Timeout:   40 * time.Second,
		Transport: t.Client.Transport,
	}
	offset := 0

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] command polling stopped")
			return
		default:
		}

		updates, err := t.fetchUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] poll updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			cmd, ok := t.command(u)
			if !ok {
				continue
			}
			log.Printf("[INFO] command received: %s", cmd)
			if reply := handler(cmd); reply != "" {
				if err := t.Send(reply); err != nil {
					log.Printf("[ERROR] send command reply: %v", err)
				}
			}
		}
	}
}

// fetchUpdates performs one getUpdates long poll and returns the batch.
func (t *TelegramNotifier) fetchUpdates(ctx context.Context, client *http.Client, offset int) ([]pollUpdate, error) {
	apiURL := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?offset=%d&timeout=30", t.BotToken, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getUpdates: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK     bool         `json:"ok"`
		Result []pollUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("getUpdates: decode: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("getUpdates: telegram reported not ok")
	}
	return result.Result, nil
}
