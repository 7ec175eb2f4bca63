package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// DefaultExpoPushURL is Expo's push gateway; overridable for tests and
// self-hosted relays via EXPO_PUSH_URL.
const DefaultExpoPushURL = "https://exp.host/--/api/v2/push/send"

// Pusher delivers one notification to one device token.
type Pusher interface {
	Push(token, title, body string) error
}

// ExpoClient sends push notifications through Expo's HTTP API. Clients
// register Expo tokens, so this is the only transport needed.
type ExpoClient struct {
	url    string
	client *http.Client
}

func NewExpoClient() *ExpoClient {
	url := os.Getenv("EXPO_PUSH_URL")
	if url == "" {
		url = DefaultExpoPushURL
	}
	return &ExpoClient{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type expoPushMessage struct {
	To    string `json:"to"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
}

func (c *ExpoClient) Push(token, title, body string) error {
	payload, err := json.Marshal(expoPushMessage{
		To:    token,
		Title: title,
		Body:  body,
		Sound: "default",
	})
	if err != nil {
		return err
	}

	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("expo push returned status %d", resp.StatusCode)
	}
	return nil
}
