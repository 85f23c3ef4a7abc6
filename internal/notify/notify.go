// Public domain.

// Package notify delivers compiled scripts and charts to the observer
// channel over Slack.
package notify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slack-go/slack"
)

// ErrNotConfigured means the Slack token or channel is missing from the
// environment.
var ErrNotConfigured = errors.New("slack token and channel must be configured")

// Notifier posts messages and file attachments to one channel.
type Notifier struct {
	client  *slack.Client
	channel string
}

// New builds a Notifier for the given bot token and channel ID.
func New(token, channel string) (*Notifier, error) {
	if token == "" || channel == "" {
		return nil, ErrNotConfigured
	}
	return &Notifier{client: slack.New(token), channel: channel}, nil
}

// Send posts the message, then uploads each named file to the channel.
func (n *Notifier) Send(message string, files ...string) error {
	if _, _, err := n.client.PostMessage(n.channel, slack.MsgOptionText(message, false)); err != nil {
		return fmt.Errorf("posting message: %w", err)
	}
	for _, f := range files {
		st, err := os.Stat(f)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", f, err)
		}
		_, err = n.client.UploadFileV2(slack.UploadFileV2Parameters{
			Channel:  n.channel,
			File:     f,
			Filename: filepath.Base(f),
			FileSize: int(st.Size()),
		})
		if err != nil {
			return fmt.Errorf("uploading %s: %w", f, err)
		}
	}
	return nil
}
