package gateway

import (
	"context"
	"sync"
)

type SentEmail struct {
	Recipient string
	Subject   string
	HTMLBody  string
}

type EmailMock struct {
	mock sync.Mutex

	// FailWith, when set, makes every Send return that error without
	// recording anything.
	FailWith error

	Sent []SentEmail
}

func (m *EmailMock) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}

	m.Sent = append(m.Sent, SentEmail{
		Recipient: recipient,
		Subject:   subject,
		HTMLBody:  htmlBody,
	})
	return nil
}

func (m *EmailMock) SentEmails() []SentEmail {
	m.mock.Lock()
	defer m.mock.Unlock()

	sent := make([]SentEmail, len(m.Sent))
	copy(sent, m.Sent)
	return sent
}
