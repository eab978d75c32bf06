package push

import (
	"agenda/cmd/internal/domain/entity"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
)

// ErrSubscriptionGone means the push service no longer knows the
// subscription and it should be forgotten.
var ErrSubscriptionGone = errors.New("push subscription expired or unsubscribed")

type VapidSender struct {
	publicKey  string
	privateKey string
	subject    string
	ttl        time.Duration
	client     webpush.HTTPClient
}

func NewVapidSender(publicKey, privateKey, subject string, ttl time.Duration) *VapidSender {
	return &VapidSender{
		publicKey:  publicKey,
		privateKey: privateKey,
		subject:    subject,
		ttl:        ttl,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// GenerateKeys creates a fresh VAPID key pair, base64url encoded.
func GenerateKeys() (publicKey, privateKey string, err error) {
	privateKey, publicKey, err = webpush.GenerateVAPIDKeys()
	return publicKey, privateKey, err
}

func (s *VapidSender) PublicKey() string {
	return s.publicKey
}

func (s *VapidSender) Send(ctx context.Context, sub *entity.PushSubscription, n *Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			Auth:   sub.Auth,
			P256dh: sub.P256dh,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             int(s.ttl.Seconds()),
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionGone
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push service answered %d: %s", resp.StatusCode, body)
	}
}
