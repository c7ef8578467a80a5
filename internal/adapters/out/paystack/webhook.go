package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"strings"

	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// SignatureHeader carries the hex HMAC-SHA512 of the raw body keyed with the secret key.
const SignatureHeader = "x-paystack-signature"

type webhookEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Sign computes the signature Paystack sends for payload.
func Sign(secretKey string, payload []byte) string {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseWebhook rejects the payload unless its signature matches.
func (c *Client) ParseWebhook(payload []byte, signature string) (ports.WebhookEvent, error) {
	expected := Sign(c.secretKey, payload)
	if signature == "" || !hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature)))) {
		return ports.WebhookEvent{}, errs.NewPermissionDeniedError("accept webhook with invalid signature")
	}

	var env webhookEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return ports.WebhookEvent{}, errs.NewValueIsInvalidErrorWithCause("webhook payload", err)
	}
	event := ports.WebhookEvent{Event: env.Event}
	if env.Event != ports.ChargeSuccessEvent || len(env.Data) == 0 {
		return event, nil
	}

	var ref struct {
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(env.Data, &ref); err != nil {
		return ports.WebhookEvent{}, errs.NewValueIsInvalidErrorWithCause("webhook payload", err)
	}
	outcome, err := toOutcome(env.Data)
	if err != nil {
		return ports.WebhookEvent{}, errs.NewValueIsInvalidErrorWithCause("webhook payload", err)
	}
	event.Reference = ref.Reference
	event.Outcome = outcome
	return event, nil
}
