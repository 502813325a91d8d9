package request

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/Adda-Baaj/portal-client/pkg/httpclient"
)

// Envelope is the response body shape shared by every endpoint. Code is nil
// when the body carries no code at all, including a bare null body.
type Envelope struct {
	Code    *int                `json:"code"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
}

// CodeOK marks a successful envelope.
const CodeOK = 0

// MessageMissingCode is reported when a body without a code carries no
// message either.
const MessageMissingCode = "response envelope has no code"

// OK reports whether the envelope is an explicit success.
func (e Envelope) OK() bool { return e.Code != nil && *e.Code == CodeOK }

// failure converts a non-successful envelope into its business error.
func (e Envelope) failure() *BusinessError {
	if e.Code == nil {
		msg := e.Message
		if msg == "" {
			msg = MessageMissingCode
		}
		return &BusinessError{Message: msg, MissingCode: true}
	}
	return &BusinessError{Code: *e.Code, Message: e.Message}
}

func decodeEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	err := httpclient.JSON.Unmarshal(body, &env)
	return env, err
}
