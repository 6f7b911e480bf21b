package channels

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the slice of the Twilio REST API used here.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSMSSender sends text messages from a fixed sender number.
type TwilioSMSSender struct {
	api  messageCreator
	from string
}

func NewTwilioSMSSender(accountSID, authToken, from string) *TwilioSMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSSender{api: client.Api, from: from}
}

func (s *TwilioSMSSender) SendSMS(ctx context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	return awaitContext(ctx, func() error {
		if _, err := s.api.CreateMessage(params); err != nil {
			return fmt.Errorf("twilio create message failed: %w", err)
		}
		return nil
	})
}
