package service

import (
	"os"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SmsSender delivers a single SMS. OTP dispatch over SMS is best-effort:
// callers log failures and move on.
type SmsSender interface {
	Send(to, body string) error
}

type SmsService struct {
	client *twilio.RestClient
	from   string
}

func NewSmsService() *SmsService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTH_TOKEN"),
	})
	return &SmsService{
		client: client,
		from:   os.Getenv("TWILIO_PHONE_NUMBER"), // E.164 format
	}
}

func (s *SmsService) Send(to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
