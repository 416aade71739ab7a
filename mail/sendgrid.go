package mail

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridService struct {
	key  string
	from *sgmail.Email
}

var _ Service = (*sendgridService)(nil)

// NewSendGridService delivers mail through the SendGrid API.
func NewSendGridService(key, fromName, fromEmail string) Service {
	return &sendgridService{key: key, from: sgmail.NewEmail(fromName, fromEmail)}
}

func (svc *sendgridService) Send(msg Message) error {
	m := sgmail.NewSingleEmail(svc.from, msg.Subject, sgmail.NewEmail("", msg.To), msg.Body, "")
	client := sendgrid.NewSendClient(svc.key)
	resp, err := client.Send(m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// NewServiceFromEnv picks SendGrid when SENDGRID_API_KEY is set and falls
// back to the console backend otherwise.
func NewServiceFromEnv() Service {
	key := os.Getenv("SENDGRID_API_KEY")
	if key == "" {
		return NewConsoleService()
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@csm.local"
	}
	return NewSendGridService(key, "CSM Survey", from)
}
