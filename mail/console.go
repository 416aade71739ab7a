package mail

import "github.com/rs/zerolog/log"

type consoleService struct{}

var _ Service = consoleService{}

// NewConsoleService logs messages instead of delivering them.
func NewConsoleService() Service {
	return consoleService{}
}

func (consoleService) Send(msg Message) error {
	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg(msg.Body)
	return nil
}
