// Package mail sends transactional email: verification codes and admin
// account notices. The Service interface keeps delivery swappable; the
// console backend is used in development and tests.
package mail

import "fmt"

type Message struct {
	To      string
	Subject string
	Body    string
}

type Service interface {
	Send(msg Message) error
}

// VerificationCode builds the email carrying a signup verification code.
func VerificationCode(to, code string) Message {
	return Message{
		To:      to,
		Subject: "Your verification code",
		Body: fmt.Sprintf(
			"Your verification code is %s. It expires in 10 minutes.\n\nIf you did not request this, you can ignore this email.", code),
	}
}

// AccountApproved builds the notice sent when a superadmin activates a
// pending admin account.
func AccountApproved(to, name string) Message {
	return Message{
		To:      to,
		Subject: "Your admin account has been approved",
		Body:    fmt.Sprintf("Hi %s,\n\nYour admin account has been approved. You can now sign in to the dashboard.", name),
	}
}
