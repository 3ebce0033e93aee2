package mailer

import "gopkg.in/gomail.v2"

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}
