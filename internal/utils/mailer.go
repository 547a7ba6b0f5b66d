package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPClient struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewSMTPClient(host string, port int, user, pass, from string) *SMTPClient {
	return &SMTPClient{Host: host, Port: port, User: user, Password: pass, From: from}
}

// Configured reports whether Send can reach a server.
func (s *SMTPClient) Configured() bool {
	return s != nil && s.Host != "" && s.User != ""
}

func (s *SMTPClient) Send(to, subject, body string) error {
	if !s.Configured() {
		return fmt.Errorf("smtp not configured")
	}
	m := s.message(to, subject, body)
	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	return d.DialAndSend(m)
}

func (s *SMTPClient) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}
