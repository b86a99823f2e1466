package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/config"
)

const resultTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1a365d; text-align: center;">African Nations League</h2>
  <div style="background: #f7fafc; padding: 20px; border-radius: 8px;">
    <h3 style="color: #2d3748;">Match Result Notification</h3>
    <p>Dear {{.Team}} Federation,</p>
    <p>Your match against {{.Opponent}} has concluded.</p>
    <div style="text-align: center; margin: 20px 0; padding: 15px; background: white; border-radius: 5px;">
      <h4 style="margin: 0; color: #2d3748;">Final Score</h4>
      <h2 style="margin: 10px 0; color: #1a365d; font-size: 2em;">{{.Score}}</h2>
      <p style="color: #718096;">{{.ScorersLine}}</p>
    </div>
    <p>Thank you for participating in the African Nations League!</p>
  </div>
</div>
`

var resultHTML = template.Must(template.New("result").Parse(resultTemplate))

// sendFunc matches smtp.SendMail, which upgrades to STARTTLS when the server offers it.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends match results as HTML e-mail.
type SMTPSender struct {
	cfg    config.MailConfig
	send   sendFunc
	logger *zap.SugaredLogger
}

// NewSMTPSender creates a sender for the configured relay.
func NewSMTPSender(cfg config.MailConfig, logger *zap.SugaredLogger) *SMTPSender {
	return &SMTPSender{cfg: cfg, send: smtp.SendMail, logger: logger}
}

// Subject returns the e-mail subject for result.
func Subject(result MatchResult) string {
	return fmt.Sprintf("African Nations League Match Result: %s %s against %s", result.Team, result.Outcome, result.Opponent)
}

// ScorersLine summarizes the scorers of one team.
func ScorersLine(scorers []string) string {
	if len(scorers) == 0 {
		return "No goals scored in this match."
	}
	return "Goal scorers: " + strings.Join(scorers, ", ")
}

// SendMatchResult renders and sends the notification.
func (s *SMTPSender) SendMatchResult(ctx context.Context, result MatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.message(result)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.send(addr, auth, s.cfg.From, []string{result.To}, msg); err != nil {
		return fmt.Errorf("failed to send match result to %s: %w", result.To, err)
	}

	s.logger.Infow("match result email sent", "to", result.To, "team", result.Team)
	return nil
}

func (s *SMTPSender) message(result MatchResult) ([]byte, error) {
	var body bytes.Buffer
	err := resultHTML.Execute(&body, struct {
		MatchResult
		ScorersLine string
	}{result, ScorersLine(result.Scorers)})
	if err != nil {
		return nil, fmt.Errorf("failed to render match result: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", result.To)
	// Q-encoding turns any CR or LF in team names into encoded text.
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", Subject(result)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

var _ Sender = (*SMTPSender)(nil)
