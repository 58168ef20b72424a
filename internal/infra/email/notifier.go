package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	"go.uber.org/zap"
)

type SMTPNotifier struct {
	host   string
	port   int
	from   string
	to     string
	logger *zap.Logger
}

func NewSMTPNotifier(host string, port int, from, to string, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{host: host, port: port, from: from, to: to, logger: logger}
}

// NotifyRunFailures sends one e-mail listing every failed video of a run.
func (n *SMTPNotifier) NotifyRunFailures(_ context.Context, summary *entity.RunSummary) error {
	addr := fmt.Sprintf("%s:%d", n.host, n.port)

	var failures strings.Builder
	for _, o := range summary.Outcomes {
		if o.Status != entity.VideoFailed {
			continue
		}
		fmt.Fprintf(&failures, "  %s: %s\r\n", o.Video, o.Error)
	}

	subject := fmt.Sprintf("Pose pipeline run %s finished with %d failure(s)", summary.RunID, summary.Failed)
	body := fmt.Sprintf(
		"Run %s processed %d video(s): %d succeeded, %d without pose, %d failed.\r\n\r\n"+
			"Failed videos:\r\n%s\r\n"+
			"-- pose ETL worker",
		summary.RunID, summary.Total(), summary.Succeeded, summary.NoPose, summary.Failed,
		failures.String(),
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.from, n.to, subject, body,
	)

	if err := smtp.SendMail(addr, nil, n.from, []string{n.to}, []byte(msg)); err != nil {
		n.logger.Error("failed to send run failure e-mail",
			zap.String("to", n.to),
			zap.String("run_id", summary.RunID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("run failure e-mail sent",
		zap.String("to", n.to),
		zap.String("run_id", summary.RunID.String()),
	)
	return nil
}
