package notify

import (
	"context"
	"log/slog"

	"github.com/splatcrew/splattrack/internal/models"
)

// Dispatcher fans a batch of messages out to individual recipients.
type Dispatcher struct {
	mailer Mailer
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher. A nil mailer disables delivery
// entirely, which is how a deployment without SMTP configured runs.
func NewDispatcher(mailer Mailer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{mailer: mailer, logger: logger}
}

// Dispatch sends every message in the batch, one recipient at a time.
// Failures are logged per recipient and never abort the rest of the batch;
// the caller's commit has already succeeded and stays succeeded.
func (d *Dispatcher) Dispatch(ctx context.Context, msgs []Message) {
	if d.mailer == nil || len(msgs) == 0 {
		return
	}
	for _, msg := range msgs {
		if err := d.mailer.Send(ctx, msg.RecipientName, msg.RecipientEmail, msg.Subject(), msg.Body()); err != nil {
			d.logger.Warn("notification delivery failed",
				"recipient", msg.RecipientEmail,
				"context", msg.Context,
				"error", err,
			)
			continue
		}
		d.logger.Info("notification sent",
			"recipient", msg.RecipientEmail,
			"context", msg.Context,
			"amount", msg.Amount,
		)
	}
}

// Invite emails a newly rostered player a sign-up link. Players without an
// email address are skipped silently, and delivery failure never fails the
// roster write.
func (d *Dispatcher) Invite(ctx context.Context, player models.Player, appURL string) {
	if d.mailer == nil || player.Email == "" {
		return
	}
	if err := d.mailer.Send(ctx, player.Name, player.Email, InviteSubject(), InviteBody(player, appURL)); err != nil {
		d.logger.Warn("invite delivery failed", "recipient", player.Email, "error", err)
	}
}
