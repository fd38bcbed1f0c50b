package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradedesk/engine"
)

// Supervisor keeps a controller attached to the strategy engine, redialing
// with exponential backoff whenever the connection drops. The session core
// itself never reconnects; this wrapper is the optional collaborator that
// restarts the link while wallet and ledger state carry over.
type Supervisor struct {
	Address      string
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Log          *logrus.Logger
}

// Run dials, attaches the client to ctrl, and listens until the
// connection drops, then backs off and tries again. Returns when ctx is
// cancelled.
func (s *Supervisor) Run(ctx context.Context, ctrl *Controller) {
	delay := s.InitialDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	maxDelay := s.MaxDelay
	if maxDelay < delay {
		maxDelay = delay
	}

	backoff := delay
	for {
		if ctx.Err() != nil {
			return
		}

		client, err := engine.Dial(s.Address, s.Log)
		if err != nil {
			s.Log.WithError(err).Warnf("engine dial failed, retrying in %v", backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < maxDelay {
				backoff *= 2
				if backoff > maxDelay {
					backoff = maxDelay
				}
			}
			continue
		}
		backoff = delay

		ctrl.AttachSender(client)
		// Re-announce the current selection so a restarted engine picks
		// up where the operator left off.
		if sel := ctrl.Current(); sel.Company != NoCompany {
			client.SendSelection(engine.SelectCompany, sel.Company)
		}

		err = client.Listen(ctx, ctrl.Deliver)
		ctrl.AttachSender(nil)
		client.Close()

		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.Log.WithError(err).Warn("engine connection lost")
		} else {
			s.Log.Info("engine connection closed")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
