package terminal

import (
	"context"

	"pos-voice/internal/voice/speech"
)

// Listen runs a speech session feeding t until ctx is done or the recognizer
// gives up, then waits for pending submissions.
func Listen(ctx context.Context, t *Terminal, rec speech.Recognizer) error {
	session := speech.NewSession(rec, func(u string) { t.HandleUtterance(u) }, t.lg)
	if err := session.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-session.Done():
	}
	err := session.Stop()
	<-session.Done()
	t.Wait()
	return err
}
