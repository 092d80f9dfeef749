package socket

import (
	"context"
	"time"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// ParticipantPartyListener maintains the party membership timestamps the
// stat and playtime math depends on. It must run after the stat listener
// so playtime is banked against the old timestamps first.
type ParticipantPartyListener struct {
	BaseListener[models.Participant]
}

func (ParticipantPartyListener) OnPartyJoin(ctx context.Context, scope *EventScope, p *models.Participant, partyName string) error {
	now := time.Now().UnixMilli()
	p.PartyName = &partyName
	p.LastPartyName = &partyName
	p.JoinedPartyAt = &now
	return nil
}

func (ParticipantPartyListener) OnPartyLeave(ctx context.Context, scope *EventScope, p *models.Participant) error {
	now := time.Now().UnixMilli()
	p.PartyName = nil
	p.LastLeftPartyAt = &now
	p.JoinedPartyAt = nil
	return nil
}
