package processor

import (
	"context"

	"github.com/devtrail/devtrail/internal/broadcast"
	"github.com/devtrail/devtrail/internal/events"
)

var remoteStatuses = map[string]string{
	events.TypeRemoteProvisionStart: "provisioning",
	events.TypeRemoteProvisionReady: "ready",
	events.TypeRemoteProvisionError: "error",
	events.TypeRemoteTerminate:      "terminated",
}

// handleRemote relays remote environment state changes to subscribers. The
// event row itself is the system of record; there is no remote-side table.
func (p *Processor) handleRemote(_ context.Context, env *events.Envelope, workspaceID string) error {
	sessionID := ""
	if env.SessionID != nil {
		sessionID = *env.SessionID
	}
	p.bcast.BroadcastRemoteUpdate(broadcast.RemoteUpdate{
		WorkspaceID: workspaceID,
		SessionID:   sessionID,
		Status:      remoteStatuses[env.Type],
		Detail:      env.Data,
	})
	return nil
}
