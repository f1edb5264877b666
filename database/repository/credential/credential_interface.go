package credentialRepo

import (
	"context"
	"time"

	"slotbook/models"
)

// CredentialRepository persists per-user external calendar credentials. The
// credential lives on the user document; this repository is the only writer
// of its token fields besides the disconnect path.
type CredentialRepository interface {
	// Get retrieves the credential for a user. A user without a connected
	// calendar yields a credential with Connected=false, not an error.
	Get(ctx context.Context, userID string) (*models.CalendarCredential, error)
	// SaveTokens stores a fresh access token, optional refresh token and
	// expiry, and marks the calendar connected. An empty refreshToken
	// preserves the stored one (Google only returns it on first consent).
	SaveTokens(ctx context.Context, userID, accessToken, refreshToken string, expiresAt time.Time) error
	// Clear removes all token material and marks the calendar disconnected.
	Clear(ctx context.Context, userID string) error
}
