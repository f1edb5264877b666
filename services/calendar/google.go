package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"slotbook/config"
	credentialRepo "slotbook/database/repository/credential"
	"slotbook/models"
	"slotbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// fetchTimeout bounds every call to the Google Calendar API. Exceeding it is
// treated like any other transport failure: degraded-empty, never propagated.
const fetchTimeout = 8 * time.Second

// refreshLockTTL is how long a refresh single-flight lock is held at most.
const refreshLockTTL = 30 * time.Second

// RefreshLocker is the subset of the Redis client used for the refresh
// single-flight lock. *redis.Client satisfies it.
type RefreshLocker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DefaultCalendarService implements CalendarService against Google Calendar.
type DefaultCalendarService struct {
	Creds credentialRepo.CredentialRepository
	Clock utils.Clock
	// LockClient guards token refresh with a single-flight lock so a burst of
	// requests for one user triggers at most one refresh. Nil disables the
	// guard (tests).
	LockClient RefreshLocker
	// Refresh exchanges an expired token for a fresh one. Nil uses the
	// provider's token source; tests inject a scripted exchange.
	Refresh func(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error)
	// Endpoint overrides the Calendar API base URL. Empty uses the provider default.
	Endpoint string
}

func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURL:  config.AppConfig.GoogleRedirectURI,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			gcal.CalendarReadonlyScope,
			gcal.CalendarEventsReadonlyScope,
		},
	}
}

// AuthorizationURL builds the consent URL with userID as opaque state.
func (s *DefaultCalendarService) AuthorizationURL(userID string) string {
	return oauthConfig().AuthCodeURL(userID,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode performs the one-shot code-for-tokens exchange.
func (s *DefaultCalendarService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := oauthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalAuth, err)
	}
	return token, nil
}

// Connect persists an exchanged token set for the user.
func (s *DefaultCalendarService) Connect(ctx context.Context, userID string, token *oauth2.Token) error {
	return s.Creds.SaveTokens(ctx, userID, token.AccessToken, token.RefreshToken, token.Expiry)
}

// Disconnect clears the user's credential.
func (s *DefaultCalendarService) Disconnect(ctx context.Context, userID string) error {
	return s.Creds.Clear(ctx, userID)
}

// usableToken loads the user's credential and returns a token good for API
// calls, refreshing it once if expired. A nil token with a nil error means
// the calendar is unavailable for this call (no credential, lost refresh
// race, or failed refresh) and the caller must degrade to empty results.
func (s *DefaultCalendarService) usableToken(ctx context.Context, userID string) (*oauth2.Token, error) {
	logger := utils.GetLogger()

	cred, err := s.Creds.Get(ctx, userID)
	if err != nil {
		logger.Warn("calendar: credential lookup failed, proceeding degraded",
			zap.String("userID", userID), zap.Error(err))
		return nil, nil
	}
	if !cred.Connected || cred.AccessToken == "" {
		return nil, nil
	}

	token := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		Expiry:       cred.ExpiresAt,
	}
	if !cred.Expired(s.Clock.Now()) {
		return token, nil
	}

	// Expired: exactly one refresh attempt, guarded by a single-flight lock.
	if s.LockClient != nil {
		lockKey := utils.RefreshLockPrefix + userID
		acquired, err := s.LockClient.SetNX(ctx, lockKey, "1", refreshLockTTL).Result()
		if err != nil {
			logger.Warn("calendar: refresh lock unavailable, proceeding degraded",
				zap.String("userID", userID), zap.Error(err))
			return nil, nil
		}
		if !acquired {
			// Another request is already refreshing; this call degrades.
			return nil, nil
		}
		defer func() {
			// Release on a fresh context: the fetch deadline may already be
			// spent, and a lingering lock degrades every call until the TTL.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			s.LockClient.Del(releaseCtx, lockKey)
		}()
	}

	refresh := s.Refresh
	if refresh == nil {
		refresh = func(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
			return oauthConfig().TokenSource(ctx, token).Token()
		}
	}
	fresh, err := refresh(ctx, token)
	if err != nil {
		// The credential stays connected; only this call proceeds empty.
		logger.Warn("calendar: token refresh failed, proceeding degraded",
			zap.String("userID", userID), zap.Error(err))
		return nil, nil
	}

	if err := s.Creds.SaveTokens(ctx, userID, fresh.AccessToken, fresh.RefreshToken, fresh.Expiry); err != nil {
		logger.Warn("calendar: failed to persist refreshed token",
			zap.String("userID", userID), zap.Error(err))
	}
	return fresh, nil
}

// FetchBusyIntervals returns the user's external events intersecting the
// window, sorted by start ascending. All-day entries are included with zero
// instants; overlap checks skip them.
func (s *DefaultCalendarService) FetchBusyIntervals(ctx context.Context, userID string, window models.Interval) ([]models.CalendarEvent, error) {
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	token, err := s.usableToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return []models.CalendarEvent{}, nil
	}

	opts := []option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(token))}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		logger.Warn("calendar: failed to build client, proceeding degraded",
			zap.String("userID", userID), zap.Error(err))
		return []models.CalendarEvent{}, nil
	}

	events := []models.CalendarEvent{}
	err = svc.Events.List("primary").
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(100).
		Pages(ctx, func(page *gcal.Events) error {
			for _, item := range page.Items {
				events = append(events, models.CalendarEvent{
					ID:      item.Id,
					Summary: item.Summary,
					Start:   parseEventTime(item.Start),
					End:     parseEventTime(item.End),
				})
			}
			return nil
		})
	if err != nil {
		logger.Warn("calendar: event fetch failed, proceeding degraded",
			zap.String("userID", userID), zap.Error(err))
		return []models.CalendarEvent{}, nil
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

// CheckOverlap reports timed external events overlapping the interval.
func (s *DefaultCalendarService) CheckOverlap(ctx context.Context, userID string, interval models.Interval) (models.ConflictResult, error) {
	events, err := s.FetchBusyIntervals(ctx, userID, interval)
	if err != nil {
		return models.ConflictResult{}, err
	}
	return FilterConflicts(events, interval), nil
}

// FilterConflicts reduces a fetched event list to the timed events whose
// interval overlaps the given one.
func FilterConflicts(events []models.CalendarEvent, interval models.Interval) models.ConflictResult {
	var items []models.ConflictItem
	for _, ev := range events {
		if !ev.Timed() {
			continue
		}
		if ev.Interval().Overlaps(interval) {
			items = append(items, models.ConflictItem{
				ID:      ev.ID,
				Summary: ev.Summary,
				Start:   ev.Start,
				End:     ev.End,
			})
		}
	}
	return models.ConflictResult{HasConflict: len(items) > 0, Items: items}
}

// parseEventTime extracts the timed instant from an event boundary. All-day
// entries carry only a date and yield a zero time.
func parseEventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil || edt.DateTime == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, edt.DateTime)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
