// Package googlecal inserts calendar events using the Google Calendar API,
// authorized by a locally stored OAuth credential pair: credentials.json
// (client secrets) and token.json (user token obtained via Authorize).
package googlecal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"voicenote/internal/domain"
)

type Client struct {
	credentialsFile string
	tokenFile       string
	calendarID      string
	location        *time.Location
}

func NewClient(credentialsFile, tokenFile, calendarID, timeZone string) (*Client, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", timeZone, err)
	}
	return &Client{
		credentialsFile: credentialsFile,
		tokenFile:       tokenFile,
		calendarID:      calendarID,
		location:        loc,
	}, nil
}

// Schedule inserts one event for a schedulable note. Missing or expired
// credentials surface as errors telling the user to re-run --authorize.
func (c *Client) Schedule(ctx context.Context, note *domain.Note) error {
	if !note.Schedulable() {
		return fmt.Errorf("note has no start time")
	}

	srv, err := c.service(ctx)
	if err != nil {
		return err
	}

	event := BuildEvent(note, c.location)
	if _, err := srv.Events.Insert(c.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// BuildEvent maps a note onto the Calendar API event shape: title,
// description, location, attendees, start/end in the configured zone, and
// the fixed reminder overrides (email a day ahead, popup ten minutes ahead).
func BuildEvent(note *domain.Note, loc *time.Location) *calendar.Event {
	start := note.Start.In(loc)
	end := note.EndOrDefault().In(loc)

	var attendees []*calendar.EventAttendee
	for _, email := range note.Attendees {
		attendees = append(attendees, &calendar.EventAttendee{Email: email})
	}

	return &calendar.Event{
		Summary:     note.Title,
		Location:    note.Location,
		Description: note.Body,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		Attendees: attendees,
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

func (c *Client) service(ctx context.Context) (*calendar.Service, error) {
	oauthCfg, err := c.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := readToken(c.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s (run with --authorize first): %w", c.tokenFile, err)
	}

	srv, err := calendar.NewService(ctx, option.WithTokenSource(oauthCfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return srv, nil
}

// Authorize runs the manual OAuth consent flow: prints the consent URL,
// reads the authorization code from stdin, and saves the token file.
func (c *Client) Authorize(ctx context.Context) error {
	oauthCfg, err := c.oauthConfig()
	if err != nil {
		return err
	}

	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in your browser, then paste the authorization code:\n%v\n> ", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return fmt.Errorf("reading authorization code: %w", err)
	}

	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}

	return writeToken(c.tokenFile, tok)
}

func (c *Client) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(c.credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets: %w", err)
	}
	return cfg, nil
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	return tok, nil
}

func writeToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	return nil
}
