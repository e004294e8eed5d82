package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voicenote/internal/domain"
	"voicenote/internal/infra"
)

const notionVersion = "2022-06-28"

// Client creates workspace pages under a configured parent page.
type Client struct {
	apiKey       string
	parentPageID string
	httpClient   *http.Client
	baseURL      string
}

func NewClient(apiKey, parentPageID string) *Client {
	return NewClientWithURL(apiKey, parentPageID, "https://api.notion.com/v1")
}

func NewClientWithURL(apiKey, parentPageID, baseURL string) *Client {
	return &Client{
		apiKey:       apiKey,
		parentPageID: parentPageID,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		baseURL:      baseURL,
	}
}

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Type string      `json:"type,omitempty"`
	Text textContent `json:"text"`
}

type paragraph struct {
	RichText []richText `json:"rich_text"`
}

type block struct {
	Object    string    `json:"object"`
	Type      string    `json:"type"`
	Paragraph paragraph `json:"paragraph"`
}

type createPageRequest struct {
	Parent     map[string]string     `json:"parent"`
	Properties map[string][]richText `json:"properties"`
	Children   []block               `json:"children"`
}

type createPageResponse struct {
	URL string `json:"url"`
}

// CreatePage creates one child page with the note title and a paragraph
// block holding the formatted body, and returns the page URL.
func (c *Client) CreatePage(ctx context.Context, note *domain.Note) (string, error) {
	reqBody := createPageRequest{
		Parent: map[string]string{"page_id": c.parentPageID},
		Properties: map[string][]richText{
			"title": {{Text: textContent{Content: note.Title}}},
		},
		Children: []block{
			{
				Object: "block",
				Type:   "paragraph",
				Paragraph: paragraph{
					RichText: []richText{
						{Type: "text", Text: textContent{Content: FormatBody(note)}},
					},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pages", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		if infra.IsRetryableHTTPStatus(resp.StatusCode) {
			return "", fmt.Errorf("notion API error %d: %s (retryable)", resp.StatusCode, string(respBody))
		}
		return "", fmt.Errorf("notion API error %d: %s", resp.StatusCode, string(respBody))
	}

	var result createPageResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return result.URL, nil
}

// FormatBody renders the note as the page content: a header of extracted
// fields followed by the description and any additional notes.
func FormatBody(note *domain.Note) string {
	var parts []string

	if note.Start != nil {
		parts = append(parts,
			fmt.Sprintf("**Date:** %s", note.Start.Format("2006-01-02")),
			fmt.Sprintf("**Time:** %s - %s", note.Start.Format("15:04"), note.EndOrDefault().Format("15:04")),
		)
	}
	parts = append(parts,
		fmt.Sprintf("**Category:** %s", note.Category),
		fmt.Sprintf("**Priority:** %s", note.Priority),
	)
	if note.Location != "" {
		parts = append(parts, fmt.Sprintf("**Location:** %s", note.Location))
	}
	if len(note.Attendees) > 0 {
		parts = append(parts, fmt.Sprintf("**Attendees:** %s", strings.Join(note.Attendees, ", ")))
	}

	parts = append(parts, "", "**Description:**", note.Body)

	if note.Extra != "" {
		parts = append(parts, "", "**Additional Notes:**", note.Extra)
	}

	return strings.Join(parts, "\n")
}
