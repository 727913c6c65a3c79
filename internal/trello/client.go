// Package trello implements board.Service on top of the Trello REST API.
package trello

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/metalagman/boardfill/internal/board"
	"github.com/rs/zerolog/log"
)

// Client is a Trello API client.
type Client struct {
	cfg  Config
	http *http.Client
}

var _ board.Service = (*Client)(nil)

// NewClient constructs a client. A nil httpClient uses a fresh http.Client.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	apiKey := credential(cfg.APIKey, cfg.APIKeyEnv, defaultAPIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("trello api key is required (set api_key or %s)", envName(cfg.APIKeyEnv, defaultAPIKeyEnv))
	}
	token := credential(cfg.Token, cfg.TokenEnv, defaultTokenEnv)
	if token == "" {
		return nil, fmt.Errorf("trello token is required (set token or %s)", envName(cfg.TokenEnv, defaultTokenEnv))
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		cfg: Config{
			BaseURL: baseURL,
			APIKey:  apiKey,
			Token:   token,
			Timeout: timeout,
		},
		http: httpClient,
	}, nil
}

func envName(name, fallback string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return fallback
}

func credential(value, env, fallbackEnv string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(envName(env, fallbackEnv)))
}

// ListLabels returns every label defined on a board.
func (c *Client) ListLabels(ctx context.Context, boardID string) ([]board.Label, error) {
	var raw []labelJSON
	q := url.Values{"limit": {"1000"}, "fields": {"id,name,color"}}
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardID)+"/labels", q, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]board.Label, 0, len(raw))
	for _, l := range raw {
		out = append(out, toLabel(l))
	}
	return out, nil
}

// CreateLabel creates a label on a board.
func (c *Client) CreateLabel(ctx context.Context, boardID, name string, color board.Color) (board.Label, error) {
	req := createLabelRequest{Name: name, IDBoard: boardID}
	if color != board.ColorNone {
		s := string(color)
		req.Color = &s
	}
	var raw labelJSON
	if err := c.do(ctx, http.MethodPost, "/labels", nil, req, &raw); err != nil {
		return board.Label{}, err
	}
	return toLabel(raw), nil
}

// GetList fetches a list by id.
func (c *Client) GetList(ctx context.Context, listID string) (board.List, error) {
	var raw listJSON
	if err := c.do(ctx, http.MethodGet, "/lists/"+url.PathEscape(listID), nil, nil, &raw); err != nil {
		return board.List{}, err
	}
	return board.List{ID: raw.ID, Name: raw.Name, BoardID: raw.IDBoard}, nil
}

// ListLists returns the open lists of a board.
func (c *Client) ListLists(ctx context.Context, boardID string) ([]board.List, error) {
	var raw []listJSON
	q := url.Values{"filter": {"open"}}
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardID)+"/lists", q, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]board.List, 0, len(raw))
	for _, l := range raw {
		out = append(out, board.List{ID: l.ID, Name: l.Name, BoardID: l.IDBoard})
	}
	return out, nil
}

// CreateCard creates a card on a list.
func (c *Client) CreateCard(ctx context.Context, card board.NewCard) (board.Card, error) {
	req := createCardRequest{
		IDList:   card.ListID,
		Name:     card.Name,
		Desc:     card.Description,
		IDLabels: strings.Join(card.LabelIDs, ","),
	}
	var raw cardJSON
	if err := c.do(ctx, http.MethodPost, "/cards", nil, req, &raw); err != nil {
		return board.Card{}, err
	}
	return board.Card{ID: raw.ID, ListID: raw.IDList, Name: raw.Name, Desc: raw.Desc, LabelIDs: raw.IDLabels}, nil
}

// CreateChecklist adds a checklist to a card.
func (c *Client) CreateChecklist(ctx context.Context, cardID, name string) (board.Checklist, error) {
	var raw checklistJSON
	path := "/cards/" + url.PathEscape(cardID) + "/checklists"
	if err := c.do(ctx, http.MethodPost, path, nil, createChecklistRequest{Name: name}, &raw); err != nil {
		return board.Checklist{}, err
	}
	return board.Checklist{ID: raw.ID, CardID: raw.IDCard, Name: raw.Name}, nil
}

// AddChecklistItem appends an unchecked item to a checklist.
func (c *Client) AddChecklistItem(ctx context.Context, checklistID, text string) (board.CheckItem, error) {
	var raw checkItemJSON
	path := "/checklists/" + url.PathEscape(checklistID) + "/checkItems"
	if err := c.do(ctx, http.MethodPost, path, nil, createCheckItemRequest{Name: text}, &raw); err != nil {
		return board.CheckItem{}, err
	}
	return board.CheckItem{
		ID:          raw.ID,
		ChecklistID: raw.IDChecklist,
		Name:        raw.Name,
		Checked:     raw.State == "complete",
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("key", c.cfg.APIKey)
	q.Set("token", c.cfg.Token)

	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path+"?"+q.Encode(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("path", path).Msg("trello request")
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error carries the full URL, credentials included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("trello %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(data)),
		}
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func toLabel(l labelJSON) board.Label {
	color := board.ColorNone
	if l.Color != nil {
		if c, ok := board.ParseColor(*l.Color); ok {
			color = c
		}
	}
	return board.Label{ID: l.ID, Name: l.Name, Color: color}
}
