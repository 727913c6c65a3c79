package trello

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL   = "https://api.trello.com/1"
	defaultAPIKeyEnv = "TRELLO_API_KEY"
	defaultTokenEnv  = "TRELLO_TOKEN"
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 4 << 20
)

// Config is Trello API client configuration. APIKey and Token take precedence
// over the environment variables named by APIKeyEnv and TokenEnv.
type Config struct {
	BaseURL   string
	APIKey    string
	APIKeyEnv string
	Token     string
	TokenEnv  string
	Timeout   time.Duration
}

var (
	// ErrNotFound matches API errors with status 404.
	ErrNotFound = errors.New("trello: not found")
	// ErrRateLimited matches API errors with status 429.
	ErrRateLimited = errors.New("trello: rate limited")
)

// APIError is a non-2xx response from the Trello API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("trello %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("trello %s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Is maps status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

type labelJSON struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Color   *string `json:"color"`
	IDBoard string  `json:"idBoard,omitempty"`
}

type listJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IDBoard string `json:"idBoard"`
	Closed  bool   `json:"closed"`
}

type cardJSON struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Desc     string   `json:"desc"`
	IDList   string   `json:"idList"`
	IDLabels []string `json:"idLabels"`
}

type checklistJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IDCard string `json:"idCard"`
}

type checkItemJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IDChecklist string `json:"idChecklist"`
	State       string `json:"state"`
}

type createLabelRequest struct {
	Name    string  `json:"name"`
	Color   *string `json:"color"`
	IDBoard string  `json:"idBoard"`
}

type createCardRequest struct {
	IDList   string `json:"idList"`
	Name     string `json:"name"`
	Desc     string `json:"desc,omitempty"`
	IDLabels string `json:"idLabels,omitempty"`
}

type createChecklistRequest struct {
	Name string `json:"name"`
}

type createCheckItemRequest struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}
