package trello

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/metalagman/boardfill/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

func newTestServer(t *testing.T, routes map[string]string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		if len(body) > 0 {
			if err := sonic.Unmarshal(body, &rec.Body); err != nil {
				t.Errorf("decode body: %v", err)
			}
		}
		got = append(got, rec)

		resp, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.Error(w, "invalid id", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k", Token: "tok"}, srv.Client())
	require.NoError(t, err)
	return c
}

func TestListLabels_DecodesColors(t *testing.T) {
	srv, got := newTestServer(t, map[string]string{
		"GET /boards/b1/labels": `[{"id":"l1","name":"swift","color":"blue"},{"id":"l2","name":"contests","color":null}]`,
	})
	c := newTestClient(t, srv)

	labels, err := c.ListLabels(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, []board.Label{
		{ID: "l1", Name: "swift", Color: board.ColorBlue},
		{ID: "l2", Name: "contests", Color: board.ColorNone},
	}, labels)

	require.Len(t, *got, 1)
	assert.Equal(t, "k", (*got)[0].Query["key"])
	assert.Equal(t, "tok", (*got)[0].Query["token"])
}

func TestCreateLabel_SendsNullColorForNone(t *testing.T) {
	srv, got := newTestServer(t, map[string]string{
		"POST /labels": `{"id":"new","name":"contests","color":null}`,
	})
	c := newTestClient(t, srv)

	label, err := c.CreateLabel(context.Background(), "b1", "contests", board.ColorNone)
	require.NoError(t, err)
	assert.Equal(t, "new", label.ID)

	body := (*got)[0].Body
	assert.Equal(t, "contests", body["name"])
	assert.Equal(t, "b1", body["idBoard"])
	assert.Contains(t, body, "color")
	assert.Nil(t, body["color"])
}

func TestCreateCard_JoinsLabelIDs(t *testing.T) {
	srv, got := newTestServer(t, map[string]string{
		"POST /cards": `{"id":"c1","name":"n","desc":"d","idList":"list","idLabels":["a","b"]}`,
	})
	c := newTestClient(t, srv)

	card, err := c.CreateCard(context.Background(), board.NewCard{ListID: "list", Name: "n", Description: "d", LabelIDs: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "c1", card.ID)
	assert.Equal(t, []string{"a", "b"}, card.LabelIDs)

	body := (*got)[0].Body
	assert.Equal(t, "list", body["idList"])
	assert.Equal(t, "a,b", body["idLabels"])
}

func TestChecklistCalls(t *testing.T) {
	srv, got := newTestServer(t, map[string]string{
		"POST /cards/c1/checklists":       `{"id":"cl1","name":"Checklist","idCard":"c1"}`,
		"POST /checklists/cl1/checkItems": `{"id":"i1","name":"item","idChecklist":"cl1","state":"incomplete"}`,
	})
	c := newTestClient(t, srv)

	cl, err := c.CreateChecklist(context.Background(), "c1", "Checklist")
	require.NoError(t, err)
	assert.Equal(t, board.Checklist{ID: "cl1", CardID: "c1", Name: "Checklist"}, cl)

	item, err := c.AddChecklistItem(context.Background(), "cl1", "item")
	require.NoError(t, err)
	assert.False(t, item.Checked)
	assert.Equal(t, false, (*got)[1].Body["checked"])
}

func TestGetList_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{})
	c := newTestClient(t, srv)

	_, err := c.GetList(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "invalid id")
}

func TestListLists_FiltersOpen(t *testing.T) {
	srv, got := newTestServer(t, map[string]string{
		"GET /boards/b1/lists": `[{"id":"l1","name":"Backlog","idBoard":"b1"}]`,
	})
	c := newTestClient(t, srv)

	lists, err := c.ListLists(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, []board.List{{ID: "l1", Name: "Backlog", BoardID: "b1"}}, lists)
	assert.Equal(t, "open", (*got)[0].Query["filter"])
}

func TestAPIError_RateLimited(t *testing.T) {
	t.Parallel()

	err := &APIError{Method: "POST", Path: "/cards", StatusCode: http.StatusTooManyRequests}
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Too Many Requests")
}

func TestTransportErrorHidesCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(t, srv)
	srv.Close()

	_, err := c.GetList(context.Background(), "l1")
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "tok"), err.Error())
}

func TestNewClient_CredentialsFromEnv(t *testing.T) {
	t.Setenv("BOARDFILL_TEST_KEY", "env-key")
	t.Setenv("BOARDFILL_TEST_TOKEN", "env-token")

	c, err := NewClient(Config{APIKeyEnv: "BOARDFILL_TEST_KEY", TokenEnv: "BOARDFILL_TEST_TOKEN"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "env-key", c.cfg.APIKey)
	assert.Equal(t, "env-token", c.cfg.Token)
	assert.Equal(t, defaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, defaultTimeout, c.cfg.Timeout)
	assert.NoError(t, c.Close())
}

func TestNewClient_MissingCredentials(t *testing.T) {
	t.Setenv("BOARDFILL_MISSING_KEY", "")

	_, err := NewClient(Config{APIKeyEnv: "BOARDFILL_MISSING_KEY"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOARDFILL_MISSING_KEY")

	_, err = NewClient(Config{APIKey: "k", TokenEnv: "BOARDFILL_MISSING_KEY"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}
