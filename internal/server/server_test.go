package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmone/pursuitql/internal/engine"
)

type stubAsker struct {
	resp *engine.Response
	err  error

	gotQuestion string
}

func (s *stubAsker) Ask(_ context.Context, question string) (*engine.Response, error) {
	s.gotQuestion = question
	return s.resp, s.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func postQuery(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestQuerySuccess(t *testing.T) {
	asker := &stubAsker{resp: &engine.Response{
		Success:      true,
		Question:     "largest projects",
		FunctionName: "get_largest_projects",
		Data:         []map[string]any{{"Project Name": "Campus Bridge"}},
		RowCount:     1,
	}}

	rec := postQuery(t, New(asker, nil).Router(), `{"question": "largest projects"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "largest projects", asker.gotQuestion)

	var resp engine.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.RowCount)
}

func TestQueryMissingQuestion(t *testing.T) {
	rec := postQuery(t, New(&stubAsker{}, nil).Router(), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp engine.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "missing_question", resp.Error)
}

func TestQueryMalformedBody(t *testing.T) {
	rec := postQuery(t, New(&stubAsker{}, nil).Router(), `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp engine.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bad_request", resp.Error)
}

func TestQueryInternalError(t *testing.T) {
	asker := &stubAsker{err: errors.New("db down")}
	rec := postQuery(t, New(asker, nil).Router(), `{"question": "anything"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp engine.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal_error", resp.Error)
	assert.NotContains(t, resp.Message, "db down")
}

func TestQueryCannotClassifyPassesThrough(t *testing.T) {
	asker := &stubAsker{resp: &engine.Response{
		Success: false,
		Error:   engine.ErrKindCannotClassify,
		Message: "try something else",
		Data:    []map[string]any{},
	}}

	rec := postQuery(t, New(asker, nil).Router(), `{"question": "gibberish"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp engine.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, engine.ErrKindCannotClassify, resp.Error)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	New(&stubAsker{}, stubPinger{}).Router().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHealthzDegraded(t *testing.T) {
	rec := httptest.NewRecorder()
	New(&stubAsker{}, stubPinger{err: errors.New("no route to host")}).Router().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}
