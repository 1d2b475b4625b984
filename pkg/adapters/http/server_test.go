package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprenda/tutor"
	httpadapter "github.com/aprenda/tutor/pkg/adapters/http"
	"github.com/aprenda/tutor/pkg/lessonspec"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	engine, err := tutor.New()
	require.NoError(t, err)
	return httpadapter.NewHandler(engine)
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestLearningTurn(t *testing.T) {
	handler := newTestHandler(t)

	w := postJSON(t, handler, "/learning/turn", httpadapter.LearningTurnRequest{
		SessionID: "s1",
		TopicID:   "verb_to_be",
		Message:   "oi",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp httpadapter.LearningTurnResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "s1", resp.SessionID)
	assert.Contains(t, resp.Reply, "Verbo To Be")
	assert.Equal(t, "PRACTICE", resp.Phase)

	// Second turn on the same session must not repeat the intro.
	w = postJSON(t, handler, "/learning/turn", httpadapter.LearningTurnRequest{
		SessionID: "s1",
		Message:   "I am happy",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotContains(t, resp.Reply, "Você escolheu Aprendizado")
	assert.Equal(t, "student_answer", resp.Intent)
}

func TestLearningTurn_Errors(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("missing session id", func(t *testing.T) {
		w := postJSON(t, handler, "/learning/turn", httpadapter.LearningTurnRequest{Message: "oi"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/learning/turn", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown topic", func(t *testing.T) {
		w := postJSON(t, handler, "/learning/turn", httpadapter.LearningTurnRequest{
			SessionID: "s2",
			TopicID:   "quantum_grammar",
			Message:   "oi",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("oversized message", func(t *testing.T) {
		w := postJSON(t, handler, "/learning/turn", httpadapter.LearningTurnRequest{
			SessionID: "s3",
			Message:   strings.Repeat("a", 5000),
		})
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestSimulatorTurn(t *testing.T) {
	handler := newTestHandler(t)

	w := postJSON(t, handler, "/simulator/turn", httpadapter.SimulatorTurnRequest{
		SessionID: "hotel-1",
		Theme:     "hotel",
		Message:   "Good evening",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp httpadapter.SimulatorTurnResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Reply, "Sunset Hotel")
	assert.Equal(t, 1, resp.Stage)
	assert.Equal(t, "greeting", resp.StageName)

	w = postJSON(t, handler, "/simulator/turn", httpadapter.SimulatorTurnRequest{
		SessionID: "hotel-1",
		Message:   "My name is Wesley",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Wesley", resp.Slots.Name)
	assert.Equal(t, 2, resp.Stage)
	assert.Equal(t, "provide_name", resp.Intent)
}

func TestValidate(t *testing.T) {
	handler := newTestHandler(t)

	w := postJSON(t, handler, "/validate", httpadapter.ValidateRequest{
		Text:        "Let me teach you some grammar.",
		IsSimulator: true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp httpadapter.ValidateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotContains(t, strings.ToLower(resp.Text), "teach")
}

func TestTopics(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var topics []lessonspec.TopicInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&topics))
	require.NotEmpty(t, topics)
	assert.Equal(t, "verb_to_be", topics[0].ID)
}

func TestHealthAndInfo(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/info", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var info map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, tutor.Version, info["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	// Generate one turn so the counters exist.
	postJSON(t, handler, "/learning/turn", httpadapter.LearningTurnRequest{
		SessionID: "m1",
		Message:   "oi",
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tutor_turns_total")
}

func TestCORS(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/learning/turn", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
