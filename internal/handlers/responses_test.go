package handlers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitResponseForMissingSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.request("POST", "/responses", map[string]interface{}{
		"session_id": 42,
		"task_id":    "q1",
		"payload":    map[string]interface{}{},
	}, "")
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "Session not found", env.decode(w)["detail"])
}

func TestResponseListingsRequireToken(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, 401, env.request("GET", "/responses/by-session/1", nil, "").Code)
	assert.Equal(t, 401, env.request("GET", "/responses/by-instrument/1", nil, "").Code)
}

func TestDuplicateTaskResponsesKeepInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()
	_, instrumentID := env.seed(token)

	w := env.request("POST", "/sessions", map[string]interface{}{"instrument_id": instrumentID}, "")
	require.Equal(t, 200, w.Code)
	sessionID := env.decode(w)["session_id"].(float64)

	// Two answers for the same task are both kept.
	for i, v := range []int{5, 7} {
		w = env.request("POST", "/responses", map[string]interface{}{
			"session_id": sessionID,
			"task_id":    "q1",
			"payload":    map[string]interface{}{"v": v},
		}, "")
		require.Equal(t, 200, w.Code)
		body := env.decode(w)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, float64(i+1), body["response_id"])
	}

	w = env.request("GET", fmt.Sprintf("/responses/by-session/%d", int(sessionID)), nil, token)
	require.Equal(t, 200, w.Code)
	list := env.decodeList(w)
	require.Len(t, list, 2)
	for i, want := range []float64{5, 7} {
		assert.Equal(t, "q1", list[i]["task_id"])
		assert.Equal(t, sessionID, list[i]["session_id"])
		assert.Equal(t, want, list[i]["payload"].(map[string]interface{})["v"])
		assert.Contains(t, list[i], "created_at")
	}

	w = env.request("GET", fmt.Sprintf("/responses/by-instrument/%d", int(instrumentID)), nil, token)
	require.Equal(t, 200, w.Code)
	list = env.decodeList(w)
	require.Len(t, list, 2)
	assert.Equal(t, float64(5), list[0]["payload"].(map[string]interface{})["v"])
	assert.Equal(t, float64(7), list[1]["payload"].(map[string]interface{})["v"])
}

func TestListByInstrumentJoinsAcrossSessions(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()
	_, instrumentID := env.seed(token)

	// Two sessions against the same instrument, one response each.
	var sessionIDs []float64
	for i := 0; i < 2; i++ {
		w := env.request("POST", "/sessions", map[string]interface{}{"instrument_id": instrumentID}, "")
		require.Equal(t, 200, w.Code)
		sessionIDs = append(sessionIDs, env.decode(w)["session_id"].(float64))
	}
	for i, sid := range sessionIDs {
		w := env.request("POST", "/responses", map[string]interface{}{
			"session_id": sid,
			"task_id":    fmt.Sprintf("q%d", i+1),
			"payload":    map[string]interface{}{},
		}, "")
		require.Equal(t, 200, w.Code)
	}

	w := env.request("GET", fmt.Sprintf("/responses/by-instrument/%d", int(instrumentID)), nil, token)
	require.Equal(t, 200, w.Code)
	list := env.decodeList(w)
	require.Len(t, list, 2)
	assert.Equal(t, sessionIDs[0], list[0]["session_id"])
	assert.Equal(t, sessionIDs[1], list[1]["session_id"])

	// A session from another instrument does not leak in.
	w = env.request("GET", fmt.Sprintf("/responses/by-session/%d", int(sessionIDs[0])), nil, token)
	require.Equal(t, 200, w.Code)
	require.Len(t, env.decodeList(w), 1)
}

func TestEndToEndParticipantFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login()

	w := env.request("POST", "/studies", map[string]string{"title": "S1"}, token)
	require.Equal(t, 200, w.Code)
	studyID := env.decode(w)["id"].(float64)
	require.Equal(t, float64(1), studyID)

	w = env.request("POST", "/instruments", map[string]interface{}{
		"study_id": studyID, "name": "I1", "spec": map[string]interface{}{},
	}, token)
	require.Equal(t, 200, w.Code)
	instrumentID := env.decode(w)["id"].(float64)

	w = env.request("POST", "/sessions", map[string]interface{}{"instrument_id": instrumentID}, "")
	require.Equal(t, 200, w.Code)
	created := env.decode(w)
	sessionID := created["session_id"].(float64)
	assert.Regexp(t, participantIDPattern, created["participant_id"])

	w = env.request("POST", "/responses", map[string]interface{}{
		"session_id": sessionID, "task_id": "q1", "payload": map[string]interface{}{"v": 5},
	}, "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, float64(1), env.decode(w)["response_id"])

	w = env.request("GET", fmt.Sprintf("/responses/by-session/%d", int(sessionID)), nil, token)
	require.Equal(t, 200, w.Code)
	list := env.decodeList(w)
	require.Len(t, list, 1)
	assert.Equal(t, "q1", list[0]["task_id"])
	assert.Equal(t, float64(5), list[0]["payload"].(map[string]interface{})["v"])

	w = env.request("DELETE", fmt.Sprintf("/studies/%d", int(studyID)), nil, token)
	require.Equal(t, 204, w.Code)

	w = env.request("GET", fmt.Sprintf("/instruments/%d", int(instrumentID)), nil, token)
	assert.Equal(t, 404, w.Code)
}
