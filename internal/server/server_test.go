package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/flagstaff/internal/assert/helpers"
	"github.com/kode4food/flagstaff/internal/server"
	"github.com/kode4food/flagstaff/pkg/api"
)

type testServerEnv struct {
	*helpers.TestEngineEnv
	Server *server.Server
	Frames *server.FrameStream
}

func testProject() *api.Project {
	cat := helpers.NewSprite("Cat")
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpChangeXBy, helpers.Num("DX", 10)),
	)
	helpers.Script(cat, helpers.Do(api.OpWhenBroadcastReceived,
		helpers.Field("BROADCAST_OPTION", "jump")),
		helpers.Do(api.OpChangeYBy, helpers.Num("DY", 5)),
	)
	helpers.Script(cat, helpers.Do(api.OpWhenFlagClicked),
		helpers.Do(api.OpAskAndWait, helpers.Text("QUESTION", "Name?")),
		helpers.Do(api.OpSay,
			helpers.Reporter("MESSAGE", helpers.Do(api.OpAnswer)),
		),
	)
	return helpers.NewProject(cat)
}

func testServer(t *testing.T) *testServerEnv {
	t.Helper()
	env := helpers.NewTestEngine(t, testProject())
	frames := server.NewFrameStream()
	return &testServerEnv{
		TestEngineEnv: env,
		Server:        server.NewServer(env.Engine, env.Input, frames),
		Frames:        frames,
	}
}

func (e *testServerEnv) do(
	method, path string, body any,
) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.Server.SetupRoutes().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()
	env.Ticks(2)

	w := env.do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var res api.HealthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "flagstaff", res.Service)
	assert.Equal(t, api.HealthHealthy, res.Status)
	assert.Equal(t, uint64(2), res.Frame)
}

func TestHealthWhenStopped(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()
	assert.NoError(t, env.Engine.Stop())

	w := env.do("GET", "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = env.do("POST", "/engine/flag", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEngineStatus(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()
	env.Flag()

	w := env.do("GET", "/engine", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var st api.EngineStatus
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, uint64(1), st.Frame)
	assert.Equal(t, 2, st.Sprites)
	assert.Equal(t, 1, st.Waiting)
	assert.False(t, st.Stopped)
}

func TestSpritesEndpoint(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()
	env.Flag()

	w := env.do("GET", "/engine/sprites", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var res api.SpritesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "Cat", res.Sprites[1].Name)
	assert.Equal(t, 10.0, res.Sprites[1].X)
}

func TestFlagAndStop(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()

	w := env.do("POST", "/engine/flag", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	env.Ticks(1)
	assert.Equal(t, 10.0, env.Sprite(t, "Cat").X)
	assert.Equal(t, 1, env.Engine.Waiting().Len())

	w = env.do("POST", "/engine/stop", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	env.Ticks(1)
	assert.Equal(t, 0, env.Engine.Waiting().Len())
}

func TestBroadcastEndpoint(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()

	w := env.do("POST", "/engine/broadcast/JUMP", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	env.Ticks(1)
	assert.Equal(t, 5.0, env.Sprite(t, "Cat").Y)

	w = env.do("POST", "/engine/broadcast/%20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnswerEndpoint(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()
	env.Flag()

	w := env.do("POST", "/engine/answer", api.AnswerRequest{Text: "Tom"})
	assert.Equal(t, http.StatusAccepted, w.Code)
	env.Ticks(1)
	assert.Equal(t, "Tom", env.Sprite(t, "Cat").Bubble.Text)

	req := httptest.NewRequest("POST", "/engine/answer",
		bytes.NewReader([]byte("not-json")),
	)
	rec := httptest.NewRecorder()
	env.Server.SetupRoutes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInputEndpoint(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()

	x, down := 12.5, true
	w := env.do("POST", "/engine/input", api.InputRequest{
		MouseX:    &x,
		MouseDown: &down,
		Press:     []string{"space", "a"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	snap := env.Input.Snapshot()
	assert.Equal(t, 12.5, snap.MouseX)
	assert.Equal(t, 0.0, snap.MouseY)
	assert.True(t, snap.MouseDown)
	assert.True(t, snap.KeyDown("space"))

	w = env.do("POST", "/engine/input", api.InputRequest{
		Release: []string{"space"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	snap = env.Input.Snapshot()
	assert.False(t, snap.KeyDown("space"))
	assert.True(t, snap.KeyDown("a"))
	assert.True(t, snap.MouseDown)
}

func TestInputDisabled(t *testing.T) {
	env := helpers.NewTestEngine(t, testProject())
	defer env.Cleanup()
	srv := server.NewServer(env.Engine, nil, nil)

	req := httptest.NewRequest("POST", "/engine/input",
		bytes.NewReader([]byte(`{}`)),
	)
	w := httptest.NewRecorder()
	srv.SetupRoutes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	req = httptest.NewRequest("GET", "/engine/ws", nil)
	w = httptest.NewRecorder()
	srv.SetupRoutes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := testServer(t)
	defer env.Cleanup()

	w := env.do("OPTIONS", "/engine/flag", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
