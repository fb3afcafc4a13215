package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"TareasWeb/api"
	"TareasWeb/apitest"
	"TareasWeb/models"
	"TareasWeb/response"
	"TareasWeb/routes"
	"TareasWeb/views"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type harness struct {
	fake    *apitest.Server
	web     *httptest.Server
	metrics *Metrics
}

func newHarness(t *testing.T, apiURL string, limiter *rate.Limiter) *harness {
	t.Helper()
	h := &harness{}
	if apiURL == "" {
		h.fake = apitest.NewServer()
		t.Cleanup(h.fake.Close)
		apiURL = h.fake.URL
	}
	log, _ := test.NewNullLogger()
	renderer, err := views.New()
	require.NoError(t, err)
	h.metrics = NewMetrics(prometheus.NewRegistry())
	table := routes.New(api.NewClient(apiURL, api.WithLogger(log)), log).Table()
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	srv := NewServer(table, renderer, Options{Logger: log, Metrics: h.metrics, Limiter: limiter})
	h.web = httptest.NewServer(srv)
	t.Cleanup(h.web.Close)
	return h
}

func (h *harness) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(h.web.URL + path)
	require.NoError(t, err)
	return res, readBody(t, res)
}

func (h *harness) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	res, err := http.PostForm(h.web.URL+path, form)
	require.NoError(t, err)
	return res, readBody(t, res)
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(b)
}

func seedOne(h *harness) models.Task {
	return h.fake.Seed(models.TaskData{
		Nombre: "Lavar el carro", Descripcion: "Con cera", FechaInicio: "2024-04-02", FechaFinal: "2024-04-03",
	})[0]
}

const refresh = `http-equiv="refresh"`

func TestListHandler(t *testing.T) {
	h := newHarness(t, "", nil)
	task := seedOne(h)

	res, body := h.get(t, "/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Lavar el carro")
	assert.Contains(t, body, "2/4/2024")
	assert.NotContains(t, body, `id="confirmacion"`)

	_, body = h.get(t, "/?"+ConfirmParam+"="+string(task.Id))
	assert.Contains(t, body, `id="confirmacion"`)
	assert.Contains(t, body, `value="`+string(task.Id)+`"`)
}

func TestListHandlerEmpty(t *testing.T) {
	h := newHarness(t, "", nil)
	h.fake.EmptyAnswers = true
	res, body := h.get(t, "/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "No hay tareas registradas.")
}

func TestCreateTaskHandler(t *testing.T) {
	h := newHarness(t, "", nil)

	res, body := h.get(t, "/crear")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `name="fechaInicio"`)

	res, body = h.post(t, "/crear", url.Values{
		"nombre": {"Estudiar"}, "descripcion": {"Go"}, "fechaInicio": {"2024-07-01"}, "fechaFinal": {"2024-07-30"},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, response.TaskCreated)
	assert.Contains(t, body, refresh)

	tasks := h.fake.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Estudiar", tasks[0].Nombre)
	assert.False(t, tasks[0].Completado)
}

func TestCreateTaskHandlerMissingField(t *testing.T) {
	h := newHarness(t, "", nil)
	_, body := h.post(t, "/crear", url.Values{"nombre": {"Estudiar"}})
	assert.Contains(t, body, response.TaskCreateFailed)
	assert.NotContains(t, body, refresh)
	assert.Empty(t, h.fake.Tasks())
}

func TestUpdateTaskHandler(t *testing.T) {
	h := newHarness(t, "", nil)
	task := seedOne(h)

	res, body := h.get(t, "/editar/"+string(task.Id))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `value="2024-04-02"`)

	_, body = h.post(t, "/editar/"+string(task.Id), url.Values{
		"nombre": {"Lavar la moto"}, "descripcion": {"Sin cera"}, "completado": {"on"},
		"fechaInicio": {"2024-04-05"}, "fechaFinal": {"2024-04-01"},
	})
	assert.Contains(t, body, response.TaskUpdated)
	assert.Contains(t, body, refresh)

	want := models.Task{Id: task.Id, TaskData: models.TaskData{
		Nombre: "Lavar la moto", Descripcion: "Sin cera", Completado: true, FechaInicio: "2024-04-05", FechaFinal: "2024-04-01",
	}}
	assert.Equal(t, []models.Task{want}, h.fake.Tasks())
}

func TestDeleteTaskHandler(t *testing.T) {
	h := newHarness(t, "", nil)
	task := seedOne(h)
	form := url.Values{"id": {string(task.Id)}}

	_, body := h.post(t, "/", form)
	assert.Contains(t, body, response.TaskDeleted)
	assert.Contains(t, body, refresh)
	assert.Empty(t, h.fake.Tasks())

	_, body = h.post(t, "/", form)
	assert.Contains(t, body, response.TaskDeleteFailed)
	assert.NotContains(t, body, refresh)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.errors.WithLabelValues(routes.List)))
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.endpoints.WithLabelValues(routes.List, http.MethodPost)))
}

func TestGetTaskHandler(t *testing.T) {
	h := newHarness(t, "", nil)
	task := seedOne(h)

	res, body := h.get(t, "/ver/"+string(task.Id))
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "2 de abril de 2024")
	assert.Contains(t, body, "Con cera")

	res, _ = h.get(t, "/ver/does-not-exist")
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
}

func TestStatisticsHandler(t *testing.T) {
	h := newHarness(t, "", nil)
	h.fake.Seed(
		models.TaskData{Nombre: "a", FechaInicio: "2024-01-01", Completado: true},
		models.TaskData{Nombre: "b", FechaInicio: "2024-01-01", Completado: true},
		models.TaskData{Nombre: "c", FechaInicio: "2024-01-02"},
	)
	res, body := h.get(t, "/estadisticas")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "2 (67%)")
	assert.Contains(t, body, "1 (33%)")
	assert.Contains(t, body, "1.5")
	assert.Equal(t, 1, h.fake.Calls("GET /ObtenerTareas"))

	res, _ = h.post(t, "/estadisticas", url.Values{})
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestTaskServiceDown(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	h := newHarness(t, down.URL, nil)

	res, body := h.get(t, "/")
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Contains(t, body, `id="error"`)

	res, body = h.post(t, "/crear", url.Values{
		"nombre": {"x"}, "descripcion": {"y"}, "fechaInicio": {"2024-01-01"}, "fechaFinal": {"2024-01-01"},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, response.TaskCreateFailed)
}

func TestRateLimiter(t *testing.T) {
	h := newHarness(t, "", rate.NewLimiter(0, 1))

	res, _ := h.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := h.get(t, "/healthz")
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	var msg response.Message
	require.NoError(t, json.NewDecoder(strings.NewReader(body)).Decode(&msg))
	assert.Equal(t, response.CapacityExhausted, msg.Body)
}

func TestRequestID(t *testing.T) {
	h := newHarness(t, "", nil)

	res, _ := h.get(t, "/healthz")
	assert.NotEmpty(t, res.Header.Get(RequestIDHeader))

	req, err := http.NewRequest(http.MethodGet, h.web.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "abc-123", res.Header.Get(RequestIDHeader))
}

func TestUnknownPath(t *testing.T) {
	h := newHarness(t, "", nil)
	res, _ := h.get(t, "/nada")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
