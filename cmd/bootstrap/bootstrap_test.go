package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-records-api/config"
	"clinic-records-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type client struct {
	t       *testing.T
	handler http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()
	db := testutil.NewDB(t)
	redisClient, _ := testutil.NewRedis(t)

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", CORSOrigin: "*"},
		JWT: config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour},
	}
	return &client{t: t, handler: NewHandler(cfg, db, redisClient, testutil.NewLogger())}
}

func (c *client) do(method, path, token string, body interface{}) (int, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (c *client) login(username string) tokens {
	c.t.Helper()
	status, env := c.do(http.MethodPost, "/login/", "", map[string]string{"username": username, "password": "secret123"})
	require.Equal(c.t, http.StatusOK, status)
	return decode[tokens](c.t, env.Data)
}

func TestClinicFlow(t *testing.T) {
	c := newClient(t)

	status, env := c.do(http.MethodPost, "/departments/", "", map[string]string{"name": "Cardiology", "location": "Block A"})
	require.Equal(t, http.StatusCreated, status)
	department := decode[struct {
		ID int `json:"id"`
	}](t, env.Data)

	status, _ = c.do(http.MethodPost, "/register/", "", map[string]interface{}{
		"username": "dr_house", "password": "secret123", "email": "house@clinic.test",
		"group": "Doctors", "department": department.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	doctorTokens := c.login("dr_house")

	status, env = c.do(http.MethodGet, "/me/", doctorTokens.Access, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[struct {
		DoctorID int `json:"doctor_id"`
	}](t, env.Data)

	status, env = c.do(http.MethodPost, "/register/", "", map[string]interface{}{
		"username": "alice", "password": "secret123", "group": "Patients",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(env.Error), "Doctor")

	status, _ = c.do(http.MethodPost, "/register/", "", map[string]interface{}{
		"username": "alice", "password": "secret123", "group": "Patients", "doctor": me.DoctorID,
	})
	require.Equal(t, http.StatusCreated, status)
	patientTokens := c.login("alice")

	status, env = c.do(http.MethodGet, "/patient_records/", doctorTokens.Access, nil)
	require.Equal(t, http.StatusOK, status)
	records := decode[[]struct {
		RecordID    int64  `json:"record_id"`
		Diagnostics string `json:"diagnostics"`
		Department  int    `json:"department"`
	}](t, env.Data)
	require.Len(t, records, 1)
	assert.Equal(t, "Initial diagnosis", records[0].Diagnostics)
	assert.Equal(t, department.ID, records[0].Department)

	recordPath := fmt.Sprintf("/patient_records/%d/", records[0].RecordID)
	status, env = c.do(http.MethodPut, recordPath, patientTokens.Access, map[string]string{"observations": "Feeling better"})
	require.Equal(t, http.StatusOK, status)
	updated := decode[struct {
		Diagnostics  string `json:"diagnostics"`
		Observations string `json:"observations"`
	}](t, env.Data)
	assert.Equal(t, "Initial diagnosis", updated.Diagnostics)
	assert.Equal(t, "Feeling better", updated.Observations)

	status, _ = c.do(http.MethodGet, "/doctors/", patientTokens.Access, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do(http.MethodGet, fmt.Sprintf("/department/%d/patients/", department.ID), patientTokens.Access, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = c.do(http.MethodGet, fmt.Sprintf("/department/%d/patients/", department.ID), doctorTokens.Access, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)

	status, env = c.do(http.MethodPut, fmt.Sprintf("/department/%d/doctors/", department.ID), doctorTokens.Access,
		[]map[string]interface{}{{"id": me.DoctorID, "email": "house@ppth.test"}})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1 doctors updated successfully", env.Message)

	status, _ = c.do(http.MethodGet, fmt.Sprintf("/doctors/%d/", me.DoctorID), patientTokens.Access, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLogoutRevokesSession(t *testing.T) {
	c := newClient(t)

	status, _ := c.do(http.MethodPost, "/departments/", "", map[string]string{"name": "Cardiology"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = c.do(http.MethodPost, "/register/", "", map[string]interface{}{
		"username": "dr_house", "password": "secret123", "group": "Doctors", "department": 1,
	})
	require.Equal(t, http.StatusCreated, status)

	first := c.login("dr_house")
	second := c.login("dr_house")

	status, _ = c.do(http.MethodPost, "/logout/", first.Access, map[string]string{"refresh": first.Refresh})
	require.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodGet, "/me/", first.Access, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = c.do(http.MethodPost, "/logout/", second.Access, map[string]string{"refresh": first.Refresh})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = c.do(http.MethodGet, "/me/", second.Access, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c := newClient(t)

	for _, path := range []string{"/me/", "/doctors/", "/patients/", "/patient_records/", "/department/1/doctors/", "/audit_logs/"} {
		status, _ := c.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	status, _ := c.do(http.MethodGet, "/departments/", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodGet, "/unknown/", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		status, env := c.do(method, "/departments/", "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, status, method)
		assert.False(t, env.Success)
		assert.Equal(t, "Method not allowed", env.Message)
	}
}

func TestBulkUpdateStopsAtFirstFailure(t *testing.T) {
	c := newClient(t)

	status, _ := c.do(http.MethodPost, "/departments/", "", map[string]string{"name": "Cardiology"})
	require.Equal(t, http.StatusCreated, status)
	for _, username := range []string{"dr_house", "dr_wilson"} {
		status, _ = c.do(http.MethodPost, "/register/", "", map[string]interface{}{
			"username": username, "password": "secret123", "group": "Doctors", "department": 1,
		})
		require.Equal(t, http.StatusCreated, status)
	}
	house := c.login("dr_house")

	status, env := c.do(http.MethodGet, "/department/1/doctors/", house.Access, nil)
	require.Equal(t, http.StatusOK, status)
	doctors := decode[[]struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}](t, env.Data)
	require.Len(t, doctors, 2)

	status, env = c.do(http.MethodPut, "/department/1/doctors/", house.Access, []map[string]interface{}{
		{"id": doctors[0].ID, "email": "first@clinic.test"},
		{"id": doctors[1].ID, "email": "not-an-email"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Error), "Email")

	status, env = c.do(http.MethodGet, "/department/1/doctors/", house.Access, nil)
	require.Equal(t, http.StatusOK, status)
	emails := map[int]string{}
	for _, d := range decode[[]struct {
		ID    int    `json:"id"`
		Email string `json:"email"`
	}](t, env.Data) {
		emails[d.ID] = d.Email
	}
	assert.Equal(t, "first@clinic.test", emails[doctors[0].ID])
	assert.NotEqual(t, "not-an-email", emails[doctors[1].ID])

	status, _ = c.do(http.MethodGet, "/department/99/doctors/", house.Access, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
