package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pot-code/regform/internal/domain"
	infra "github.com/pot-code/regform/internal/infrastructure"
	"github.com/pot-code/regform/internal/registration"
	"github.com/pot-code/regform/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validBody = `{
	"fullName": "Ada Lovelace",
	"email": "ada@example.com",
	"password": "Engine#1!",
	"confirmPassword": "Engine#1!",
	"phone": "555-123-4567",
	"age": "36"
}`

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	option := new(infra.AppConfig)
	option.AppID = "regform-test"
	option.Env = infra.EnvProduction
	option.RequestTimeout = 5 * time.Second
	option.Security.IDLength = 21
	option.Live.PongWait = 5 * time.Second
	option.Live.WriteWait = time.Second
	option.Live.ReadLimit = 4096

	uc := usecase.NewRegistrationUseCase(registration.MustNewValidator())
	return NewServer(option, uc, zap.NewNop())
}

func doRequest(app *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

type formResponse struct {
	Valid         bool                 `json:"valid"`
	Code          int                  `json:"code"`
	TraceID       string               `json:"trace_id"`
	Fields        []*domain.Result     `json:"fields"`
	InvalidParams []*domain.FieldError `json:"invalid_params"`
	Summary       *domain.Summary      `json:"summary"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) *formResponse {
	t.Helper()
	out := new(formResponse)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	return out
}

func TestHandleValidate(t *testing.T) {
	app := newTestServer(t)

	t.Run("valid json", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/api/v1/registration/validate", echo.MIMEApplicationJSON, validBody)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res := decode(t, rec)
		assert.True(t, res.Valid)
		assert.Len(t, res.Fields, len(domain.Fields))
		require.NotNil(t, res.Summary)
		assert.Equal(t, "Ada Lovelace", res.Summary.FullName)
		assert.Equal(t, "36", res.Summary.Age)
		assert.NotContains(t, rec.Body.String(), "Engine#1!")
	})

	t.Run("one invalid field", func(t *testing.T) {
		body := strings.Replace(validBody, "ada@example.com", "ada@example", 1)
		rec := doRequest(app, http.MethodPost, "/api/v1/registration/validate", echo.MIMEApplicationJSON, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		res := decode(t, rec)
		assert.Equal(t, http.StatusBadRequest, res.Code)
		assert.NotEmpty(t, res.TraceID)
		require.Len(t, res.InvalidParams, 1)
		assert.Equal(t, "email", res.InvalidParams[0].Domain)
		assert.Equal(t, "Please enter a valid email address", res.InvalidParams[0].Reason)

		require.Len(t, res.Fields, len(domain.Fields))
		valid := 0
		for _, f := range res.Fields {
			if f.Valid {
				valid++
			}
		}
		assert.Equal(t, 5, valid)
		assert.Nil(t, res.Summary)
	})

	t.Run("form encoded", func(t *testing.T) {
		form := url.Values{}
		form.Set("fullName", "Ada Lovelace")
		form.Set("email", "ada@example.com")
		form.Set("password", "Engine#1!")
		form.Set("confirmPassword", "Engine#1!")
		rec := doRequest(app, http.MethodPost, "/api/v1/registration/validate", echo.MIMEApplicationForm, form.Encode())
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, registration.NotProvided, decode(t, rec).Summary.Phone)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/api/v1/registration/validate", echo.MIMEApplicationJSON, `{"email":`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandleValidateField(t *testing.T) {
	app := newTestServer(t)

	t.Run("confirmation uses the snapshot password", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/api/v1/registration/fields/confirmPassword", echo.MIMEApplicationJSON,
			`{"password": "Engine#1!", "confirmPassword": "Engine#2!"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		res := new(domain.Result)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), res))
		assert.Equal(t, domain.FieldConfirmPassword, res.Field)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.ReasonMismatch, res.Reason)
		assert.Equal(t, "Passwords do not match", res.Message)
	})

	t.Run("optional field", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/api/v1/registration/fields/phone", echo.MIMEApplicationJSON, `{}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"field":"phone","valid":true,"message":""}`, rec.Body.String())
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/api/v1/registration/fields/nickname", echo.MIMEApplicationJSON, `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		res := decode(t, rec)
		require.Len(t, res.InvalidParams, 1)
		assert.Equal(t, "field", res.InvalidParams[0].Domain)
	})
}

func TestServerBasics(t *testing.T) {
	app := newTestServer(t)

	rec := doRequest(app, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 21)

	rec = doRequest(app, http.MethodGet, "/api/v1/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":404`)

	rec = doRequest(app, http.MethodGet, "/debug/vars", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "profiling is development only")
}

func TestHandleLive(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/registration/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	roundTrip := func(frame string) map[string]json.RawMessage {
		t.Helper()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		out := map[string]json.RawMessage{}
		require.NoError(t, json.Unmarshal(payload, &out))
		return out
	}
	results := func(reply map[string]json.RawMessage) []*domain.Result {
		t.Helper()
		var rs []*domain.Result
		require.Contains(t, reply, "results")
		require.NoError(t, json.Unmarshal(reply["results"], &rs))
		return rs
	}

	rs := results(roundTrip(`{"event":"input","field":"password","snapshot":{"password":"weak","confirmPassword":"weak!"}}`))
	require.Len(t, rs, 2)
	assert.Equal(t, domain.ReasonTooShort, rs[0].Reason)
	assert.Equal(t, domain.ReasonMismatch, rs[1].Reason)

	rs = results(roundTrip(`{"event":"input","field":"age","snapshot":{"age":"abc"}}`))
	assert.Empty(t, rs)

	rs = results(roundTrip(`{"event":"blur","field":"age","snapshot":{"age":"abc"}}`))
	require.Len(t, rs, 1)
	assert.Equal(t, domain.ReasonNotANumber, rs[0].Reason)

	rs = results(roundTrip(`{"event":"submit","snapshot":{}}`))
	assert.Len(t, rs, len(domain.Fields))

	assert.Contains(t, roundTrip(`not json`), "error")
	assert.Contains(t, roundTrip(`{"event":"focus","field":"age"}`), "error")
	assert.Contains(t, roundTrip(`{"event":"blur","field":"nickname"}`), "error")

	// the session survives bad frames
	rs = results(roundTrip(`{"event":"blur","field":"email","snapshot":{"email":"ada@example.com"}}`))
	require.Len(t, rs, 1)
	assert.True(t, rs[0].Valid)
}
