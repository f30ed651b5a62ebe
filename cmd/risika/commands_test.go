package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	cli "github.com/jawher/mow.cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"thde.io/risika"
)

const relationsJSON = `{"relations": [
	{"name": "A", "personal_id": 1, "functions": [{"function": "CHIEF EXECUTIVE OFFICER", "valid_to": null}]},
	{"name": "B", "personal_id": 2, "functions": [
		{"function": "MANAGEMENT", "valid_to": null},
		{"function": "BENEFICIAL OWNER", "valid_to": null, "shares": 30.0}
	]},
	{"name": "C", "personal_id": 3, "functions": [
		{"function": "LEGAL OWNER", "valid_to": null, "shares": 24.9},
		{"function": "BENEFICIAL OWNER", "valid_to": null, "shares": 24.9},
		{"function": "FOUNDER", "valid_from": "2010-05-01", "valid_to": null}
	]},
	{"name": "D", "personal_id": 4, "functions": [{"function": "MANAGEMENT", "valid_to": "2019-01-01"}]}
]}`

func newTestClient(t *testing.T) *risika.Client {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1.2/access/refresh_token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(risika.RefreshTokenResponse{Token: token})
	})
	mux.HandleFunc("GET /v1.2/dk/company/relations/1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, token, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(relationsJSON))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	return risika.New("refresh-token", "v1.2", "en-UK",
		risika.WithHTTPClient(srv.Client()),
		risika.WithBaseURL(base),
	)
}

func TestRegisterCommands(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"legal owners", []string{"owners", "1"}, `["C"]`},
		{"real owners", []string{"owners", "--real", "1"}, `["B", "C"]`},
		{"real owners over 25", []string{"owners", "--real", "--over25", "1"}, `["B"]`},
		{"directors", []string{"directors", "1"}, `["A", "B"]`},
		{"founders", []string{"founders", "1"}, `["C"]`},
		{"ceo", []string{"ceo", "1"}, `"A"`},
		{"ceo or director", []string{"ceo", "--or-director", "1"}, `"A"`},
		{"ceo ids", []string{"ceo", "--ids", "1"}, `["1"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := &runner{
				client: client,
				locale: risika.LocaleDK,
				logger: zap.NewNop(),
				out:    &out,
			}

			app := cli.App("risika", "")
			registerCommands(app, r)

			require.NoError(t, app.Run(append([]string{"risika"}, tt.args...)))
			assert.JSONEq(t, tt.want, out.String())
		})
	}
}
