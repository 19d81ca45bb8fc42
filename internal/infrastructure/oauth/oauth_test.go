package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func TestGoogleVerifier(t *testing.T) {
	v := NewGoogleVerifier("client-id")
	v.validate = func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "client-id", audience)
		if token == "bad" {
			return nil, errors.New("signature mismatch")
		}
		return &idtoken.Payload{
			Subject: "sub-123",
			Claims:  map[string]interface{}{"email": "ann@example.com", "email_verified": true},
		}, nil
	}

	id, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "sub-123", id.ProviderUserID)
	assert.Equal(t, "ann@example.com", id.Email)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestGitHubVerifier(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"bad_verification_code"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":42,"email":""}`))
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"email":"old@example.com","primary":false,"verified":true},{"email":"me@example.com","primary":true,"verified":true}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	v := NewGitHubVerifier("id", "secret")
	v.conf.Endpoint = oauth2.Endpoint{TokenURL: srv.URL + "/login/oauth/access_token"}
	v.apiBase = srv.URL

	id, err := v.Verify(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "42", id.ProviderUserID)
	assert.Equal(t, "me@example.com", id.Email)

	_, err = v.Verify(context.Background(), "bad-code")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
