package contact

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecaptchaVerifier(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "hostname": "lawgate.in"}`)
	}))
	defer srv.Close()

	v := NewRecaptchaVerifier("s3cret", time.Second).WithEndpoint(srv.URL)
	ok, err := v.Verify(context.Background(), "tok", "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s3cret", form.Get("secret"))
	assert.Equal(t, "tok", form.Get("response"))
	assert.Equal(t, "203.0.113.7", form.Get("remoteip"))
}

func TestRecaptchaVerifierRejectsAndErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("response") == "broken" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": false, "error-codes": ["invalid-input-response"]}`)
	}))
	defer srv.Close()

	v := NewRecaptchaVerifier("s3cret", time.Second).WithEndpoint(srv.URL)

	ok, err := v.Verify(context.Background(), "bad", "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = v.Verify(context.Background(), "broken", "")
	assert.Error(t, err)
}

func TestSendGridMailer(t *testing.T) {
	var (
		auth    string
		payload sgMailPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendGridMailer("key", "noreply@lawgate.in", "Lawgate").WithEndpoint(srv.URL)
	err := m.Send(context.Background(), Message{
		To:      []string{"a@lawgate.in", "b@lawgate.in"},
		ReplyTo: "jane@example.com",
		Subject: "New Contact: Hi",
		HTML:    "<p>Hi</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer key", auth)
	require.Len(t, payload.Personalizations, 1)
	assert.Len(t, payload.Personalizations[0].To, 2)
	assert.Equal(t, "noreply@lawgate.in", payload.From.Email)
	require.NotNil(t, payload.ReplyTo)
	assert.Equal(t, "jane@example.com", payload.ReplyTo.Email)
	assert.Equal(t, "text/html", payload.Content[0].Type)
}

func TestSendGridMailerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"errors":[{"message":"The provided authorization grant is invalid"}]}`)
	}))
	defer srv.Close()

	m := NewSendGridMailer("bad", "noreply@lawgate.in", "").WithEndpoint(srv.URL)
	err := m.Send(context.Background(), Message{To: []string{"a@lawgate.in"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization grant is invalid")
}
