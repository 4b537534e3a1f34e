package sendgrid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, baseURL string, retries int) Client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c, err := New(log, Config{
		APIKey:           "sg-test",
		BaseURL:          baseURL,
		DefaultFromEmail: "site@example.com",
		Timeout:          2 * time.Second,
		MaxRetries:       retries,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.(*client).backoff.Base = time.Millisecond
	c.(*client).backoff.Max = 5 * time.Millisecond
	return c
}

func TestSendPostsMailPayload(t *testing.T) {
	var got mailSendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" {
			t.Errorf("path: want=%q got=%q", "/v3/mail/send", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sg-test" {
			t.Errorf("authorization: got=%q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	res, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "owner@example.com"}},
		Subject: "New message",
		Text:    "hello",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.MessageID != "msg-1" {
		t.Fatalf("message id: want=%q got=%q", "msg-1", res.MessageID)
	}
	if got.From.Email != "site@example.com" {
		t.Fatalf("from: want=%q got=%q", "site@example.com", got.From.Email)
	}
	if len(got.Content) != 1 || got.Content[0].Type != "text/plain" {
		t.Fatalf("content: got=%+v", got.Content)
	}
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	if _, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "owner@example.com"}},
		Subject: "s",
		Text:    "t",
	}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("calls: want=%d got=%d", 3, n)
	}
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad from"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "owner@example.com"}},
		Subject: "s",
		Text:    "t",
	})
	if err == nil || err.Error() != "sendgrid http 400: bad from" {
		t.Fatalf("error: got=%v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("calls: want=%d got=%d", 1, n)
	}
}

func TestSendValidatesRequest(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1", 0)
	if _, err := c.Send(context.Background(), SendEmailRequest{Subject: "s", Text: "t"}); err == nil {
		t.Fatalf("Send without To: want error got nil")
	}
	if _, err := c.Send(context.Background(), SendEmailRequest{To: []EmailAddress{{Email: "a@b.c"}}, Text: "t"}); err == nil {
		t.Fatalf("Send without Subject: want error got nil")
	}
}
