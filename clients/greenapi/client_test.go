package greenapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessageSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"idMessage":"BAE5F4C7D8"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, raw, err := client.SendMessage(context.Background(), "1101", "tok", "5511999999999@c.us", "oi")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if gotPath != "/waInstance1101/sendMessage/tok" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody["chatId"] != "5511999999999@c.us" || gotBody["message"] != "oi" {
		t.Fatalf("unexpected payload %v", gotBody)
	}
	if resp.IDMessage != "BAE5F4C7D8" {
		t.Fatalf("expected parsed message id, got %q", resp.IDMessage)
	}
	if string(raw) != `{"idMessage":"BAE5F4C7D8"}` {
		t.Fatalf("expected raw body preserved, got %s", raw)
	}
}

func TestSendMessageNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		if _, err := w.Write([]byte("invalid token")); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, _, err := client.SendMessage(context.Background(), "1101", "bad", "5511999999999@c.us", "oi")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Body != "invalid token" {
		t.Fatalf("expected status and body carried, got %+v", apiErr)
	}
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	client := NewClient("")
	if client.baseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", client.baseURL)
	}
}
