package newsroom

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testNotifier(t *testing.T) (*IndexingNotifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return &IndexingNotifier{
		clientEmail: "indexer@project.iam.gserviceaccount.com",
		key:         key,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}, key
}

func TestNewIndexingNotifierNormalizesKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	block := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	// Env vars commonly carry the PEM with literal \n and wrapping quotes.
	mangled := `"` + strings.ReplaceAll(string(block), "\n", `\n`) + `"`
	n, err := NewIndexingNotifier("indexer@project.iam.gserviceaccount.com", mangled)
	if err != nil {
		t.Fatalf("NewIndexingNotifier failed on mangled key: %v", err)
	}
	if !n.key.Equal(key) {
		t.Error("parsed key does not match the generated one")
	}

	if _, err := NewIndexingNotifier("x@y", "not a pem"); err == nil {
		t.Error("expected error for invalid key material")
	}
}

func TestNotifyPublishesURLNotification(t *testing.T) {
	n, key := testNotifier(t)

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostFormValue("grant_type"); got != "urn:ietf:params:oauth:grant-type:jwt-bearer" {
			t.Errorf("grant_type = %q", got)
		}

		assertion := r.PostFormValue("assertion")
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(assertion, claims, func(*jwt.Token) (interface{}, error) {
			return &key.PublicKey, nil
		}, jwt.WithValidMethods([]string{"RS256"}))
		if err != nil {
			t.Errorf("assertion did not verify: %v", err)
		}
		if claims["iss"] != "indexer@project.iam.gserviceaccount.com" {
			t.Errorf("iss = %v", claims["iss"])
		}
		if claims["scope"] != "https://www.googleapis.com/auth/indexing" {
			t.Errorf("scope = %v", claims["scope"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"access_token": "test-token"})
	}))
	defer tokenSrv.Close()

	var published struct {
		URL  string `json:"url"`
		Type string `json:"type"`
	}
	publishSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&published); err != nil {
			t.Errorf("decode publish body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer publishSrv.Close()

	n.tokenURL = tokenSrv.URL
	n.publishURL = publishSrv.URL

	err := n.Notify(context.Background(), "https://news.example.com/read/fresh", URLUpdated)
	if err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if published.URL != "https://news.example.com/read/fresh" {
		t.Errorf("published url = %q", published.URL)
	}
	if published.Type != URLUpdated {
		t.Errorf("published type = %q, want %q", published.Type, URLUpdated)
	}
}

func TestNotifyTokenFailure(t *testing.T) {
	n, _ := testNotifier(t)
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer tokenSrv.Close()

	n.tokenURL = tokenSrv.URL
	n.publishURL = "http://127.0.0.1:0/never-reached"

	err := n.Notify(context.Background(), "https://news.example.com/read/x", URLDeleted)
	if err == nil {
		t.Fatal("expected error when token exchange fails")
	}
	if !strings.Contains(err.Error(), "indexing token") {
		t.Errorf("err = %v, want token exchange failure", err)
	}
}

func TestNotifyPublishFailure(t *testing.T) {
	n, _ := testNotifier(t)
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	}))
	defer tokenSrv.Close()
	publishSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403}}`, http.StatusForbidden)
	}))
	defer publishSrv.Close()

	n.tokenURL = tokenSrv.URL
	n.publishURL = publishSrv.URL

	err := n.Notify(context.Background(), "https://news.example.com/read/x", URLUpdated)
	if err == nil {
		t.Fatal("expected error when publish is rejected")
	}
	if !strings.Contains(err.Error(), "indexing publish") {
		t.Errorf("err = %v, want publish failure", err)
	}
}
