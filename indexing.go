package newsroom

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Indexing notification types understood by the Google Indexing API.
const (
	URLUpdated = "URL_UPDATED"
	URLDeleted = "URL_DELETED"
)

const (
	indexingScope      = "https://www.googleapis.com/auth/indexing"
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	indexingPublishURL = "https://indexing.googleapis.com/v3/urlNotifications:publish"
)

// IndexingNotifier pushes URL change events to the Google Indexing API using
// a service account: an RS256-signed JWT assertion is exchanged for an access
// token, then the notification is published. All calls are best-effort; write
// paths fire them in the background and only log failures.
type IndexingNotifier struct {
	clientEmail string
	key         *rsa.PrivateKey
	httpClient  *http.Client

	tokenURL   string
	publishURL string
}

// NewIndexingNotifier parses the service-account key and returns a ready
// notifier. The key env var commonly arrives with literal \n sequences and
// surrounding quotes; both are normalized before parsing.
func NewIndexingNotifier(clientEmail, privateKey string) (*IndexingNotifier, error) {
	privateKey = strings.TrimSpace(strings.ReplaceAll(privateKey, `\n`, "\n"))
	privateKey = strings.ReplaceAll(privateKey, `"`, "")
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKey))
	if err != nil {
		return nil, fmt.Errorf("newsroom: parse indexing key: %w", err)
	}
	return &IndexingNotifier{
		clientEmail: clientEmail,
		key:         key,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		tokenURL:    googleTokenURL,
		publishURL:  indexingPublishURL,
	}, nil
}

// Notify publishes a single URL notification of the given type.
func (n *IndexingNotifier) Notify(ctx context.Context, pageURL, notifyType string) error {
	token, err := n.accessToken(ctx)
	if err != nil {
		return err
	}

	body, _ := json.Marshal(map[string]string{
		"url":  pageURL,
		"type": notifyType,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.publishURL, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("newsroom: indexing publish: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("newsroom: indexing publish: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

// accessToken performs the OAuth JWT-bearer exchange for the indexing scope.
func (n *IndexingNotifier) accessToken(ctx context.Context) (string, error) {
	now := time.Now()
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   n.clientEmail,
		"scope": indexingScope,
		"aud":   n.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}).SignedString(n.key)
	if err != nil {
		return "", fmt.Errorf("newsroom: sign indexing assertion: %w", err)
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("newsroom: indexing token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("newsroom: indexing token: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("newsroom: indexing token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("newsroom: indexing token: empty access_token")
	}
	return tok.AccessToken, nil
}
