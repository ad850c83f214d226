package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// CredentialSource yields the login credentials for the remote trading
// calendar. Stored credentials live behind the settings service; tests
// inject a static pair.
type CredentialSource interface {
	CalendarCredentials() (user, password string, err error)
}

// Remote is a trading-day Source backed by an authenticated trade-date
// service. The service requires a login session; Remote logs in at most
// once per day and reuses the session token for subsequent lookups.
type Remote struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialSource

	mu        sync.Mutex
	token     string
	loginDate string // YYYY-MM-DD of the last successful login
}

// NewRemote creates a Remote against baseURL using the given credential
// source.
func NewRemote(baseURL string, credentials CredentialSource) *Remote {
	return &Remote{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		credentials: credentials,
	}
}

type loginResponse struct {
	Token string  `json:"token"`
	Error *string `json:"error"`
}

type tradingDayResponse struct {
	Days []struct {
		Date    string `json:"date"`
		Trading bool   `json:"trading"`
	} `json:"days"`
	Error *string `json:"error"`
}

// TradingDay asks the remote service whether date is a trading day. Any
// transport, authentication or decoding failure surfaces as an error so
// the Fallback wrapper can degrade to the weekday rule.
func (r *Remote) TradingDay(date time.Time) (bool, error) {
	token, err := r.session(date)
	if err != nil {
		return false, err
	}

	day := date.Format("2006-01-02")
	url := fmt.Sprintf("%s/v1/trading-days?start=%s&end=%s", r.baseURL, day, day)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	var result tradingDayResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return false, err
	}
	if result.Error != nil {
		return false, fmt.Errorf("trade-date service error: %s", *result.Error)
	}
	if len(result.Days) == 0 {
		return false, fmt.Errorf("trade-date service returned no data for %s", day)
	}

	return result.Days[0].Trading, nil
}

// session returns a valid session token, logging in when none exists or
// the cached login predates today.
func (r *Remote) session(now time.Time) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	today := now.Format("2006-01-02")
	if r.token != "" && r.loginDate == today {
		return r.token, nil
	}

	user, password, err := r.credentials.CalendarCredentials()
	if err != nil {
		return "", fmt.Errorf("calendar credentials: %w", err)
	}

	body, err := json.Marshal(map[string]string{"user": user, "password": password})
	if err != nil {
		return "", err
	}

	resp, err := r.httpClient.Post(r.baseURL+"/v1/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var login loginResponse
	if err := json.Unmarshal(data, &login); err != nil {
		return "", err
	}
	if login.Error != nil {
		return "", fmt.Errorf("trade-date login failed: %s", *login.Error)
	}
	if login.Token == "" {
		return "", fmt.Errorf("trade-date login returned empty token")
	}

	r.token = login.Token
	r.loginDate = today
	return r.token, nil
}
