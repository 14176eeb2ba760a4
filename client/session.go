package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"estatefind/models"
	"estatefind/utils"
)

// SessionState is the lifecycle position of the auth session.
type SessionState string

const (
	SessionSignedOut      SessionState = "signed-out"
	SessionAuthenticating SessionState = "authenticating"
	SessionSignedIn       SessionState = "signed-in"
)

// Session is an explicit session-state value. Screens observe it through
// the subscription stream instead of reading ambient mutable state.
type Session struct {
	State SessionState
	Token string
	User  models.User
}

// AuthClient drives sign-up, sign-in, sign-out and profile updates
// against the auth service and publishes session changes to subscribers.
type AuthClient struct {
	baseURL string
	httpc   *http.Client

	mu      sync.Mutex
	current Session
	subs    []chan Session
}

// NewAuthClient builds an AuthClient against baseURL. A nil httpc selects
// a default client with a request timeout.
func NewAuthClient(baseURL string, httpc *http.Client) *AuthClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &AuthClient{
		baseURL: baseURL,
		httpc:   httpc,
		current: Session{State: SessionSignedOut},
	}
}

// Current returns the session as of now.
func (ac *AuthClient) Current() Session {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return ac.current
}

// Subscribe returns a channel that immediately yields the current session
// and then every subsequent change. Slow subscribers miss intermediate
// states rather than blocking the publisher.
func (ac *AuthClient) Subscribe() <-chan Session {
	ch := make(chan Session, 8)
	ac.mu.Lock()
	ch <- ac.current
	ac.subs = append(ac.subs, ch)
	ac.mu.Unlock()
	return ch
}

func (ac *AuthClient) publish(s Session) {
	ac.mu.Lock()
	ac.current = s
	subs := make([]chan Session, len(ac.subs))
	copy(subs, ac.subs)
	ac.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// SignUp registers a new account and signs it in. Malformed input is
// rejected locally before any request is issued.
func (ac *AuthClient) SignUp(ctx context.Context, email, password, displayName string) error {
	req := models.RegisterRequest{Email: email, Password: password, DisplayName: displayName}
	if err := utils.ValidateStruct(req); err != nil {
		return &Error{Code: CodeValidation, Message: "invalid sign-up input", Err: err}
	}
	return ac.authenticate(ctx, "/auth/register", req)
}

// SignIn authenticates existing credentials.
func (ac *AuthClient) SignIn(ctx context.Context, email, password string) error {
	req := models.LoginRequest{Email: email, Password: password}
	if err := utils.ValidateStruct(req); err != nil {
		return &Error{Code: CodeValidation, Message: "invalid sign-in input", Err: err}
	}
	return ac.authenticate(ctx, "/auth/login", req)
}

func (ac *AuthClient) authenticate(ctx context.Context, path string, payload interface{}) error {
	ac.publish(Session{State: SessionAuthenticating})

	body, err := json.Marshal(payload)
	if err != nil {
		ac.publish(Session{State: SessionSignedOut})
		return &Error{Code: CodeValidation, Message: "could not encode credentials", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.baseURL+path, bytes.NewReader(body))
	if err != nil {
		ac.publish(Session{State: SessionSignedOut})
		return &Error{Code: CodeNetwork, Message: "could not build auth request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ac.httpc.Do(req)
	if err != nil {
		ac.publish(Session{State: SessionSignedOut})
		return &Error{Code: CodeNetwork, Message: "auth request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusConflict {
		ac.publish(Session{State: SessionSignedOut})
		return &Error{Code: CodeAuth, Message: "credentials rejected"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ac.publish(Session{State: SessionSignedOut})
		return statusError(resp.StatusCode, path)
	}

	var out models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		ac.publish(Session{State: SessionSignedOut})
		return &Error{Code: CodeNetwork, Message: "could not decode auth response", Err: err}
	}

	ac.publish(Session{State: SessionSignedIn, Token: out.Token, User: out.User})
	return nil
}

// SignOut clears the session. Purely local: the token is simply dropped.
func (ac *AuthClient) SignOut() {
	ac.publish(Session{State: SessionSignedOut})
}

// UpdateProfile changes the signed-in user's display name and photo and
// publishes the refreshed session.
func (ac *AuthClient) UpdateProfile(ctx context.Context, displayName, photoURL string) error {
	session := ac.Current()
	if session.State != SessionSignedIn {
		return &Error{Code: CodeAuth, Message: "not signed in"}
	}
	if displayName == "" {
		return &Error{Code: CodeValidation, Message: "display name is required"}
	}

	body, err := json.Marshal(models.UpdateProfileRequest{DisplayName: displayName, PhotoURL: photoURL})
	if err != nil {
		return &Error{Code: CodeValidation, Message: "could not encode profile update", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ac.baseURL+"/profile", bytes.NewReader(body))
	if err != nil {
		return &Error{Code: CodeNetwork, Message: "could not build profile request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.Token)

	resp, err := ac.httpc.Do(req)
	if err != nil {
		return &Error{Code: CodeNetwork, Message: "profile update failed", Err: err}
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, "/profile"); err != nil {
		return err
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return &Error{Code: CodeNetwork, Message: "could not decode profile response", Err: err}
	}

	ac.publish(Session{State: SessionSignedIn, Token: session.Token, User: user})
	return nil
}
