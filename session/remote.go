package session

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// RemoteProvider asks an external auth service who the caller is by
// forwarding the caller's Cookie and Authorization headers to its session
// endpoint.
type RemoteProvider struct {
	client *resty.Client
	path   string
}

var _ Provider = (*RemoteProvider)(nil)

type remoteSession struct {
	Session *struct {
		UserID string `json:"userId"`
	} `json:"session"`
	User *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

func NewRemoteProvider(baseURL, path string, timeout time.Duration) *RemoteProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &RemoteProvider{client: client, path: path}
}

func (p *RemoteProvider) ResolveSession(ctx context.Context, creds Credentials) (*Identity, error) {
	if creds.Authorization == "" && creds.Cookie == "" {
		return nil, nil
	}

	var body remoteSession
	req := p.client.R().SetContext(ctx).SetResult(&body)
	if creds.Authorization != "" {
		req.SetHeader("Authorization", creds.Authorization)
	}
	if creds.Cookie != "" {
		req.SetHeader("Cookie", creds.Cookie)
	}

	resp, err := req.Get(p.path)
	if err != nil {
		return nil, errors.Wrap(err, "fetch session")
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return nil, nil
	default:
		return nil, errors.Errorf("auth service returned %d", resp.StatusCode())
	}

	identity := &Identity{}
	if body.Session != nil {
		identity.UserID = body.Session.UserID
	}
	if body.User != nil {
		if identity.UserID == "" {
			identity.UserID = body.User.ID
		}
		identity.Email = body.User.Email
		identity.Name = body.User.Name
	}
	if identity.UserID == "" {
		return nil, nil
	}
	return identity, nil
}
