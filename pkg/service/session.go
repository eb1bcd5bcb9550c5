package service

import (
	"github.com/redvista/social-cli/pkg/client"
	"github.com/redvista/social-cli/pkg/credentials"
	apperrors "github.com/redvista/social-cli/pkg/errors"
)

// ensureSession loads saved credentials, wires the HTTP client with the
// bearer token, and returns the session. Every authenticated service
// call starts here.
func ensureSession() (*credentials.Credentials, error) {
	creds, err := credentials.Load()
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, apperrors.AuthError("not logged in")
	}
	if creds.IsExpired() {
		return nil, apperrors.SessionExpiredError()
	}

	client.Init()
	client.SetAuthToken(creds.AccessToken)
	return creds, nil
}
