package service

import (
	"fmt"
	"time"

	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/client"
	"github.com/redvista/social-cli/pkg/credentials"
	"github.com/redvista/social-cli/pkg/logger"
	"github.com/redvista/social-cli/pkg/output"
	"github.com/redvista/social-cli/pkg/prompter"
)

type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login prompts for credentials and starts a session
func (s *AuthService) Login() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds != nil && creds.IsValid() {
		output.PrintWarning("Already logged in as %s", creds.Username)
		confirm, err := prompter.PromptConfirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	client.Init()

	output.PrintInfo("Authenticating...")
	loginResp, err := api.Login(email, password)
	if err != nil {
		output.PrintError("Login failed: %v", err)
		return err
	}

	client.SetAuthToken(loginResp.AccessToken)

	expiresAt := time.Now().Add(time.Duration(loginResp.ExpiresIn) * time.Second)
	creds = &credentials.Credentials{
		AccessToken: loginResp.AccessToken,
		ExpiresAt:   expiresAt,
		UserID:      loginResp.User.ID,
		Username:    loginResp.User.Username,
		Email:       loginResp.User.Email,
	}
	if err := credentials.Save(creds); err != nil {
		output.PrintError("Failed to save credentials: %v", err)
		return err
	}

	output.PrintSuccess("✓ Login successful!")
	output.PrintInfo("Logged in as %s", loginResp.User.Username)
	return nil
}

// Register creates an account and starts a session
func (s *AuthService) Register() error {
	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	username, err := prompter.PromptString("Username: ")
	if err != nil {
		return err
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	client.Init()

	output.PrintInfo("Creating account...")
	resp, err := api.Register(email, username, password)
	if err != nil {
		output.PrintError("Registration failed: %v", err)
		return err
	}

	client.SetAuthToken(resp.AccessToken)

	creds := &credentials.Credentials{
		AccessToken: resp.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		UserID:      resp.User.ID,
		Username:    resp.User.Username,
		Email:       resp.User.Email,
	}
	if err := credentials.Save(creds); err != nil {
		output.PrintError("Failed to save credentials: %v", err)
		return err
	}

	output.PrintSuccess("✓ Account created, logged in as %s", resp.User.Username)
	return nil
}

// Logout ends the session and clears stored credentials
func (s *AuthService) Logout() error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds == nil {
		output.PrintWarning("Not logged in")
		return nil
	}

	if err := credentials.Delete(); err != nil {
		output.PrintError("Failed to clear credentials: %v", err)
		return err
	}
	client.ClearAuthToken()

	output.PrintSuccess("✓ Logged out")
	return nil
}

// WhoAmI shows the current session's user
func (s *AuthService) WhoAmI() error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	user, err := api.GetCurrentUser()
	if err != nil {
		// server unreachable, fall back to the stored session
		logger.Debug("Falling back to stored credentials", "error", err)
		return output.PrintRecord("Session", map[string]interface{}{
			"Username": creds.Username,
			"User ID":  creds.UserID,
			"Email":    creds.Email,
		})
	}

	return output.PrintRecord("Session", map[string]interface{}{
		"Username": user.Username,
		"User ID":  user.ID,
		"Email":    user.Email,
		"Friends":  len(user.Friends),
	})
}
