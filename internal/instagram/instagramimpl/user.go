package instagramimpl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-archiver/internal/instagram"
)

const loginAttempts = 3

// Login attempts to connect to Instagram, first trying to load from an existing session,
// or logging in with credentials if the session isn't available.
func (ig *InstaImpl) Login(ctx context.Context) error {
	if err := ig.ReloadSession(); err == nil {
		if ig.validateSession(ctx) {
			ig.Logger.Info("Successfully logged in using existing session")
			return nil
		}
		ig.Logger.Warn("Session loaded but appears to be invalid, attempting fresh login")
	}

	ig.Logger.Info("Attempting to log in with credentials", "user", ig.Config.Instagram.User)
	ig.Client = goinsta.New(ig.Config.Instagram.User, ig.Config.Instagram.Pass)

	var loginErr error
	for attempt := 1; attempt <= loginAttempts; attempt++ {
		loginErr = ig.Client.Login()
		if loginErr == nil {
			break
		}

		ig.Logger.Error("Login attempt failed", "attempt", attempt, "error", loginErr)

		if attempt < loginAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}

	if loginErr != nil {
		ig.Client = nil
		return fmt.Errorf("failed to log in after %d attempts: %w", loginAttempts, loginErr)
	}

	ig.Logger.Info("Successfully logged in with credentials")

	if err := ig.saveSession(); err != nil {
		ig.Logger.Warn("Failed to save Instagram session", "error", err)
	}

	return nil
}

// ReloadSession attempts to load an existing Instagram session
func (ig *InstaImpl) ReloadSession() error {
	if _, err := os.Stat(ig.Config.Instagram.SessionPath); err != nil {
		return fmt.Errorf("session file not found: %w", err)
	}

	insta, err := goinsta.Import(ig.Config.Instagram.SessionPath)
	if err != nil {
		return fmt.Errorf("failed to import session: %w", err)
	}

	ig.Client = insta
	return nil
}

// validateSession checks if the current Instagram session is valid
func (ig *InstaImpl) validateSession(ctx context.Context) bool {
	if ig.Client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	done := make(chan bool, 1)

	go func() {
		valid := false
		defer func() {
			// goinsta may panic on a corrupted session
			if r := recover(); r != nil {
				ig.Logger.Error("Panic in Instagram session validation", "panic", r)
			}
			done <- valid
		}()

		valid = ig.Client.Account.Sync() == nil
	}()

	select {
	case valid := <-done:
		return valid
	case <-ctx.Done():
		ig.Logger.Warn("Session validation timed out")
		return false
	}
}

// saveSession exports the current Instagram session to a file
func (ig *InstaImpl) saveSession() error {
	if ig.Client == nil {
		return instagram.ErrNotLoggedIn
	}

	if err := os.MkdirAll(filepath.Dir(ig.Config.Instagram.SessionPath), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := ig.Client.Export(ig.Config.Instagram.SessionPath); err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	ig.Logger.Info("Instagram session saved successfully", "path", ig.Config.Instagram.SessionPath)
	return nil
}

func (ig *InstaImpl) ResolveAccountID(ctx context.Context, handle string) (int64, error) {
	if ig.Client == nil {
		return 0, instagram.ErrNotLoggedIn
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	user, err := ig.Client.Profiles.ByName(handle)
	if err != nil {
		return 0, fmt.Errorf("failed to get profile %s: %w", handle, err)
	}
	return user.ID, nil
}

func (ig *InstaImpl) visitProfile(accountID int64) (*goinsta.User, error) {
	user, err := ig.Client.Profiles.ByID(strconv.FormatInt(accountID, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %d: %w", accountID, err)
	}
	if user.IsPrivate && user.Username != ig.Config.Instagram.User {
		ig.Logger.Warn("Account is private, feed may be empty", "account_id", accountID)
	}
	return user, nil
}
