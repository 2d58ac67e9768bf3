package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
)

// TestLoginCommand_NoOAuthClient verifies login fails without oauth_client.json
func TestLoginCommand_NoOAuthClient(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}

	code := (&commands.LoginCmd{}).Run(context.Background(), cfg, newSession(t), nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if !bytes.Contains(errBuf.Bytes(), []byte("oauth_client.json not found")) {
		t.Errorf("expected error about missing oauth_client.json, got %q", errBuf.String())
	}
}

// TestLoginCommand_TokenWithoutRefresh verifies login proceeds when the
// stored token cannot be refreshed.
func TestLoginCommand_TokenWithoutRefresh(t *testing.T) {
	tmpDir := t.TempDir()

	oauthClient := `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(filepath.Join(tmpDir, "oauth_client.json"), []byte(oauthClient), 0600); err != nil {
		t.Fatalf("failed to write oauth_client.json: %v", err)
	}
	token := `{"access_token":"expired","token_type":"Bearer"}`
	if err := os.WriteFile(filepath.Join(tmpDir, "token.json"), []byte(token), 0600); err != nil {
		t.Fatalf("failed to write token.json: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: tmpDir}

	// Cancelled context so the command does not wait for a browser callback
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := (&commands.LoginCmd{}).Run(ctx, cfg, newSession(t), nil, nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if outBuf.String() == "already logged in\n" {
		t.Error("should not say 'already logged in' without a refresh token")
	}
}

// TestLogoutCommand_RemovesToken verifies logout deletes token.json
func TestLogoutCommand_RemovesToken(t *testing.T) {
	tmpDir := t.TempDir()
	tokenPath := filepath.Join(tmpDir, "token.json")
	if err := os.WriteFile(tokenPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("failed to write token.json: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: tmpDir}

	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, newSession(t), nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok', got %q", outBuf.String())
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("expected token.json to be removed")
	}
}
