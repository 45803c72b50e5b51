// Package auth is a thin credential gate in front of the app: an email plus
// a short numeric PIN, remembered across restarts under its own snapshot key.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"tableside/internal/common/logger"
	"tableside/internal/storage"
)

type State struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

type Gate struct {
	mu    sync.Mutex
	state State
	gw    storage.Gateway
	lg    *logger.Logger
}

func New(gw storage.Gateway, lg *logger.Logger) *Gate {
	return &Gate{gw: gw, lg: lg}
}

// Hydrate restores a previous session, if one was persisted.
func (g *Gate) Hydrate(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	blob, err := g.gw.Load(ctx, storage.KeyAuth)
	if err != nil {
		return fmt.Errorf("load auth snapshot: %w", err)
	}
	if blob == nil {
		return nil
	}
	var st State
	if err := json.Unmarshal(blob, &st); err != nil {
		return fmt.Errorf("decode auth snapshot: %w", err)
	}
	g.state = st
	return nil
}

// Login validates the credentials and persists the session. The PIN must be
// 4 to 6 digits; the email just has to look like one.
func (g *Gate) Login(ctx context.Context, email, pin string) bool {
	if !validEmail(email) || !validPIN(pin) {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = State{Email: email, Password: pin, IsAuthenticated: true}

	blob, err := json.Marshal(g.state)
	if err != nil {
		g.lg.Error("encode_auth_failed", err, nil)
		return true
	}
	if err := g.gw.Save(ctx, storage.KeyAuth, blob); err != nil {
		g.lg.Error("persist_auth_failed", err, nil)
	}
	return true
}

// Logout clears the session and drops the persisted key.
func (g *Gate) Logout(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = State{}
	if err := g.gw.Remove(ctx, storage.KeyAuth); err != nil {
		g.lg.Error("remove_auth_failed", err, nil)
	}
}

func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.IsAuthenticated
}

func (g *Gate) Email() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Email
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 {
		return false
	}
	rest := email[at+1:]
	dot := strings.LastIndex(rest, ".")
	return dot > 0 && dot < len(rest)-1
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
