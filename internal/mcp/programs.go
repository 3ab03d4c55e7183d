package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/fitrec/internal/selection"
)

// programs holds one training program per MCP client session. Calls made
// without a session share the program stored under "".
type programs struct {
	mu   sync.Mutex
	sets map[string]*selection.Set
}

func newPrograms() *programs {
	return &programs{sets: make(map[string]*selection.Set)}
}

// get returns the program for id, creating it on first use.
func (p *programs) get(id string) *selection.Set {
	p.mu.Lock()
	defer p.mu.Unlock()
	set, ok := p.sets[id]
	if !ok {
		set = &selection.Set{}
		p.sets[id] = set
	}
	return set
}

func (p *programs) drop(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sets, id)
}

func (p *programs) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sets)
}

// sessionID returns the ID of the client session serving ctx, or "" when
// the call is not tied to a session.
func sessionID(ctx context.Context) string {
	if s := server.ClientSessionFromContext(ctx); s != nil {
		return s.SessionID()
	}
	return ""
}

// program returns the training program of the session serving ctx.
func (h *handlers) program(ctx context.Context) *selection.Set {
	return h.programs.get(sessionID(ctx))
}
