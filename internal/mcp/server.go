// Package mcp exposes workout recommendations and a per-session training
// program to MCP clients.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered. Each
// client session builds its own program with the *_program tools; the
// program is dropped when the session ends.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s, _ := newServer(ds, version, log)
	return s
}

func newServer(ds DataSource, version string, log *slog.Logger) (*server.MCPServer, *handlers) {
	h := &handlers{ds: ds, programs: newPrograms(), log: log}

	hooks := &server.Hooks{}
	hooks.AddOnUnregisterSession(func(_ context.Context, session server.ClientSession) {
		h.programs.drop(session.SessionID())
		log.Debug("mcp session closed", "session", session.SessionID())
	})

	s := server.NewMCPServer("fitrec", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithHooks(hooks),
		server.WithInstructions("fitrec workout recommendation server. Browse the exercise catalog by type and difficulty, "+
			"get BMI-based recommendations from age, height and weight, and assemble a training program."),
	)

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListWorkoutTypes, Handler: h.listWorkoutTypes},
		server.ServerTool{Tool: toolRecommendWorkouts, Handler: h.recommendWorkouts},
		server.ServerTool{Tool: toolRecommendByMetrics, Handler: h.recommendByMetrics},
		server.ServerTool{Tool: toolAddToProgram, Handler: h.addToProgram},
		server.ServerTool{Tool: toolRemoveFromProgram, Handler: h.removeFromProgram},
		server.ServerTool{Tool: toolListProgram, Handler: h.listProgram},
		server.ServerTool{Tool: toolResetProgram, Handler: h.resetProgram},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
		server.ServerResource{Resource: resProgram, Handler: h.programResource},
	)

	return s, h
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds       DataSource
	programs *programs
	log      *slog.Logger
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"fitrec://catalog",
	"Workout Catalog",
	mcp.WithResourceDescription("Every workout grouped by type and subcategory, in catalog order"),
	mcp.WithMIMEType("application/json"),
)

var resProgram = mcp.NewResource(
	"fitrec://program",
	"Training Program",
	mcp.WithResourceDescription("Workouts currently in the training program, in the order they were added"),
	mcp.WithMIMEType("application/json"),
)
