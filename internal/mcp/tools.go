package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/fitrec/internal/advisor"
	"github.com/meltforce/fitrec/internal/apperr"
	"github.com/meltforce/fitrec/internal/catalog"
)

// --- Tool definitions ---

var toolListWorkoutTypes = mcp.NewTool("list_workout_types",
	mcp.WithDescription("List workout types (e.g. strength, endurance) with their subcategories and number of workouts."),
)

var toolRecommendWorkouts = mcp.NewTool("recommend_workouts",
	mcp.WithDescription("Recommend workouts of a type, optionally filtered by difficulty. Results keep catalog order."),
	mcp.WithString("workout_type", mcp.Required(), mcp.Description("Workout type from list_workout_types, or 'all' for every type")),
	mcp.WithString("difficulty", mcp.Description("Difficulty level. Omit or use 'all' for no filter."), mcp.Enum("all", "beginner", "intermediate", "advanced")),
)

var toolRecommendByMetrics = mcp.NewTool("recommend_by_metrics",
	mcp.WithDescription("Compute BMI, BMI category and age category from body metrics and recommend up to three strength and three endurance workouts."),
	mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years")),
	mcp.WithNumber("height", mcp.Required(), mcp.Description("Height in centimetres")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kilograms")),
)

var toolAddToProgram = mcp.NewTool("add_to_program",
	mcp.WithDescription("Add a catalog workout to the training program. Adding a workout that is already in the program does nothing."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exact workout name, e.g. 'Push-up'")),
)

var toolRemoveFromProgram = mcp.NewTool("remove_from_program",
	mcp.WithDescription("Remove a workout from the training program by position or by name."),
	mcp.WithNumber("index", mcp.Description("Zero-based position as returned by list_program")),
	mcp.WithString("name", mcp.Description("Workout name. Used when index is not given.")),
)

var toolListProgram = mcp.NewTool("list_program",
	mcp.WithDescription("List the workouts in the training program in the order they were added."),
)

var toolResetProgram = mcp.NewTool("reset_program",
	mcp.WithDescription("Remove every workout from the training program."),
)

// --- Tool handlers ---

func (h *handlers) listWorkoutTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types, err := h.ds.ListTypes(ctx)
	if err != nil {
		h.log.Error("mcp list_workout_types", "error", err)
		return mcp.NewToolResultError("query failed: " + apperr.Message(err, err.Error())), nil
	}

	result, err := mcp.NewToolResultJSON(types)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) recommendWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutType, err := req.RequireString("workout_type")
	if err != nil {
		return mcp.NewToolResultError("workout_type parameter is required"), nil
	}

	records, err := h.ds.Recommend(ctx, workoutType, req.GetString("difficulty", ""))
	if err != nil {
		if apperr.Status(err) >= 500 {
			h.log.Error("mcp recommend_workouts", "error", err)
		}
		return mcp.NewToolResultError(apperr.Message(err, "recommendation failed")), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"recommendations": records})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) recommendByMetrics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m := advisor.Metrics{
		Age:    req.GetFloat("age", 0),
		Height: req.GetFloat("height", 0),
		Weight: req.GetFloat("weight", 0),
	}

	res, err := h.ds.Advise(ctx, m)
	if err != nil {
		if apperr.Status(err) >= 500 {
			h.log.Error("mcp recommend_by_metrics", "error", err)
		}
		return mcp.NewToolResultError(apperr.Message(err, "recommendation failed")), nil
	}

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) addToProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	cat, err := h.ds.LoadCatalog(ctx)
	if err != nil {
		h.log.Error("mcp add_to_program", "error", err)
		return mcp.NewToolResultError("loading catalog failed"), nil
	}
	w, ok := cat.Lookup(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no workout named %q", name)), nil
	}

	prog := h.program(ctx)
	if !prog.Add(w) {
		return mcp.NewToolResultText(fmt.Sprintf("%s is already in the program (%d workouts).", w.Name, prog.Len())), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added %s to the program (%d workouts).", w.Name, prog.Len())), nil
}

func (h *handlers) removeFromProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prog := h.program(ctx)
	args := req.GetArguments()
	if _, ok := args["index"]; ok {
		w, err := prog.Remove(req.GetInt("index", -1))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Removed %s from the program.", w.Name)), nil
	}

	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("index or name parameter is required"), nil
	}
	if !prog.RemoveByName(name) {
		return mcp.NewToolResultError(fmt.Sprintf("%s is not in the program", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed %s from the program.", name)), nil
}

func (h *handlers) listProgram(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(map[string][]catalog.WorkoutRecord{"program": h.program(ctx).Items()})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) resetProgram(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prog := h.program(ctx)
	n := prog.Len()
	prog.Reset()
	return mcp.NewToolResultText(fmt.Sprintf("Cleared %d workouts from the program.", n)), nil
}
