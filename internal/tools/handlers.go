package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
	"github.com/prettymuchbryce/tidydownloads/internal/report"
)

// ErrMissingArgument is returned when a required tool argument is absent.
var ErrMissingArgument = errors.New("falta el argumento requerido")

// Args are the decoded arguments of one call. Fields an operation does not use are ignored.
type Args struct {
	ShowDetails bool
	DryRun      bool
	Categories  []string
	BaseFolder  string
	Filename    string
}

// DefaultArgs returns the arguments used when a caller passes none.
func DefaultArgs() Args {
	return Args{DryRun: true}
}

// ParseArgs decodes raw tool arguments for op.
func ParseArgs(op Operation, raw map[string]any) (Args, error) {
	args := DefaultArgs()
	switch op {
	case Analyze:
		args.ShowDetails = cast.ToBool(raw["show_details"])
	case Organize:
		if v, ok := raw["dry_run"]; ok {
			args.DryRun = cast.ToBool(v)
		}
		args.Categories = cast.ToStringSlice(raw["categories"])
	case CreateStructure:
		args.BaseFolder = cast.ToString(raw["base_folder"])
	case FileInfo:
		v, ok := raw["filename"]
		if !ok || v == nil {
			return args, fmt.Errorf("%w: filename", ErrMissingArgument)
		}
		args.Filename = cast.ToString(v)
	case Cleanup:
		if v, ok := raw["dry_run"]; ok {
			args.DryRun = cast.ToBool(v)
		}
	}
	return args, nil
}

// Runner executes operations against one organizer and renders their reports.
type Runner struct {
	org *organizer.Organizer
}

// NewRunner creates a Runner for org.
func NewRunner(org *organizer.Organizer) *Runner {
	return &Runner{org: org}
}

// Run executes op and returns its text report.
// On failure the returned text is the error report and err is the cause.
func (r *Runner) Run(ctx context.Context, op Operation, args Args) (string, error) {
	switch op {
	case Analyze:
		scan, err := r.org.Scan(ctx, args.ShowDetails)
		if err != nil {
			return report.AnalysisError(r.org.SourceDir(), err), err
		}
		return report.Analysis(scan), nil

	case Organize:
		result, err := r.org.Organize(ctx, organizer.OrganizeOptions{
			DryRun:     args.DryRun,
			Categories: args.Categories,
		})
		if err != nil {
			if result != nil {
				return report.OrganizeInterrupted(result, err), err
			}
			return report.OrganizeError(r.org.SourceDir(), err), err
		}
		return report.Organize(result), nil

	case CreateStructure:
		result, err := r.org.CreateStructure(ctx, args.BaseFolder)
		if err != nil {
			return report.StructureError(err), err
		}
		return report.Structure(result), nil

	case FileInfo:
		details, err := r.org.FileInfo(ctx, args.Filename)
		if err != nil {
			return report.FileInfoError(args.Filename, err), err
		}
		return report.FileInfo(details), nil

	case Cleanup:
		result, err := r.org.PruneEmpty(ctx, args.DryRun)
		if err != nil {
			return report.CleanupError(r.org.OrganizedRoot(), err), err
		}
		return report.Cleanup(result), nil

	default:
		err := fmt.Errorf("herramienta desconocida: %s", op)
		return "[ERROR] " + err.Error(), err
	}
}

// Handle serves one MCP call for op. Failures become error results, never protocol faults.
func (r *Runner) Handle(ctx context.Context, op Operation, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArgs(op, request.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError("[ERROR] " + err.Error()), nil
	}

	text, err := r.Run(ctx, op, args)
	if err != nil {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

// Dispatch serves an MCP call by its tool name.
func (r *Runner) Dispatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op, err := ParseOperation(request.Params.Name)
	if err != nil {
		return mcp.NewToolResultError("[ERROR] " + err.Error()), nil
	}
	return r.Handle(ctx, op, request)
}
