package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/palette/pkg/api"
	"tableflip.dev/palette/pkg/entry"
	"tableflip.dev/palette/pkg/remote"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerListDaysTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerAnalyzePeriodTool(srv, svc)
	registerSummaryTool(srv, svc)
	registerAnalyzeColorTool(srv)
}

func registerAddEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_entry",
		mcp.WithDescription("Record a new mood entry. At most four entries are kept per day."),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Description("Color for the mood as #RRGGBB."),
		),
		mcp.WithString("emotion",
			mcp.Required(),
			mcp.Description("Emotion felt; a named emotion or free text."),
		),
		mcp.WithNumber("intensity",
			mcp.Description("Intensity from 1 to 5; defaults to 3."),
			mcp.Min(1),
			mcp.Max(5),
		),
		mcp.WithString("episode",
			mcp.Description("What happened."),
		),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD; defaults to today."),
		),
		mcp.WithString("avoidColor",
			mcp.Description("Optional color to stay away from, as #RRGGBB."),
		),
		mcp.WithString("timeOfDay",
			mcp.Description("Optional time of day."),
			mcp.Enum(entry.TimesOfDay()...),
		),
		mcp.WithString("weather",
			mcp.Description("Optional weather."),
			mcp.Enum(entry.Weathers()...),
		),
		mcp.WithString("weatherFeeling",
			mcp.Description("Optional feeling about the weather."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date           string `json:"date"`
			Color          string `json:"color"`
			AvoidColor     string `json:"avoidColor"`
			Emotion        string `json:"emotion"`
			Intensity      int    `json:"intensity"`
			Episode        string `json:"episode"`
			TimeOfDay      string `json:"timeOfDay"`
			Weather        string `json:"weather"`
			WeatherFeeling string `json:"weatherFeeling"`
		}
		if err := request.BindArguments(&args); err != nil {
			return invalid(err)
		}

		return respond(svc.AddEntry(ctx, AddEntryOptions(args)))
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Change fields of an existing entry. Omitted fields are kept."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to update."),
		),
		mcp.WithString("color", mcp.Description("New color as #RRGGBB.")),
		mcp.WithString("avoidColor", mcp.Description("New avoid color as #RRGGBB.")),
		mcp.WithString("emotion", mcp.Description("New emotion.")),
		mcp.WithNumber("emotionIntensity", mcp.Description("New intensity from 1 to 5.")),
		mcp.WithString("episode", mcp.Description("New episode text.")),
		mcp.WithString("timeOfDay", mcp.Description("New time of day.")),
		mcp.WithString("weather", mcp.Description("New weather.")),
		mcp.WithString("weatherFeeling", mcp.Description("New weather feeling.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return failed(err)
		}
		var patch entry.Patch
		if err := request.BindArguments(&patch); err != nil {
			return invalid(err)
		}
		return respond(svc.UpdateEntry(ctx, id, patch))
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return failed(err)
		}
		if err := svc.DeleteEntry(ctx, id); err != nil {
			return failed(err)
		}
		return respond(map[string]any{"deleted": id}, nil)
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List entries, newest first, optionally between two dates."),
		mcp.WithString("startDate",
			mcp.Description("First date to include, YYYY-MM-DD."),
		),
		mcp.WithString("endDate",
			mcp.Description("Last date to include, YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := request.GetString("startDate", "")
		end := request.GetString("endDate", "")
		entries, err := svc.ListEntries(ctx, start, end)
		if err != nil {
			return failed(err)
		}
		return respond(map[string]any{
			"entries": entries,
			"count":   len(entries),
		}, nil)
	})
}

func registerListDaysTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_days",
		mcp.WithDescription("List every date with entries and its dominant color and emotion."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days, err := svc.ListDays(ctx)
		if err != nil {
			return failed(err)
		}
		return respond(map[string]any{
			"days":  days,
			"count": len(days),
		}, nil)
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entries by emotion, episode, color or weather."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive text to look for."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results, default 25."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return failed(err)
		}
		limit := request.GetInt("limit", 25)
		results, err := svc.SearchEntries(ctx, query, limit)
		if err != nil {
			return failed(err)
		}
		return respond(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		}, nil)
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return failed(err)
		}

		return respond(svc.EntryByID(ctx, id))
	})
}

func registerAnalyzePeriodTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"analyze_period",
		mcp.WithDescription("Rank colors and emotions over a period and write an insight."),
		mcp.WithString("period",
			mcp.Description("1week, 1month, 3months, a month as YYYY-MM, or a window such as 10d."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return respond(svc.Analyze(ctx, request.GetString("period", "1week")))
	})
}

func registerSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"summary",
		mcp.WithDescription("All-time totals, streak, weekly trend and most frequent emotions."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return respond(svc.Summary(ctx))
	})
}

func registerAnalyzeColorTool(srv *server.MCPServer) {
	tool := mcp.NewTool(
		"analyze_color",
		mcp.WithDescription("Describe a color's family and tone and suggest ways to work with it."),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Description("Color as #RRGGBB."),
		),
		mcp.WithString("emotion", mcp.Description("Emotion paired with the color.")),
		mcp.WithNumber("intensity", mcp.Description("Intensity from 1 to 5.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req remote.ColorRequest
		if err := request.BindArguments(&req); err != nil {
			return invalid(err)
		}
		return respond(api.AnalyzeColor(req))
	})
}

// respond turns a service result into a tool result. Service errors are
// reported to the caller as tool errors, never as protocol errors.
func respond(data any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}

func invalid(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
}

func failed(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
