package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const mimeJSON = "application/json"

// loader produces a resource payload; vars holds template variables.
type loader func(ctx context.Context, vars func(string) string) (any, error)

func registerResources(srv *server.MCPServer, svc *Service) {
	addResource(srv, "palette://entries", "Entries", "Every mood entry, newest first.",
		func(ctx context.Context, _ func(string) string) (any, error) {
			entries, err := svc.ListEntries(ctx, "", "")
			if err != nil {
				return nil, err
			}
			return map[string]any{"entries": entries, "count": len(entries)}, nil
		})

	addResource(srv, "palette://days", "Days", "Dates with entries and their dominant color and emotion.",
		func(ctx context.Context, _ func(string) string) (any, error) {
			days, err := svc.ListDays(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"days": days, "count": len(days)}, nil
		})

	addTemplate(srv, "palette://entries/{id}", "Entry Details", "Detailed information about a single entry.",
		func(ctx context.Context, vars func(string) string) (any, error) {
			id := vars("id")
			if id == "" {
				return nil, errors.New("entry id is required")
			}
			dto, err := svc.EntryByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return map[string]any{"entry": dto}, nil
		})

	addTemplate(srv, "palette://analysis/{period}", "Period Analysis",
		"Ranked colors and emotions with an insight for a period such as 1week or 2025-01.",
		func(ctx context.Context, vars func(string) string) (any, error) {
			return svc.Analyze(ctx, vars("period"))
		})
}

func addResource(srv *server.MCPServer, uri, name, desc string, load loader) {
	resource := mcp.NewResource(uri, name,
		mcp.WithResourceDescription(desc),
		mcp.WithMIMEType(mimeJSON),
	)
	srv.AddResource(resource, read(load))
}

func addTemplate(srv *server.MCPServer, uri, name, desc string, load loader) {
	template := mcp.NewResourceTemplate(uri, name,
		mcp.WithTemplateDescription(desc),
		mcp.WithTemplateMIMEType(mimeJSON),
	)
	srv.AddResourceTemplate(template, read(load))
}

func read(load loader) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := load(ctx, func(name string) string { return argument(request, name) })
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: mimeJSON,
				Text:     string(data),
			},
		}, nil
	}
}

// argument reads a template variable, which the server may deliver as a
// string or a single-element list.
func argument(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
