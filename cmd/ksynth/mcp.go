package main

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func runMCP() {
	s := server.NewMCPServer(
		"Kawai SysEx MCP",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	identifyTool := mcp.NewTool("identify_dump",
		mcp.WithDescription("Identifies a Kawai K4/K5000 SysEx dump file: dialect, dump kind, bank and patch number."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .syx file.")),
	)
	s.AddTool(identifyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log.Println("[mcp] Handling identify request.")

		path, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		d, err := loadDump(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(d.String()), nil
	})

	describeTool := mcp.NewTool("describe_patch",
		mcp.WithDescription("Decodes a Kawai K4/K5000 SysEx dump file and returns the patch data as JSON."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .syx file.")),
	)
	s.AddTool(describeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log.Println("[mcp] Handling describe request.")

		path, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		d, err := loadDump(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := describeDump(d)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	})

	bankTool := mcp.NewTool("list_bank",
		mcp.WithDescription("Lists the patches of a Kawai K4/K5000 bank dump file: names, volumes and effect assignments."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .syx file.")),
	)
	s.AddTool(bankTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log.Println("[mcp] Handling bank listing request.")

		path, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		d, err := loadDump(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := bankListing(d)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	})

	log.Println("Starting Kawai SysEx MCP server...")

	if err := server.ServeStdio(s); err != nil {
		log.Printf("Server error: %v", err)
	}
}

func loadDump(path string) (*identified, error) {
	inner, err := readFrame(path)
	if err != nil {
		return nil, err
	}
	return identifyPayload(inner)
}
