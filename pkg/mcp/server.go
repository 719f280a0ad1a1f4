package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"smell-bot/internal/model"
	"smell-bot/internal/report"
	"smell-bot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

type SmellServer struct {
	server  *mcp.Server
	scanner *service.Scanner
	logger  *zap.Logger
	handler *mcp.StreamableHTTPHandler
}

type DetectCodeSmellsParams struct {
	Source   string `json:"source" jsonschema:"the source code to analyze"`
	Language string `json:"language,omitempty" jsonschema:"java, go, python, javascript or typescript; inferred from file_path when empty"`
	FilePath string `json:"file_path,omitempty" jsonschema:"path of the source file, used for reporting and language detection"`
}

type ScanDirectoryParams struct {
	Path string `json:"path" jsonschema:"the directory to scan recursively"`
}

func NewSmellServer(scanner *service.Scanner, logger *zap.Logger) *SmellServer {
	server := &SmellServer{
		scanner: scanner,
		logger:  logger,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "SmellBot",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "detectCodeSmells",
		Description: "Detect long methods and long parameter lists in a source file. Returns every smelly method with its location, smells and measured size",
	}, server.handleDetectCodeSmells)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "scanDirectory",
		Description: "Scan a directory of Java, Go, Python, JavaScript and TypeScript sources for long methods and long parameter lists",
	}, server.handleScanDirectory)

	server.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	server.server = mcpServer
	return server
}

func (s *SmellServer) handleDetectCodeSmells(ctx context.Context, req *mcp.CallToolRequest, args DetectCodeSmellsParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling detectCodeSmells request", zap.String("language", args.Language), zap.String("file_path", args.FilePath))

	if strings.TrimSpace(args.Source) == "" {
		return textResult("No source provided"), nil, nil
	}

	path := args.FilePath
	if path == "" {
		path = "snippet"
	}

	result, err := s.scanner.ScanSource(ctx, path, args.Language, []byte(args.Source))
	if err != nil {
		s.logger.Error("Failed to detect code smells", zap.String("file_path", path), zap.Error(err))
		return textResult(fmt.Sprintf("Failed to detect code smells: %v", err)), nil, nil
	}

	return textResult(FormatReport(result.Report)), nil, nil
}

func (s *SmellServer) handleScanDirectory(ctx context.Context, req *mcp.CallToolRequest, args ScanDirectoryParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling scanDirectory request", zap.String("path", args.Path))

	result, err := s.scanner.ScanDirectory(ctx, args.Path)
	if err != nil {
		s.logger.Error("Failed to scan directory", zap.String("path", args.Path), zap.Error(err))
		return textResult(fmt.Sprintf("Failed to scan directory: %v", err)), nil, nil
	}

	return textResult(FormatReport(result.Report)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// FormatReport renders a report as plain text for tool output
func FormatReport(r *report.Report) string {
	var result strings.Builder

	fmt.Fprintf(&result, "Analyzed %d methods in %s: %d smelly (LONG_METHOD: %d, LONG_PARAMETER_METHOD: %d)\n",
		r.TotalMethods, r.Source, r.SmellyCount,
		r.Counts[model.LongMethod], r.Counts[model.LongParameterMethod])
	fmt.Fprintf(&result, "Thresholds: long method > %d lines, long parameter list > %d parameters\n",
		r.Thresholds.LongMethod, r.Thresholds.LongParameter)

	if len(r.Findings) == 0 {
		result.WriteString("No code smells found.\n")
		return result.String()
	}

	result.WriteString("\n")
	for _, f := range r.Findings {
		smells := make([]string, len(f.Smells))
		for i, smell := range f.Smells {
			smells[i] = string(smell)
		}
		location := f.FilePath
		if f.StartLine > 0 {
			location = fmt.Sprintf("%s:%d", f.FilePath, f.StartLine)
		}
		fmt.Fprintf(&result, "- %s %s [%s] (lines: %d, parameters: %d)\n",
			location, f.Method, strings.Join(smells, ", "), f.EffectiveLines, f.ParameterCount)
	}

	return result.String()
}

// Handler exposes the streamable HTTP transport
func (s *SmellServer) Handler() http.Handler {
	return s.handler
}

// SetupHTTPRoutes mounts the MCP endpoint on the router
func (s *SmellServer) SetupHTTPRoutes(router *gin.Engine, path string) {
	if path == "" {
		path = "/mcp"
	}
	router.Any(path, gin.WrapH(s.handler))
}
