package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/lox/bank-statement-categorizer/internal/category"
	"github.com/lox/bank-statement-categorizer/internal/statement"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type Server struct {
	processor  *statement.Processor
	categories *category.Table
	logger     *log.Logger
	version    string
}

func New(processor *statement.Processor, categories *category.Table, logger *log.Logger, version string) *Server {
	return &Server{
		processor:  processor,
		categories: categories,
		logger:     logger,
		version:    version,
	}
}

func (s *Server) newMCPServer() *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"Bank Statement Categorizer",
		s.version,
	)

	mcpServer.AddTool(mcp.NewTool("categorize_statement",
		mcp.WithDescription("Parse bank statement text and categorise each transaction for tax purposes"),
		mcp.WithString("bank",
			mcp.Required(),
			mcp.Description("Bank that issued the statement (amex, anz, cba, westpac)"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Extracted statement text, one line per row"),
		),
		mcp.WithString("deductible_only",
			mcp.Description("Only return deductible transactions (default: false)"),
		),
	), s.categorizeStatementHandler)

	mcpServer.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the category codes with their tax category and deductibility"),
	), s.listCategoriesHandler)

	return mcpServer
}

// Run serves the tools over stdio until the client disconnects
func (s *Server) Run() error {
	if err := server.ServeStdio(s.newMCPServer()); err != nil {
		return err
	}
	return nil
}

func (s *Server) categorizeStatementHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bankID, ok := request.Params.Arguments["bank"].(string)
	if !ok {
		return nil, errors.New("bank must be a string")
	}
	text, ok := request.Params.Arguments["text"].(string)
	if !ok {
		return nil, errors.New("text must be a string")
	}

	deductibleOnly := false
	switch v := request.Params.Arguments["deductible_only"].(type) {
	case nil:
	case bool:
		deductibleOnly = v
	case string:
		var err error
		deductibleOnly, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("deductible_only must be a boolean: %w", err)
		}
	default:
		return nil, errors.New("deductible_only must be a boolean or string")
	}

	s.logger.Debug("Categorising statement", "bank", bankID, "bytes", len(text))

	result, err := s.processor.Process(bankID, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if deductibleOnly {
		result.Transactions = result.Deductible()
	}

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) listCategoriesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(s.categories.Records(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal categories: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
