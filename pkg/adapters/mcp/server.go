package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/reorder"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/aretw0/reorder/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SimulateResponse is the structured result of simulate_gesture and replay_trace.
type SimulateResponse struct {
	TraceID    string                `json:"trace_id" jsonschema_description:"ID of the replayed trace"`
	Outcome    string                `json:"outcome" jsonschema_description:"none, tap, scroll, reorder or canceled"`
	FinalState string                `json:"final_state" jsonschema_description:"Engine state after the trace settled"`
	Intents    []string              `json:"intents" jsonschema_description:"Intents dispatched, in order"`
	Aborts     []string              `json:"aborts,omitempty" jsonschema_description:"Reasons the gesture was forced back to idle"`
	Detail     *domain.ReorderDetail `json:"detail,omitempty" jsonschema_description:"Splice and original index of a completed reorder"`
	Order      []string              `json:"order" jsonschema_description:"Item IDs after the replay"`
}

// SpliceResponse is the structured result of splice_index.
type SpliceResponse struct {
	SpliceIndex   int `json:"splice_index" jsonschema_description:"Where the item lands among its siblings"`
	OriginalIndex int `json:"original_index" jsonschema_description:"Where the item started"`
}

// Server exposes trace replay as an MCP server.
type Server struct {
	runner    *runner.Runner
	store     ports.TraceStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. store may be nil, in which
// case the stored-trace tools are not registered.
func NewServer(r *runner.Runner, store ports.TraceStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		runner:    r,
		store:     store,
		logger:    logger,
		mcpServer: server.NewMCPServer("reorder-mcp", strings.TrimSpace(reorder.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	simulateTool := mcp.NewTool("simulate_gesture",
		mcp.WithDescription("Replay a recorded pointer trace against a list and report whether it became a tap, a scroll or a reorder."),
		mcp.WithString("trace", mcp.Required(), mcp.Description("Trace as a JSON object with layout, items, listeners and events")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	spliceTool := mcp.NewTool("splice_index",
		mcp.WithDescription("Compute where a dragged item lands given its siblings' positions and a vertical displacement."),
		mcp.WithString("positions", mcp.Required(), mcp.Description("JSON array of sibling offsets from the dragged item's center, ascending")),
		mcp.WithNumber("displacement", mcp.Required(), mcp.Description("Vertical displacement in pixels, negative is up")),
		mcp.WithOutputSchema[SpliceResponse](),
	)
	s.mcpServer.AddTool(spliceTool, mcp.NewStructuredToolHandler(s.handleSplice))

	if s.store == nil {
		return
	}

	replayTool := mcp.NewTool("replay_trace",
		mcp.WithDescription("Replay a stored trace by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Trace ID")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(replayTool, mcp.NewStructuredToolHandler(s.handleReplay))

	s.mcpServer.AddTool(mcp.NewTool("list_traces",
		mcp.WithDescription("List the IDs of stored traces."),
	), s.handleList)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	raw, _ := args["trace"].(string)
	if err := runner.CheckTraceSize([]byte(raw)); err != nil {
		s.logger.Warn("MCP simulate: trace rejected", "err", err, "size", len(raw))
		return SimulateResponse{}, fmt.Errorf("trace rejected: %w", err)
	}
	var tr domain.Trace
	if err := json.Unmarshal([]byte(raw), &tr); err != nil {
		return SimulateResponse{}, fmt.Errorf("trace is not valid JSON: %w", err)
	}
	if tr.ID == "" {
		tr.ID = "mcp"
	}
	return s.simulate(ctx, &tr)
}

func (s *Server) handleReplay(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	id, _ := args["id"].(string)
	tr, err := s.store.Load(ctx, id)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("load %q: %w", id, err)
	}
	return s.simulate(ctx, tr)
}

func (s *Server) simulate(ctx context.Context, tr *domain.Trace) (SimulateResponse, error) {
	res, err := s.runner.Run(ctx, tr)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("replay failed: %w", err)
	}
	out := SimulateResponse{
		TraceID:    res.TraceID,
		Outcome:    string(res.Outcome),
		FinalState: res.FinalState.String(),
		Intents:    []string{},
		Detail:     res.Detail,
		Order:      res.Order,
	}
	for _, i := range res.Intents {
		out.Intents = append(out.Intents, string(i.Intent))
	}
	for _, a := range res.Aborts {
		out.Aborts = append(out.Aborts, string(a))
	}
	return out, nil
}

func (s *Server) handleSplice(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SpliceResponse, error) {
	raw, _ := args["positions"].(string)
	var positions []float64
	if err := json.Unmarshal([]byte(raw), &positions); err != nil {
		return SpliceResponse{}, fmt.Errorf("positions must be a JSON array of numbers: %w", err)
	}
	dy, ok := args["displacement"].(float64)
	if !ok {
		return SpliceResponse{}, errors.New("displacement must be a number")
	}
	snap, err := domain.SnapshotFromPositions(positions)
	if err != nil {
		return SpliceResponse{}, err
	}
	return SpliceResponse{
		SpliceIndex:   snap.SpliceIndex(dy),
		OriginalIndex: snap.OriginalIndex(),
	}, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("reorder://config", "Engine thresholds used for replays",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.runner.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "reorder://config",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
