// Package mcp exposes a stage as a Model Context Protocol server, so agents
// can load behavior-tree documents and tick actors as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/stage"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ActorsURI is the resource listing every actor on stage.
const ActorsURI = "arbor://actors"

// MaxTicks bounds the n argument of tick_actor.
const MaxTicks = 1000

// TickResponse is the structured result of tick_actor.
type TickResponse struct {
	Name     string          `json:"name" jsonschema_description:"Actor name"`
	Status   domain.Status   `json:"status" jsonschema_description:"Status of the last tick: ready, success or failure"`
	Statuses []domain.Status `json:"statuses" jsonschema_description:"Status of every tick performed"`
}

// ActorsResponse is the structured result of list_actors.
type ActorsResponse struct {
	Actors []stage.ActorInfo `json:"actors" jsonschema_description:"Actors on stage, sorted by name"`
}

// UnloadResponse is the structured result of unload_document.
type UnloadResponse struct {
	Handle string `json:"handle"`
}

// GraphResponse is the structured result of actor_graph.
type GraphResponse struct {
	Name    string `json:"name"`
	Mermaid string `json:"mermaid" jsonschema_description:"Mermaid flowchart (graph TD)"`
}

// Server wraps a Stage and exposes it as an MCP Server.
type Server struct {
	stage     *stage.Stage
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(st *stage.Stage, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		stage:     st,
		mcpServer: server.NewMCPServer("arbor-mcp", version),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+displayAddr(addr)))

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

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
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
	// TOOL: load_document
	loadTool := mcp.NewTool("load_document",
		mcp.WithDescription("Load a behavior-tree document and put its actors on stage. Pass either the record text or the key of a stored document."),
		mcp.WithString("text", mcp.Description("Record text: concatenated {id, type, ...} records")),
		mcp.WithString("key", mcp.Description("Key of a document in the configured source")),
		mcp.WithOutputSchema[stage.Document](),
	)
	s.mcpServer.AddTool(loadTool, mcp.NewStructuredToolHandler(s.handleLoad))

	// TOOL: list_actors
	listTool := mcp.NewTool("list_actors",
		mcp.WithDescription("List the actors on stage with their tick counts and last status."),
		mcp.WithOutputSchema[ActorsResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))

	// TOOL: tick_actor
	tickTool := mcp.NewTool("tick_actor",
		mcp.WithDescription("Tick an actor's behavior tree. Stops early when the tree finishes."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Actor name")),
		mcp.WithNumber("n", mcp.Description("Number of ticks (default 1)")),
		mcp.WithOutputSchema[TickResponse](),
	)
	s.mcpServer.AddTool(tickTool, mcp.NewStructuredToolHandler(s.handleTick))

	// TOOL: unload_document
	unloadTool := mcp.NewTool("unload_document",
		mcp.WithDescription("Remove a loaded document and its actors."),
		mcp.WithString("handle", mcp.Required(), mcp.Description("Handle returned by load_document")),
		mcp.WithOutputSchema[UnloadResponse](),
	)
	s.mcpServer.AddTool(unloadTool, mcp.NewStructuredToolHandler(s.handleUnload))

	// TOOL: actor_graph
	graphTool := mcp.NewTool("actor_graph",
		mcp.WithDescription("Render an actor's tree as a Mermaid flowchart with tick progress."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Actor name")),
		mcp.WithOutputSchema[GraphResponse](),
	)
	s.mcpServer.AddTool(graphTool, mcp.NewStructuredToolHandler(s.handleGraph))
}

func (s *Server) handleLoad(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (stage.Document, error) {
	text, _ := args["text"].(string)
	key, _ := args["key"].(string)

	var (
		doc *stage.Document
		err error
	)
	switch {
	case text != "" && key != "":
		return stage.Document{}, errors.New("set either text or key, not both")
	case key != "":
		doc, err = s.stage.LoadKey(ctx, key)
	case text != "":
		doc, err = s.stage.Load(ctx, text)
	default:
		return stage.Document{}, errors.New("text or key is required")
	}
	if err != nil {
		s.logger.Warn("MCP load_document rejected", "error", err)
		return stage.Document{}, fmt.Errorf("load failed: %w", err)
	}
	return *doc, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ActorsResponse, error) {
	return ActorsResponse{Actors: s.stage.Actors()}, nil
}

func (s *Server) handleTick(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TickResponse, error) {
	name, _ := args["name"].(string)
	n := 1
	if raw, ok := args["n"].(float64); ok {
		n = int(raw)
	}
	if n < 1 || n > MaxTicks {
		return TickResponse{}, fmt.Errorf("n must be between 1 and %d", MaxTicks)
	}

	resp := TickResponse{Name: name}
	for i := 0; i < n; i++ {
		status, err := s.stage.Tick(ctx, name)
		if err != nil {
			return TickResponse{}, fmt.Errorf("tick failed: %w", err)
		}
		resp.Status = status
		resp.Statuses = append(resp.Statuses, status)
		if status.Terminal() {
			break
		}
	}
	return resp, nil
}

func (s *Server) handleUnload(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (UnloadResponse, error) {
	handle, _ := args["handle"].(string)
	if err := s.stage.Unload(handle); err != nil {
		return UnloadResponse{}, err
	}
	return UnloadResponse{Handle: handle}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GraphResponse, error) {
	name, _ := args["name"].(string)
	out, err := s.actorGraph(ctx, name)
	if err != nil {
		return GraphResponse{}, err
	}
	return GraphResponse{Name: name, Mermaid: out}, nil
}

func (s *Server) actorGraph(ctx context.Context, name string) (string, error) {
	var out string
	err := s.stage.WithActor(ctx, name, func(a *tree.Actor) error {
		var overlay *graph.Overlay
		if root := a.RootNode(); root != nil {
			overlay = graph.Progress(root)
		}
		out = graph.GenerateActorsMermaid([]*tree.Actor{a}, overlay)
		return nil
	})
	return out, err
}

func (s *Server) registerResources() {
	// EXPOSE: arbor://actors
	s.mcpServer.AddResource(mcp.NewResource(ActorsURI, "Actors on stage",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.stage.Actors())
		if err != nil {
			return nil, fmt.Errorf("failed to encode actors: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ActorsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
