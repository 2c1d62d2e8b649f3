// Package server exposes the advisor over HTTP, Server-Sent Events and
// WebSockets.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Desarso/insurebot"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server routes API requests to an Advisor.
type Server struct {
	Advisor *insurebot.Advisor
	Router  *gin.Engine

	mu       sync.Mutex
	inflight map[string]struct{}
	upgrader websocket.Upgrader
}

// New creates a server with every route registered
func New(advisor *insurebot.Advisor) *Server {
	s := &Server{
		Advisor:  advisor,
		Router:   gin.Default(),
		inflight: make(map[string]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.Router.Group("/api/v1")

	r.POST("/conversations", s.createConversation)
	r.GET("/conversations", s.listConversations)
	r.GET("/conversations/:id/history", s.getHistory)
	r.DELETE("/conversations/:id", s.deleteConversation)
	r.POST("/conversations/:id/messages", s.postMessage)
	r.GET("/conversations/:id/ws", s.serveWebSocket)

	r.POST("/recommendations", s.createRecommendation)
	r.GET("/ui/:language", s.getUI)
	r.GET("/currencies/:code", s.getCurrency)

	if dir := s.Advisor.Config.AudioDir; dir != "" {
		s.Router.Static("/audio", dir)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Println("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}

// acquire marks a conversation as streaming. It returns false when another
// stream for the same conversation is still running.
func (s *Server) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *Server) release(id string) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}
