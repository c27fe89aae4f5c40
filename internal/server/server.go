package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"go-jobsearch-automation/internal/workflow"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

// ErrBusy is returned when a run for another term is in progress.
var ErrBusy = errors.New("a run is already in progress")

// Runner executes one scraping run.
type Runner interface {
	Run(ctx context.Context, term string) (*workflow.Result, error)
}

// Server only ever drives one browser session: identical requests share the
// in-flight run, requests for another term are rejected until it finishes.
type Server struct {
	runner Runner
	group  singleflight.Group
	busy   sync.Mutex

	//callers registered with the group and waiting for a result
	waiting atomic.Int32
}

func New(runner Runner) *Server {
	return &Server{runner: runner}
}

type runRequest struct {
	Term string `json:"term"`
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Job search automation API is running!",
			"status":  "healthy",
			"waiting": s.waiting.Load(),
		})
	})

	r.POST("/runs", s.handleRun)
	return r
}

func (s *Server) handleRun(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	term := strings.TrimSpace(req.Term)
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}

	result, err := s.run(c.Request.Context(), term)
	switch {
	case errors.Is(err, ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "result": result})
	default:
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) run(ctx context.Context, term string) (*workflow.Result, error) {
	ch := s.group.DoChan(term, func() (interface{}, error) {
		if !s.busy.TryLock() {
			return nil, ErrBusy
		}
		defer s.busy.Unlock()

		//the run must outlive the request that started it, other callers may be waiting
		return s.runner.Run(context.WithoutCancel(ctx), term)
	})
	s.waiting.Add(1)
	defer s.waiting.Add(-1)

	select {
	case res := <-ch:
		if res.Shared {
			log.Printf("🔗 Joined in-flight run for %q", term)
		}
		result, _ := res.Val.(*workflow.Result)
		return result, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
