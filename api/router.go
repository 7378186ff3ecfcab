package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ibreez3/minivault/service"
)

type PromptRequest struct {
	Prompt string `json:"prompt"`
}

type ResponseOutput struct {
	Response string `json:"response"`
}

type server struct {
	h *service.Handler
}

// NewRouter mounts the generate routes on a gin engine.
func NewRouter(h *service.Handler, logger *slog.Logger) *gin.Engine {
	s := &server{h: h}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(logger), accessLog())

	r.POST("/generate", s.generate)
	r.POST("/generate-stream", s.generateStream)
	r.GET("/healthz", s.health)
	return r
}

func (s *server) generate(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.h.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		reqLogger(c).Error("generate failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ResponseOutput{Response: res.Text})
}

func (s *server) generateStream(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stream := s.h.GenerateStream(c.Request.Context(), req.Prompt)
	defer stream.Close()

	started := false
	start := func() {
		if started {
			return
		}
		started = true
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		c.Writer.WriteHeaderNow()
	}
	// A write failure means the client went away; the stream is still
	// drained so the interaction gets logged.
	clientGone := false
	for {
		frag, err := stream.Recv()
		if err == io.EOF {
			start()
			return
		}
		if err != nil {
			reqLogger(c).Error("generate stream failed", "error", err, "started", started)
			if !started {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		start()
		if clientGone || frag.Text == "" {
			continue
		}
		if _, err := io.WriteString(c.Writer, frag.Text); err != nil {
			clientGone = true
			continue
		}
		c.Writer.Flush()
	}
}

func (s *server) health(c *gin.Context) {
	cfg := s.h.Config()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": cfg.Backend(), "model": cfg.Ollama.Model})
}
