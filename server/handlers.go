package server

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/models"
	"github.com/Desarso/insurebot/recommend"
	"github.com/Desarso/insurebot/sessions"
	"github.com/Desarso/insurebot/stores"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createConversationRequest struct {
	Language string `json:"language"`
}

type recommendationRequest struct {
	PolicyDetails string  `json:"policy_details"`
	InsuranceType string  `json:"insurance_type"`
	Coverage      string  `json:"coverage"`
	Budget        float64 `json:"budget"`
	Currency      string  `json:"currency"`
	PolicyTerm    string  `json:"policy_term"`
	NumPeople     int     `json:"num_people"`
	Language      string  `json:"language"`
}

func (s *Server) createConversation(c *gin.Context) {
	var req createConversationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	lang := i18n.ParseLanguage(req.Language)
	id := uuid.NewString()
	if err := s.Advisor.Store.CreateConversation(id, string(lang)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"conversation_id": id, "language": lang})
}

func (s *Server) listConversations(c *gin.Context) {
	convs, err := s.Advisor.Store.ListConversations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]models.ConversationResponse, len(convs))
	for i, conv := range convs {
		resp[i] = models.ConversationResponse{
			ConversationID: conv.ConversationID,
			Language:       conv.Language,
			TurnCount:      conv.TurnCount,
			CreatedAt:      conv.CreatedAt,
			UpdatedAt:      conv.UpdatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"conversations": resp})
}

func (s *Server) getHistory(c *gin.Context) {
	id := c.Param("id")
	h, err := s.Advisor.Store.LoadHistory(id)
	if errors.Is(err, stores.ErrConversationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation_id": id, "history": h})
}

func (s *Server) deleteConversation(c *gin.Context) {
	err := s.Advisor.Store.DeleteConversation(c.Param("id"))
	if errors.Is(err, stores.ErrConversationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// postMessage streams one submission as Server-Sent Events.
func (s *Server) postMessage(c *gin.Context) {
	id := c.Param("id")
	if !s.acquire(id) {
		c.JSON(http.StatusConflict, gin.H{"error": sessions.ErrSessionBusy.Error()})
		return
	}
	defer s.release(id)

	sub, err := s.submissionFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := s.Advisor.LoadSession(id, sub.Language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	session := sessions.NewHTTPSession(chat, s.Advisor.Store)
	writer := &GinSSEWriter{Context: c}
	if err := session.RunSSEInteraction(c.Request.Context(), sub, writer); err != nil {
		log.Printf("SSE interaction for %s ended: %v", id, err)
	}
}

func (s *Server) submissionFromForm(c *gin.Context) (sessions.Submission, error) {
	sub := sessions.Submission{Text: c.PostForm("text")}
	if lang := c.PostForm("language"); lang != "" {
		sub.Language = i18n.ParseLanguage(lang)
	}
	if tts := c.PostForm("tts"); tts != "" {
		speak, err := strconv.ParseBool(tts)
		if err != nil {
			return sessions.Submission{}, fmt.Errorf("invalid tts value %q", tts)
		}
		sub.Speak = speak
	}

	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return sub, nil
		}
		return sessions.Submission{}, fmt.Errorf("failed to parse form: %w", err)
	}

	var files []*multipart.FileHeader
	files = append(files, form.File["files[]"]...)
	files = append(files, form.File["files"]...)
	for _, file := range files {
		path, err := s.saveUpload(c, file)
		if err != nil {
			return sessions.Submission{}, err
		}
		sub.Files = append(sub.Files, path)
	}
	return sub, nil
}

// saveUpload keeps the original base name inside a fresh directory so the
// name shown to the model matches what the user uploaded.
func (s *Server) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("upload without a file name")
	}
	dir := filepath.Join(s.Advisor.Config.UploadDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", fmt.Errorf("failed to save upload %s: %w", name, err)
	}
	return path, nil
}

// serveWebSocket runs a conversation over a WebSocket connection. The socket
// keeps the conversation's in-memory history, so it holds the conversation
// until it closes and concurrent POSTs answer 409.
func (s *Server) serveWebSocket(c *gin.Context) {
	id := c.Param("id")
	if !s.acquire(id) {
		c.JSON(http.StatusConflict, gin.H{"error": sessions.ErrSessionBusy.Error()})
		return
	}
	defer s.release(id)

	lang := i18n.Language("")
	if q := c.Query("language"); q != "" {
		lang = i18n.ParseLanguage(q)
	}
	chat, err := s.Advisor.LoadSession(id, lang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session := sessions.NewWebSocketSession(chat, conn, s.Advisor.Store, s.Advisor.Config.UploadDir)
	if err := session.Serve(c.Request.Context()); err != nil {
		session.Logger.Printf("WebSocket session ended: %v", err)
	}
}

func (s *Server) createRecommendation(c *gin.Context) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := recommend.Request{
		PolicyDetails: req.PolicyDetails,
		InsuranceType: req.InsuranceType,
		Coverage:      req.Coverage,
		Budget:        req.Budget,
		Currency:      req.Currency,
		PolicyTerm:    req.PolicyTerm,
		NumPeople:     req.NumPeople,
		Language:      i18n.ParseLanguage(req.Language),
	}
	c.JSON(http.StatusOK, models.RecommendationResponse{
		Recommendation: s.Advisor.Recommend(c.Request.Context(), rec),
		Prompt:         recommend.BuildPrompt(rec),
	})
}

func (s *Server) getUI(c *gin.Context) {
	c.JSON(http.StatusOK, i18n.UILabels(i18n.ParseLanguage(c.Param("language"))))
}

func (s *Server) getCurrency(c *gin.Context) {
	slider, err := i18n.NewBudgetSlider(c.Param("code"), i18n.ParseLanguage(c.Query("language")))
	if errors.Is(err, i18n.ErrUnknownCurrency) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slider)
}
