package calls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"agentiq-backend/internal/cert"
	"agentiq-backend/internal/shared/server/middleware"
	"agentiq-backend/internal/shared/server/respond"
	"agentiq-backend/internal/usage"
)

// Whisper rejects payloads above 25MB, so there is no point accepting more.
const maxUploadBytes = 25 << 20

// Handler wires HTTP handlers to the calls service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches call routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/calls/analyze", h.analyzeCall)
	rg.GET("/calls", h.listCalls)
	rg.GET("/calls/:id", h.getCall)
	rg.GET("/calls/:id/certificate", h.getCertificate)
	rg.GET("/calls/:id/audio", h.getAudio)
}

func (h *Handler) analyzeCall(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "audio file is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "audio file exceeds the 25MB limit", nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file must be an audio recording", nil)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read audio file", nil)
		return
	}
	if int64(len(data)) > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "audio file exceeds the 25MB limit", nil)
		return
	}

	call, err := h.Svc.Analyze(c.Request.Context(), userID, header.Filename, data)
	if err != nil {
		h.respondAnalyzeError(c, err)
		return
	}
	c.Set("callId", call.ID)

	resp := gin.H{
		"id":        call.ID,
		"fileName":  call.FileName,
		"createdAt": call.CreatedAt,
		"result":    call.Result,
	}
	if h.Svc.Usage != nil {
		resp["usage"] = h.Svc.Usage.Stats(c.Request.Context(), userID)
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) respondAnalyzeError(c *gin.Context, err error) {
	var providerErr *ProviderError
	switch {
	case errors.Is(err, ErrEmptyAudio), errors.Is(err, ErrInvalidAudio):
		respond.Error(c, http.StatusBadRequest, "validation_error", "audio file could not be processed", nil)
	case errors.Is(err, ErrAudioTooLong):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Audio file exceeds the maximum duration of 5 minutes.", []map[string]string{
			{"field": "audio", "issue": "too_long"},
		})
	case errors.Is(err, usage.ErrLimitReached):
		respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached your analysis limit. Try again tomorrow.", []map[string]string{
			{"field": "usage", "issue": "limit_reached"},
		})
	case errors.As(err, &providerErr):
		respond.Error(c, http.StatusBadGateway, "provider_error", fmt.Sprintf("audio %s failed, please try again", providerErr.Stage), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze call", nil)
	}
}

func (h *Handler) listCalls(c *gin.Context) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
			return
		}
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	records, fromCache, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list calls", nil)
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, call := range records {
		items = append(items, gin.H{
			"id":              call.ID,
			"fileName":        call.FileName,
			"createdAt":       call.CreatedAt,
			"duration":        call.Result.Duration,
			"sentiment":       call.Result.Sentiment,
			"score":           call.Result.Score,
			"topics":          call.Result.Topics,
			"transcription":   Preview(call.Result.Transcript),
			"analysis":        Preview(call.Result.Analysis),
			"recommendations": Preview(call.Result.Recommendations),
		})
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"calls":     items,
		"fromCache": fromCache,
	})
}

func (h *Handler) getCall(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	callID := c.Param("id")
	if callID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "call id is required", nil)
		return
	}

	call, err := h.Svc.Get(c.Request.Context(), userID, callID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "call not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch call", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, call)
}

func (h *Handler) getAudio(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	callID := c.Param("id")
	if callID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "call id is required", nil)
		return
	}

	rc, call, err := h.Svc.OpenAudio(c.Request.Context(), userID, callID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recording not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recording", nil)
		}
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+call.FileName+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		// Headers are already sent at this point.
		_ = c.Error(err)
	}
}

func (h *Handler) getCertificate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	callID := c.Param("id")
	if callID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "call id is required", nil)
		return
	}

	call, err := h.Svc.Get(c.Request.Context(), userID, callID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "call not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch call", nil)
		}
		return
	}

	input := cert.AnalysisResult{
		Transcript:      call.Result.Transcript,
		Analysis:        call.Result.Analysis,
		Recommendations: call.Result.Recommendations,
		Duration:        call.Result.Duration,
		Topics:          call.Result.Topics,
		Score:           call.Result.Score,
		Date:            call.CreatedAt.Format("January 2, 2006"),
	}

	if c.Query("format") == "csv" {
		payload, err := cert.RenderCSV(input)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render certificate", nil)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+cert.FileName("csv")+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
		return
	}

	payload, err := cert.RenderHTML(input)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render certificate", nil)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+cert.FileName("html")+`"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", payload)
}
