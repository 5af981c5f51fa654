package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roguepikachu/synopsis/internal/domain"
	"github.com/roguepikachu/synopsis/internal/repository"
	"github.com/roguepikachu/synopsis/pkg"
	"github.com/roguepikachu/synopsis/pkg/logger"
)

// SnippetService defines the handler's dependency contract.
type SnippetService interface {
	CreateSnippet(ctx context.Context, text string) (domain.Snippet, error)
	GetSnippetByID(ctx context.Context, id string) (domain.Snippet, error)
}

// Handler handles HTTP requests for snippets.
type Handler struct {
	svc SnippetService
}

// NewHandler constructs a Handler with the given SnippetService.
func NewHandler(svc SnippetService) *Handler {
	return &Handler{svc: svc}
}

// Create validates the request body, then summarizes and stores the text.
func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.CreateSnippetRequestDTO
	if err := bindCreateRequest(c, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn(ctx, "request body exceeds %d bytes", tooLarge.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, pkg.NewError(pkg.MsgBodyTooLarge))
			return
		}
		logger.Debug(ctx, "failed to bind JSON: %s", err.Error())
		c.JSON(http.StatusBadRequest, pkg.NewError(pkg.MsgInvalidJSONBody))
		return
	}
	text, err := req.Validate()
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, pkg.NewError(verr.Reason))
			return
		}
		c.JSON(http.StatusBadRequest, pkg.NewError(err.Error()))
		return
	}

	snippet, err := h.svc.CreateSnippet(ctx, text)
	if err != nil {
		logger.Error(ctx, "failed to create snippet: %s", err.Error())
		c.JSON(http.StatusInternalServerError, pkg.NewError(pkg.MsgInternalError))
		return
	}
	c.JSON(http.StatusCreated, domain.NewSnippetResponse(snippet))
}

// bindCreateRequest binds the JSON body into req. A missing or blank body
// binds as an empty object.
func bindCreateRequest(c *gin.Context, req *domain.CreateSnippetRequestDTO) error {
	if c.Request.Body == nil {
		return nil
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Get handles fetching a snippet by ID.
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	snippet, err := h.svc.GetSnippetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidID):
			c.JSON(http.StatusBadRequest, pkg.NewError(pkg.MsgInvalidID))
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, pkg.NewError(pkg.MsgNotFound))
		default:
			logger.Error(ctx, "failed to get snippet: %s", err.Error())
			c.JSON(http.StatusInternalServerError, pkg.NewError(pkg.MsgInternalError))
		}
		return
	}
	c.JSON(http.StatusOK, domain.NewSnippetResponse(snippet))
}
