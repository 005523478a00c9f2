package handlers

import (
	"errors"
	"net/http"

	"github.com/Samridhilal/MoodBoard/internal/auth"
	dom "github.com/Samridhilal/MoodBoard/internal/domain"
	"github.com/Samridhilal/MoodBoard/internal/dto"
	"github.com/Samridhilal/MoodBoard/internal/service"

	"github.com/gin-gonic/gin"
)

// MoodBoardHandler handles board creation and timeline reads.
type MoodBoardHandler struct {
	svc *service.MoodBoardService
}

// NewMoodBoardHandler returns a new MoodBoardHandler.
func NewMoodBoardHandler(svc *service.MoodBoardService) *MoodBoardHandler {
	return &MoodBoardHandler{svc: svc}
}

// Create godoc
// @Summary      Create today's mood board
// @Tags         moodboards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateMoodBoardRequest  true  "Board body"
// @Success      201   {object}  dto.MoodBoardResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /moodboards [post]
func (h *MoodBoardHandler) Create(c *gin.Context) {
	var req dto.CreateMoodBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := auth.UserIDFromContext(c)

	b, err := h.svc.Create(c.Request.Context(), userID, req.Emojis, req.ImageURL, req.Color, req.Note)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
			return
		}
		if errors.Is(err, service.ErrAlreadyPostedToday) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create mood board"})
		return
	}
	c.JSON(http.StatusCreated, boardToResponse(b))
}

// GetToday godoc
// @Summary      Get today's mood board
// @Tags         moodboards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MoodBoardResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /moodboards/today [get]
func (h *MoodBoardHandler) GetToday(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	b, err := h.svc.GetToday(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no mood board found for today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load mood board"})
		return
	}
	c.JSON(http.StatusOK, boardToResponse(b))
}

// List godoc
// @Summary      List all mood boards, newest day first
// @Tags         moodboards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListMoodBoardsResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /moodboards [get]
func (h *MoodBoardHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}
	c.JSON(http.StatusOK, dto.ListMoodBoardsResponse{Items: boardsToResponses(list)})
}

func boardToResponse(b dom.MoodBoard) dto.MoodBoardResponse {
	return dto.MoodBoardResponse{
		ID:        b.ID,
		Day:       b.Day.Format("2006-01-02"),
		Emojis:    b.Emojis,
		ImageURL:  b.ImageURL,
		Color:     b.Color,
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
	}
}

func boardsToResponses(list []dom.MoodBoard) []dto.MoodBoardResponse {
	out := make([]dto.MoodBoardResponse, len(list))
	for i := range list {
		out[i] = boardToResponse(list[i])
	}
	return out
}
