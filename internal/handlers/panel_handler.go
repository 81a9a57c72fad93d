package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/service"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/navigation"
)

type PanelHandler struct {
	panelService *service.PanelService
}

func NewPanelHandler(panelService *service.PanelService) *PanelHandler {
	return &PanelHandler{panelService: panelService}
}

type ActivateRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

type ActivateResponse struct {
	Location string `json:"location"`
	service.PanelSnapshot
}

func (h *PanelHandler) Mount(c *gin.Context) {
	snapshot, err := h.panelService.Mount(c.Request.Context())
	if err != nil {
		logger.Error(err, "Failed to mount panel", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mount panel"})
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

func (h *PanelHandler) Get(c *gin.Context) {
	snapshot, err := h.panelService.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *PanelHandler) PointerEnter(c *gin.Context) {
	h.apply(c, navigation.EventPointerEnter)
}

func (h *PanelHandler) PointerLeave(c *gin.Context) {
	h.apply(c, navigation.EventPointerLeave)
}

func (h *PanelHandler) TogglePin(c *gin.Context) {
	h.apply(c, navigation.EventTogglePin)
}

func (h *PanelHandler) apply(c *gin.Context, event navigation.Event) {
	snapshot, err := h.panelService.Apply(c.Param("id"), event)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *PanelHandler) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, snapshot, err := h.panelService.Activate(c.Param("id"), req.TargetID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ActivateResponse{Location: location, PanelSnapshot: snapshot})
}

func (h *PanelHandler) Unmount(c *gin.Context) {
	if err := h.panelService.Unmount(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "panel unmounted"})
}

func (h *PanelHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPanelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "panel not found"})
	case errors.Is(err, service.ErrUnknownTarget):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, navigation.ErrUnknownEvent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.FromContext(c.Request.Context()).WithError(err).Error("Panel operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "panel operation failed"})
	}
}
