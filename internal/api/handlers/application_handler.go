package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/services"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	app, err := h.svc.Apply(c.Request.Context(), userID, c.Param("job_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

type ExternalApplyResponse struct {
	Application *models.Application `json:"application"`
	RedirectURL string              `json:"redirect_url"`
}

func (h *ApplicationHandler) ApplyExternally(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	app, link, err := h.svc.ApplyExternally(c.Request.Context(), userID, c.Param("job_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExternalApplyResponse{Application: app, RedirectURL: link})
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	apps, err := h.svc.ListForCandidate(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) ListForRecruiter(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	apps, err := h.svc.ListForRecruiter(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ApplicationHandler) AdvanceStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.AdvanceStatus", "invalid request body", err))
		return
	}

	app, err := h.svc.AdvanceStatus(c.Request.Context(), c.Param("application_id"), userID, models.ApplicationStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
