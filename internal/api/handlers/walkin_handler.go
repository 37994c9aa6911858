package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/models"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/services"
	"github.com/DISAMCHARLAPRABHAS/hire-flow/internal/utils"
)

type WalkInHandler struct {
	svc services.WalkInService
}

func NewWalkInHandler(svc services.WalkInService) *WalkInHandler {
	return &WalkInHandler{svc: svc}
}

func (h *WalkInHandler) CreateDrive(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in services.DriveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WalkInHandler.CreateDrive", "invalid request body", err))
		return
	}

	d, err := h.svc.CreateDrive(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, d)
}

func (h *WalkInHandler) UpdateDrive(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var in services.DriveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WalkInHandler.UpdateDrive", "invalid request body", err))
		return
	}

	d, err := h.svc.UpdateDrive(c.Request.Context(), c.Param("drive_id"), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

type SetDriveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *WalkInHandler) SetDriveStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SetDriveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WalkInHandler.SetDriveStatus", "invalid request body", err))
		return
	}

	if err := h.svc.SetDriveStatus(c.Request.Context(), c.Param("drive_id"), userID, models.DriveStatus(req.Status)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *WalkInHandler) DeleteDrive(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteDrive(c.Request.Context(), c.Param("drive_id"), userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WalkInHandler) ListOpen(c *gin.Context) {
	drives, err := h.svc.ListOpenDrives(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, drives)
}

func (h *WalkInHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	drives, err := h.svc.ListDrivesForRecruiter(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, drives)
}

func (h *WalkInHandler) Join(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	a, err := h.svc.JoinDrive(c.Request.Context(), userID, c.Param("drive_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *WalkInHandler) ListAttendees(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	attendees, err := h.svc.ListAttendees(c.Request.Context(), c.Param("drive_id"), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendees)
}

func (h *WalkInHandler) ListMyAttendance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	attendance, err := h.svc.ListAttendanceForCandidate(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendance)
}
