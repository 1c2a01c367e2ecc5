package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"frontdesk-backend/config"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

type roomIDPayload struct {
	RoomID uint `json:"roomId" binding:"required"`
}

type RoomController struct {
	RoomSvc   *services.RoomService
	Snapshots *services.SnapshotService
	Logger    *logrus.Logger
}

func NewRoomController(svc *services.RoomService, snapshots *services.SnapshotService, logger *logrus.Logger) *RoomController {
	return &RoomController{RoomSvc: svc, Snapshots: snapshots, Logger: logger}
}

// GET /api/rooms
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.List(c.Request.Context())
	if err != nil {
		config.LogError(ctrl.Logger, "RoomController", "GetRooms", "list rooms", nil, err)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// POST /api/checkin
func (ctrl *RoomController) CheckIn(c *gin.Context) {
	var payload services.CheckInRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	room, err := ctrl.RoomSvc.CheckIn(c.Request.Context(), payload)
	if err != nil {
		config.LogError(ctrl.Logger, "RoomController", "CheckIn", "check in", payload, err)
		utils.RespondError(c, err)
		return
	}
	ctrl.Snapshots.Notify()

	c.JSON(http.StatusOK, gin.H{"success": true, "status": "Check-in success", "room": room})
}

// POST /api/clean-room
func (ctrl *RoomController) CleanRoom(c *gin.Context) {
	var payload roomIDPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	room, err := ctrl.RoomSvc.Clean(c.Request.Context(), payload.RoomID)
	if err != nil {
		config.LogError(ctrl.Logger, "RoomController", "CleanRoom", "clean room", payload, err)
		utils.RespondError(c, err)
		return
	}
	ctrl.Snapshots.Notify()

	c.JSON(http.StatusOK, gin.H{"success": true, "room": room})
}
