package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"frontdesk-backend/config"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

type BillingController struct {
	BillingSvc *services.BillingService
	Snapshots  *services.SnapshotService
	Logger     *logrus.Logger
}

func NewBillingController(svc *services.BillingService, snapshots *services.SnapshotService, logger *logrus.Logger) *BillingController {
	return &BillingController{BillingSvc: svc, Snapshots: snapshots, Logger: logger}
}

// POST /api/checkout
func (ctrl *BillingController) Checkout(c *gin.Context) {
	var payload services.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	receipt, err := ctrl.BillingSvc.Checkout(c.Request.Context(), payload)
	if err != nil {
		config.LogError(ctrl.Logger, "BillingController", "Checkout", "check out", payload, err)
		utils.RespondError(c, err)
		return
	}
	ctrl.Snapshots.Notify()

	c.JSON(http.StatusOK, receipt)
}

// POST /api/undo-checkout
func (ctrl *BillingController) UndoCheckout(c *gin.Context) {
	var payload roomIDPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	room, err := ctrl.BillingSvc.UndoCheckout(c.Request.Context(), payload.RoomID)
	if err != nil {
		config.LogError(ctrl.Logger, "BillingController", "UndoCheckout", "undo checkout", payload, err)
		utils.RespondError(c, err)
		return
	}
	ctrl.Snapshots.Notify()

	c.JSON(http.StatusOK, gin.H{"success": true, "room": room})
}
