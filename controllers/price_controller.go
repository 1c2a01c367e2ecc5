package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"frontdesk-backend/config"
	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

type pricesPayload struct {
	FirstHour *int64 `json:"firstHour" binding:"required,min=0"`
	ExtraHour *int64 `json:"extraHour" binding:"required,min=0"`
	Overnight *int64 `json:"overnight" binding:"required,min=0"`
}

type PriceController struct {
	PriceSvc *services.PriceService
	Logger   *logrus.Logger
}

func NewPriceController(svc *services.PriceService, logger *logrus.Logger) *PriceController {
	return &PriceController{PriceSvc: svc, Logger: logger}
}

// GET /api/prices
func (ctrl *PriceController) GetPrices(c *gin.Context) {
	prices, err := ctrl.PriceSvc.Get(c.Request.Context())
	if err != nil {
		config.LogError(ctrl.Logger, "PriceController", "GetPrices", "load prices", nil, err)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}

// POST /api/prices replaces the whole table.
func (ctrl *PriceController) UpdatePrices(c *gin.Context) {
	var payload pricesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	prices, err := ctrl.PriceSvc.Replace(c.Request.Context(), models.PriceTable{
		FirstHour: *payload.FirstHour,
		ExtraHour: *payload.ExtraHour,
		Overnight: *payload.Overnight,
	})
	if err != nil {
		config.LogError(ctrl.Logger, "PriceController", "UpdatePrices", "replace prices", payload, err)
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, prices)
}
