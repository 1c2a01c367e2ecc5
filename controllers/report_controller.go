package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"frontdesk-backend/config"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

type ReportController struct {
	ReportSvc      *services.ReportService
	TransactionSvc *services.TransactionService
	Logger         *logrus.Logger
}

func NewReportController(reports *services.ReportService, transactions *services.TransactionService, logger *logrus.Logger) *ReportController {
	return &ReportController{ReportSvc: reports, TransactionSvc: transactions, Logger: logger}
}

// GET /api/reports
func (ctrl *ReportController) GetReports(c *gin.Context) {
	report, err := ctrl.ReportSvc.Revenue(c.Request.Context())
	if err != nil {
		config.LogError(ctrl.Logger, "ReportController", "GetReports", "revenue", nil, err)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/transactions?limit=N
func (ctrl *ReportController) GetTransactions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	list, err := ctrl.TransactionSvc.List(c.Request.Context(), limit)
	if err != nil {
		config.LogError(ctrl.Logger, "ReportController", "GetTransactions", "list transactions", nil, err)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
