package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"frontdesk-backend/config"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

type InventoryController struct {
	InventorySvc *services.InventoryService
	Snapshots    *services.SnapshotService
	Logger       *logrus.Logger
	UploadLimit  int64
}

func NewInventoryController(svc *services.InventoryService, snapshots *services.SnapshotService, logger *logrus.Logger, uploadLimit int64) *InventoryController {
	return &InventoryController{InventorySvc: svc, Snapshots: snapshots, Logger: logger, UploadLimit: uploadLimit}
}

// GET /api/inventory
func (ctrl *InventoryController) GetInventory(c *gin.Context) {
	items, err := ctrl.InventorySvc.List(c.Request.Context())
	if err != nil {
		config.LogError(ctrl.Logger, "InventoryController", "GetInventory", "list inventory", nil, err)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/inventory/price
func (ctrl *InventoryController) UpsertItem(c *gin.Context) {
	var payload services.ItemUpsert
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}

	item, err := ctrl.InventorySvc.Upsert(c.Request.Context(), payload)
	if err != nil {
		config.LogError(ctrl.Logger, "InventoryController", "UpsertItem", "upsert item", payload, err)
		utils.RespondError(c, err)
		return
	}
	ctrl.Snapshots.Notify()

	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// POST /api/inventory/bulk
func (ctrl *InventoryController) BulkUpsert(c *gin.Context) {
	var payload []services.StockEntry
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return
	}
	ctrl.applyEntries(c, "BulkUpsert", payload)
}

// POST /api/inventory/import (multipart field "file")
func (ctrl *InventoryController) Import(c *gin.Context) {
	if ctrl.UploadLimit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctrl.UploadLimit+1<<20)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if ctrl.UploadLimit > 0 && fh.Size > ctrl.UploadLimit {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "file exceeds the upload limit")
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		utils.JSONError(c, http.StatusBadRequest, "invalid file type: only .xlsx files are allowed")
		return
	}

	f, err := fh.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unable to read uploaded file")
		return
	}
	defer f.Close()

	entries, err := utils.ParseInventorySheet(f)
	if err != nil {
		config.LogError(ctrl.Logger, "InventoryController", "Import", "parse sheet", fh.Filename, err)
		utils.RespondError(c, err)
		return
	}
	ctrl.applyEntries(c, "Import", entries)
}

func (ctrl *InventoryController) applyEntries(c *gin.Context, funcName string, entries []services.StockEntry) {
	n, err := ctrl.InventorySvc.UpsertBulk(c.Request.Context(), entries)
	if err != nil {
		config.LogError(ctrl.Logger, "InventoryController", funcName, "bulk upsert", len(entries), err)
		utils.RespondError(c, err)
		return
	}
	ctrl.Snapshots.Notify()

	c.JSON(http.StatusOK, gin.H{"success": true, "imported": n})
}
