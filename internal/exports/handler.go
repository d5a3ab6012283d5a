package exports

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"callcampaign_backend/platform/httpkit"
	"callcampaign_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler exposes the export download endpoints.
type Handler struct {
	svc *Service
	log *logger.Logger
}

// NewHandler creates the exports handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// LeadsXLSX handles GET /exports/leads.xlsx.
func (h *Handler) LeadsXLSX(c *gin.Context) {
	rows, err := h.svc.Leads(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	h.sendXLSX(c, "leads", "Leads", rows)
}

// LeadsCSV handles GET /exports/leads.csv.
func (h *Handler) LeadsCSV(c *gin.Context) {
	rows, err := h.svc.Leads(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	h.sendCSV(c, "leads", rows)
}

// CampaignLeadsXLSX handles GET /campaigns/:id/leads.xlsx.
func (h *Handler) CampaignLeadsXLSX(c *gin.Context) {
	campaignID, name, rows, ok := h.campaignRows(c)
	if !ok {
		return
	}
	h.sendXLSX(c, "campaign-"+campaignID.String(), name, rows)
}

// CampaignLeadsCSV handles GET /campaigns/:id/leads.csv.
func (h *Handler) CampaignLeadsCSV(c *gin.Context) {
	campaignID, _, rows, ok := h.campaignRows(c)
	if !ok {
		return
	}
	h.sendCSV(c, "campaign-"+campaignID.String(), rows)
}

func (h *Handler) campaignRows(c *gin.Context) (uuid.UUID, string, []Row, bool) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return uuid.Nil, "", nil, false
	}

	name, rows, err := h.svc.CampaignLeads(c.Request.Context(), campaignID)
	if err != nil {
		httpkit.HandleError(c, err)
		return uuid.Nil, "", nil, false
	}
	return campaignID, name, rows, true
}

func (h *Handler) sendXLSX(c *gin.Context, baseName, sheetName string, rows []Row) {
	fileName := exportFileName(baseName, "xlsx")
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := WriteXLSX(c.Writer, sanitizeSheetName(sheetName), rows); err != nil {
		// Headers are already gone; all we can do is log.
		h.log.Error("export_write_failed", "format", "xlsx", "error", err.Error())
	}
}

func (h *Handler) sendCSV(c *gin.Context, baseName string, rows []Row) {
	fileName := exportFileName(baseName, "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := WriteCSV(c.Writer, rows); err != nil {
		h.log.Error("export_write_failed", "format", "csv", "error", err.Error())
	}
}

func exportFileName(base, ext string) string {
	return fmt.Sprintf("%s-%s.%s", base, time.Now().Format("2006-01-02"), ext)
}

// sanitizeSheetName keeps the sheet title inside the workbook format's
// 31-character limit and strips characters it forbids.
func sanitizeSheetName(name string) string {
	if name == "" {
		return "Export"
	}
	replacer := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		return "Export"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
