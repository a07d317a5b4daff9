package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/exporter"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/model"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/session"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/view"
)

// hintNoDaySheets shown when an uploaded workbook has no ddmmyyyy sheets.
const hintNoDaySheets = "Não encontrei abas de dia (ex: 29042025). Verifique o padrão do arquivo."

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers the API surface: one session per uploaded workbook.
type Handlers struct {
	mode      model.ExtractionMode
	maxUpload int64
	log       *logrus.Logger

	sessions   map[string]*session.Session
	sessionsMu sync.RWMutex
}

// NewHandlers creates the handler set.
func NewHandlers(mode model.ExtractionMode, maxUpload int64, log *logrus.Logger) *Handlers {
	return &Handlers{
		mode:      mode,
		maxUpload: maxUpload,
		log:       log,
		sessions:  make(map[string]*session.Session),
	}
}

// Response common envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// RegisterRoutes mounts the API under the given group.
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", h.UploadWorkbook)

	router.GET("/sessions/:sessionId/days", h.ListDays)
	router.GET("/sessions/:sessionId/days/:day/filters", h.DayFilters)
	router.GET("/sessions/:sessionId/view", h.GetView)
	router.GET("/sessions/:sessionId/export/xlsx", h.ExportXlsx)
	router.GET("/sessions/:sessionId/export/document", h.ExportDocument)
	router.DELETE("/sessions/:sessionId", h.CloseSession)
}

// UploadWorkbook loads an uploaded workbook into a fresh session. Malformed
// workbook bytes are the one hard failure; a workbook without day sheets is
// a hint, not an error.
func (h *Handlers) UploadWorkbook(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "Envie um arquivo no campo 'file'")
		return
	}
	defer file.Close()

	if header.Size > h.maxUpload {
		errorResponse(c, 1003, "Arquivo muito grande")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		errorResponse(c, 1002, "Apenas arquivos .xlsx e .xls são suportados")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1002, "Falha ao ler o arquivo")
		return
	}

	sess, err := session.New(content, h.mode)
	if err != nil {
		errorResponse(c, 1002, "Arquivo inválido: "+err.Error())
		return
	}

	h.sessionsMu.Lock()
	h.sessions[sess.ID()] = sess
	h.sessionsMu.Unlock()

	days := sess.Days()
	hint := ""
	if len(days) == 0 {
		hint = hintNoDaySheets
	}

	h.log.WithFields(logrus.Fields{
		"session":  sess.ID(),
		"fileName": header.Filename,
		"days":     len(days),
	}).Info("workbook loaded")

	success(c, gin.H{
		"sessionId": sess.ID(),
		"fileName":  header.Filename,
		"days":      days,
		"hint":      hint,
	})
}

func (h *Handlers) getSession(c *gin.Context) (*session.Session, bool) {
	id := c.Param("sessionId")

	h.sessionsMu.RLock()
	sess, ok := h.sessions[id]
	h.sessionsMu.RUnlock()

	if !ok {
		errorResponse(c, 2001, "Sessão não encontrada ou expirada")
		return nil, false
	}
	return sess, true
}

// ListDays the workbook's day sheets as labeled options.
func (h *Handlers) ListDays(c *gin.Context) {
	sess, ok := h.getSession(c)
	if !ok {
		return
	}
	success(c, gin.H{"days": sess.Days()})
}

// DayFilters the distinct filter values for one day.
func (h *Handlers) DayFilters(c *gin.Context) {
	sess, ok := h.getSession(c)
	if !ok {
		return
	}
	success(c, view.FiltersForDay(sess, c.Param("day")))
}

func filtersFromQuery(c *gin.Context) model.Filters {
	return model.Filters{
		Day:        strings.TrimSpace(c.Query("day")),
		Technician: c.Query("tecnico"),
		Motive:     c.Query("motivo"),
		Period:     c.Query("periodo"),
		Query:      c.Query("q"),
	}
}

// GetView the composed view for the given filters.
func (h *Handlers) GetView(c *gin.Context) {
	sess, ok := h.getSession(c)
	if !ok {
		return
	}
	success(c, view.Compose(sess, filtersFromQuery(c)))
}

// ExportXlsx streams the two-sheet report workbook for the given filters.
func (h *Handlers) ExportXlsx(c *gin.Context) {
	sess, ok := h.getSession(c)
	if !ok {
		return
	}

	filters := filtersFromQuery(c)
	v := view.Compose(sess, filters)
	if v.KPI == nil {
		errorResponse(c, 4001, "Selecione um dia antes de exportar")
		return
	}

	f, err := exporter.BuildWorkbook(v, filters.Day)
	if err != nil {
		h.log.WithError(err).Error("xlsx export failed")
		errorResponse(c, 4002, "Falha ao gerar o relatório")
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.log.WithError(err).Error("xlsx export failed")
		errorResponse(c, 4002, "Falha ao gerar o relatório")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exporter.XlsxFilename(filters.Day)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportDocument returns the paginated document model consumed by the
// client-side PDF renderer.
func (h *Handlers) ExportDocument(c *gin.Context) {
	sess, ok := h.getSession(c)
	if !ok {
		return
	}

	filters := filtersFromQuery(c)
	v := view.Compose(sess, filters)
	if v.KPI == nil {
		errorResponse(c, 4001, "Selecione um dia antes de exportar")
		return
	}

	success(c, exporter.BuildDocument(v, filters.Day))
}

// CloseSession discards a session and its workbook.
func (h *Handlers) CloseSession(c *gin.Context) {
	id := c.Param("sessionId")

	h.sessionsMu.Lock()
	sess, ok := h.sessions[id]
	delete(h.sessions, id)
	h.sessionsMu.Unlock()

	if ok {
		_ = sess.Close()
	}
	success(c, gin.H{"closed": ok})
}
