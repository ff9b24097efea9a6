package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"cafemap/backend/internal/service"
	"cafemap/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 내보내기 HTTP 핸들러
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler 생성
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPlaces 장소 목록을 Excel 로 내보내기
// GET /api/v1/export/places
func (h *ExportHandler) ExportPlaces(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportPlaces(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 다운로드 응답 헤더
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// RenderMap 카페 분포 지도 (HTML)
// GET /api/v1/export/map
func (h *ExportHandler) RenderMap(c *gin.Context) {
	buf, _, err := h.exportSvc.RenderMap(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoPlaces):
		response.NotFound(c, 16101, "내보낼 장소가 없습니다")
	default:
		response.InternalError(c)
	}
}
