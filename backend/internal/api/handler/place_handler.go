package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cafemap/backend/internal/dto"
	"cafemap/backend/internal/service"
	"cafemap/backend/pkg/response"
)

// PlaceHandler 장소 조회/수집 HTTP 핸들러
type PlaceHandler struct {
	placeSvc   service.PlaceService
	collectSvc service.CollectService
}

// NewPlaceHandler PlaceHandler 생성
func NewPlaceHandler(placeSvc service.PlaceService, collectSvc service.CollectService) *PlaceHandler {
	return &PlaceHandler{placeSvc: placeSvc, collectSvc: collectSvc}
}

// ListPlaces 지도 범위 내 카페 + 최신 영업 상태
// GET /api/v1/places?lat=&lng=&radius=
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	var q dto.ListPlacesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "lat/lng/radius 파라미터가 올바르지 않습니다")
		return
	}

	result, err := h.placeSvc.ListPlaces(c.Request.Context(), &q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetPlace 장소 단건 조회
// GET /api/v1/places/:id
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	kakaoID := c.Param("id")

	result, err := h.placeSvc.GetPlace(c.Request.Context(), kakaoID)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.NotFound(c, 12001, "존재하지 않는 장소입니다")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListStatusLogs 영업 상태 판정 로그
// GET /api/v1/places/status-logs?limit=&order=
func (h *PlaceHandler) ListStatusLogs(c *gin.Context) {
	var q dto.StatusLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "limit/order 파라미터가 올바르지 않습니다")
		return
	}

	result, err := h.placeSvc.ListStatusLogs(c.Request.Context(), &q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List24h 24시간 카페 목록
// GET /api/v1/places/24h
func (h *PlaceHandler) List24h(c *gin.Context) {
	result, err := h.placeSvc.List24h(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ── 수집 (admin 전용, 라우터에서 RoleAuth) ──

// CollectPlaces 카페 목록 수집 실행
// POST /api/v1/collect/places
func (h *PlaceHandler) CollectPlaces(c *gin.Context) {
	var req dto.CollectPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	// 미지정 값은 0 으로 넘기면 Service 가 설정된 기준점으로 채운다
	var lat, lng float64
	var radius int
	if req.Lat != nil {
		lat = *req.Lat
	}
	if req.Lng != nil {
		lng = *req.Lng
	}
	if req.Radius != nil {
		radius = int(*req.Radius)
	}

	result, err := h.collectSvc.CollectPlaces(c.Request.Context(), lat, lng, radius)
	if err != nil {
		response.Error(c, 502, 13001, "카카오 API 수집에 실패했습니다")
		return
	}

	response.OK(c, result)
}

// CollectDetails panel3 스냅샷 수집 실행
// POST /api/v1/collect/details
func (h *PlaceHandler) CollectDetails(c *gin.Context) {
	result, err := h.collectSvc.CollectDetails(c.Request.Context())
	if err != nil {
		response.Error(c, 502, 13002, "상세 스냅샷 수집에 실패했습니다")
		return
	}

	response.OK(c, result)
}

// RefreshStatus 저장된 스냅샷으로 영업 상태 재판정
// POST /api/v1/collect/refresh
func (h *PlaceHandler) RefreshStatus(c *gin.Context) {
	result, err := h.collectSvc.RefreshStatus(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
