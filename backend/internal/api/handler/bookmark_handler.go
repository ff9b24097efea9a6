package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cafemap/backend/internal/dto"
	"cafemap/backend/internal/service"
	"cafemap/backend/pkg/response"
)

// BookmarkHandler 북마크 HTTP 핸들러
type BookmarkHandler struct {
	bookmarkSvc service.BookmarkService
	calendarSvc service.CalendarService
}

// NewBookmarkHandler BookmarkHandler 생성
func NewBookmarkHandler(bookmarkSvc service.BookmarkService, calendarSvc service.CalendarService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkSvc: bookmarkSvc, calendarSvc: calendarSvc}
}

// Create 북마크 생성 (중복이면 기존 북마크 반환)
// POST /api/v1/bookmarks
func (h *BookmarkHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	result, err := h.bookmarkSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			response.NotFound(c, 12001, "존재하지 않는 장소입니다")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// List 내 북마크 목록
// GET /api/v1/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.bookmarkSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateMemo 북마크 메모 수정
// PATCH /api/v1/bookmarks/:id
func (h *BookmarkHandler) UpdateMemo(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "요청 파라미터가 올바르지 않습니다")
		return
	}

	result, err := h.bookmarkSvc.UpdateMemo(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleBookmarkError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 북마크 삭제
// DELETE /api/v1/bookmarks/:id
func (h *BookmarkHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.bookmarkSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleBookmarkError(c, err)
		return
	}

	response.OK(c, nil)
}

// Calendar 북마크 캘린더 피드 (.ics)
// GET /api/v1/bookmarks/calendar
func (h *BookmarkHandler) Calendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.calendarSvc.BookmarkCalendar(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *BookmarkHandler) handleBookmarkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookmarkNotFound):
		response.NotFound(c, 12101, "존재하지 않는 북마크입니다")
	case errors.Is(err, service.ErrNotBookmarkOwner):
		response.Forbidden(c, 12102, "본인의 북마크만 변경할 수 있습니다")
	default:
		response.InternalError(c)
	}
}
