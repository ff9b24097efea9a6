package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"cafemap/backend/internal/dto"
)

func TestBookmarkCreate_Success(t *testing.T) {
	repo, places, _, _, _, _ := newTestRepo()
	svc := NewBookmarkService(repo, zap.NewNop())
	ctx := context.Background()

	seedPlace(t, places, "100", "단골카페", 37.5480, 126.9220)

	resp, err := svc.Create(ctx, "user-1", &dto.CreateBookmarkRequest{PlaceID: "100", Memo: "2층 창가"})
	if err != nil {
		t.Fatalf("Create 실패: %v", err)
	}
	if resp.BookmarkID == "" {
		t.Error("BookmarkID 가 발급되어야 함")
	}
	if resp.Memo != "2층 창가" {
		t.Errorf("메모 불일치: %s", resp.Memo)
	}
	if resp.Place.Name == nil || *resp.Place.Name != "단골카페" {
		t.Error("장소 정보가 포함되어야 함")
	}
}

func TestBookmarkCreate_DuplicateReturnsExisting(t *testing.T) {
	repo, places, _, _, _, _ := newTestRepo()
	svc := NewBookmarkService(repo, zap.NewNop())
	ctx := context.Background()

	seedPlace(t, places, "100", "단골카페", 37.5480, 126.9220)

	first, err := svc.Create(ctx, "user-1", &dto.CreateBookmarkRequest{PlaceID: "100", Memo: "원래 메모"})
	if err != nil {
		t.Fatalf("첫 Create 실패: %v", err)
	}
	second, err := svc.Create(ctx, "user-1", &dto.CreateBookmarkRequest{PlaceID: "100", Memo: "다른 메모"})
	if err != nil {
		t.Fatalf("중복 Create 는 에러가 아니어야 함: %v", err)
	}
	if first.BookmarkID != second.BookmarkID {
		t.Error("중복 생성은 기존 북마크를 돌려줘야 함")
	}
	if second.Memo != "원래 메모" {
		t.Errorf("기존 메모가 유지되어야 함, 실제=%s", second.Memo)
	}
}

func TestBookmarkCreate_PlaceNotFound(t *testing.T) {
	repo, _, _, _, _, _ := newTestRepo()
	svc := NewBookmarkService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), "user-1", &dto.CreateBookmarkRequest{PlaceID: "999"})
	if !errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("ErrPlaceNotFound 기대, 실제: %v", err)
	}
}

func TestBookmarkList_OnlyMine(t *testing.T) {
	repo, places, _, _, _, _ := newTestRepo()
	svc := NewBookmarkService(repo, zap.NewNop())
	ctx := context.Background()

	seedPlace(t, places, "100", "카페A", 37.54, 126.92)
	seedPlace(t, places, "200", "카페B", 37.55, 126.93)

	svc.Create(ctx, "user-1", &dto.CreateBookmarkRequest{PlaceID: "100"})
	svc.Create(ctx, "user-2", &dto.CreateBookmarkRequest{PlaceID: "200"})

	result, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List 실패: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("내 북마크 1건 기대, %d건", len(result))
	}
	if result[0].Place.KakaoID != "100" {
		t.Errorf("KakaoID=100 기대, 실제=%s", result[0].Place.KakaoID)
	}
}

func TestBookmarkUpdateMemo_OwnerOnly(t *testing.T) {
	repo, places, _, _, _, _ := newTestRepo()
	svc := NewBookmarkService(repo, zap.NewNop())
	ctx := context.Background()

	seedPlace(t, places, "100", "카페A", 37.54, 126.92)
	created, err := svc.Create(ctx, "user-1", &dto.CreateBookmarkRequest{PlaceID: "100", Memo: "처음"})
	if err != nil {
		t.Fatalf("Create 실패: %v", err)
	}

	// 남의 북마크 수정 시도
	_, err = svc.UpdateMemo(ctx, "user-2", created.BookmarkID, &dto.UpdateMemoRequest{Memo: "해킹"})
	if !errors.Is(err, ErrNotBookmarkOwner) {
		t.Errorf("ErrNotBookmarkOwner 기대, 실제: %v", err)
	}

	// 본인 수정
	updated, err := svc.UpdateMemo(ctx, "user-1", created.BookmarkID, &dto.UpdateMemoRequest{Memo: "수정됨"})
	if err != nil {
		t.Fatalf("UpdateMemo 실패: %v", err)
	}
	if updated.Memo != "수정됨" {
		t.Errorf("메모 수정 반영 안 됨: %s", updated.Memo)
	}
}

func TestBookmarkDelete(t *testing.T) {
	repo, places, _, _, _, _ := newTestRepo()
	svc := NewBookmarkService(repo, zap.NewNop())
	ctx := context.Background()

	seedPlace(t, places, "100", "카페A", 37.54, 126.92)
	created, err := svc.Create(ctx, "user-1", &dto.CreateBookmarkRequest{PlaceID: "100"})
	if err != nil {
		t.Fatalf("Create 실패: %v", err)
	}

	// 남의 삭제는 거부
	if err := svc.Delete(ctx, "user-2", created.BookmarkID); !errors.Is(err, ErrNotBookmarkOwner) {
		t.Errorf("ErrNotBookmarkOwner 기대, 실제: %v", err)
	}

	if err := svc.Delete(ctx, "user-1", created.BookmarkID); err != nil {
		t.Fatalf("Delete 실패: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", created.BookmarkID); !errors.Is(err, ErrBookmarkNotFound) {
		t.Errorf("재삭제는 ErrBookmarkNotFound 여야 함, 실제: %v", err)
	}
}
