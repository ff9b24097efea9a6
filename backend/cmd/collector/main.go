package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cafemap/backend/config"
	"cafemap/backend/internal/kakao"
	"cafemap/backend/internal/repository"
	"cafemap/backend/internal/service"
	"cafemap/backend/pkg/database"
	applogger "cafemap/backend/pkg/logger"
)

// collector 수집 파이프라인 CLI. HTTP 서버 없이 장소 검색·상세 수집·상태 갱신을
// 단발 또는 주기 실행한다.

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	collect service.CollectService
	cleanup func()
}

func newApp(configPath string) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("로거 초기화 실패: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return nil, fmt.Errorf("마이그레이션 실패: %w", err)
	}

	repo := repository.NewRepository(db)
	kakaoClient := kakao.NewClient(&cfg.Kakao, logger)
	// 수집 CLI는 캐시 없이 동작한다 (rdb=nil → 상태 캐시 생략)
	collect := service.NewCollectService(cfg, repo, nil, kakaoClient, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		collect: collect,
		cleanup: func() {
			if closeDB, _ := db.DB(); closeDB != nil {
				closeDB.Close()
			}
			logger.Sync()
		},
	}, nil
}

// signalContext SIGINT/SIGTERM 수신 시 취소되는 컨텍스트
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	var (
		configPath string
		lat        float64
		lng        float64
		radius     int
		interval   time.Duration
	)

	root := &cobra.Command{
		Use:   "collector",
		Short: "카페 수집 파이프라인 CLI",
		Long:  "카카오 검색으로 카페를 수집하고, 상세 패널을 긁어와 영업 상태를 갱신한다.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "설정 파일 경로")

	placesCmd := &cobra.Command{
		Use:   "places",
		Short: "반경 내 카페 검색 후 DB 저장",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.cleanup()

			ctx, cancel := signalContext()
			defer cancel()

			res, err := a.collect.CollectPlaces(ctx, lat, lng, radius)
			if err != nil {
				return err
			}
			a.logger.Info("장소 수집 완료",
				zap.Int("requested", res.Requested),
				zap.Int("succeeded", res.Succeeded),
				zap.Int("failed", res.Failed),
			)
			return nil
		},
	}
	placesCmd.Flags().Float64Var(&lat, "lat", 0, "중심 위도 (미지정 시 설정값)")
	placesCmd.Flags().Float64Var(&lng, "lng", 0, "중심 경도 (미지정 시 설정값)")
	placesCmd.Flags().IntVar(&radius, "radius", 0, "반경(m, 미지정 시 설정값)")

	detailsCmd := &cobra.Command{
		Use:   "details",
		Short: "저장된 카페의 상세 패널 수집",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.cleanup()

			ctx, cancel := signalContext()
			defer cancel()

			res, err := a.collect.CollectDetails(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("상세 수집 완료",
				zap.Int("requested", res.Requested),
				zap.Int("succeeded", res.Succeeded),
				zap.Int("failed", res.Failed),
			)
			return nil
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "영업 상태 로그 갱신",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.cleanup()

			ctx, cancel := signalContext()
			defer cancel()

			run := func() error {
				res, err := a.collect.RefreshStatus(ctx)
				if err != nil {
					return err
				}
				a.logger.Info("상태 갱신 완료",
					zap.Int("refreshed", res.Refreshed),
					zap.Int("skipped", res.Skipped),
				)
				return nil
			}

			if err := run(); err != nil {
				return err
			}
			if interval <= 0 {
				return nil
			}

			// 주기 실행 모드
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			a.logger.Info("주기 갱신 시작", zap.Duration("interval", interval))
			for {
				select {
				case <-ctx.Done():
					a.logger.Info("종료 신호 수신")
					return nil
				case <-ticker.C:
					if err := run(); err != nil {
						a.logger.Error("상태 갱신 실패", zap.Error(err))
					}
				}
			}
		},
	}
	refreshCmd.Flags().DurationVar(&interval, "interval", 0, "주기 실행 간격 (예: 10m, 0이면 1회)")

	root.AddCommand(placesCmd, detailsCmd, refreshCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
