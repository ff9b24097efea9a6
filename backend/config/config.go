package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 애플리케이션 전역 설정
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Kakao    KakaoConfig    `mapstructure:"kakao"`
	Collect  CollectConfig  `mapstructure:"collect"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 서버 설정
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig 교차 출처 설정
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 설정
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN PostgreSQL 연결 문자열 생성
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 설정
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 인증 설정
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// KakaoConfig 카카오 API 설정
type KakaoConfig struct {
	RESTKey      string        `mapstructure:"rest_key"`
	PanelCookie  string        `mapstructure:"panel_cookie"`
	LocalBaseURL string        `mapstructure:"local_base_url"`
	PanelBaseURL string        `mapstructure:"panel_base_url"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
	PageSize     int           `mapstructure:"page_size"`
	MaxPages     int           `mapstructure:"max_pages"`
	PageSleep    time.Duration `mapstructure:"page_sleep"`
}

// CollectConfig 수집 작업 설정
type CollectConfig struct {
	HomeLat      float64       `mapstructure:"home_lat"`
	HomeLng      float64       `mapstructure:"home_lng"`
	RadiusM      int           `mapstructure:"radius_m"`
	DetailLimit  int           `mapstructure:"detail_limit"`
	Workers      int           `mapstructure:"workers"`
	RequestSleep time.Duration `mapstructure:"request_sleep"`
}

// LogConfig 로그 설정
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 설정 파일과 환경 변수에서 설정을 읽는다.
// 우선순위: 환경 변수 > 설정 파일 > 기본값
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 기본값 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "cafemap")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Seoul")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")

	v.SetDefault("kakao.local_base_url", "https://dapi.kakao.com")
	v.SetDefault("kakao.panel_base_url", "https://place-api.map.kakao.com")
	v.SetDefault("kakao.http_timeout", "20s")
	v.SetDefault("kakao.page_size", 15)
	v.SetDefault("kakao.max_pages", 10)
	v.SetDefault("kakao.page_sleep", "200ms")

	// 수집 기준점(집 좌표)과 반경
	v.SetDefault("collect.home_lat", 37.5477)
	v.SetDefault("collect.home_lng", 126.9225)
	v.SetDefault("collect.radius_m", 1000)
	v.SetDefault("collect.detail_limit", 200)
	v.SetDefault("collect.workers", 12)
	v.SetDefault("collect.request_sleep", "200ms")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 설정 파일 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 환경 변수 (.env는 main에서 godotenv로 선로드) ──
	v.SetEnvPrefix("CAFEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("설정 파일 읽기 실패: %w", err)
		}
		// 설정 파일이 없으면 기본값과 환경 변수만 사용
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("설정 파싱 실패: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 핵심 설정값 검증
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("설정 검증 실패: auth.jwt_secret 필요")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("설정 검증 실패: auth.jwt_secret은 16자 이상이어야 함")
	}
	if c.Kakao.RESTKey == "" {
		return fmt.Errorf("설정 검증 실패: kakao.rest_key 필요 (환경 변수 CAFEMAP_KAKAO_REST_KEY)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("설정 검증 실패: server.port는 1-65535 범위여야 함")
	}
	if c.Collect.Workers <= 0 {
		return fmt.Errorf("설정 검증 실패: collect.workers는 1 이상이어야 함")
	}
	return nil
}
