package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	BaseURL         string  `validate:"required,url"`
	Port            string  `validate:"required"`
	UploadDir       string  `validate:"required"`
	MaxUploadBytes  int64   `validate:"gt=0"`
	FallbackLat     float64 `validate:"gte=-90,lte=90"`
	FallbackLng     float64 `validate:"gte=-180,lte=180"`
	LocateTimeout   time.Duration
	RefreshSchedule string
	DefaultView     DefaultViewport
	TokenSecret     string `validate:"required"`
}

// DefaultViewport is the map view used when no markers are visible. It is a
// policy value, not derived from data.
type DefaultViewport struct {
	Lat  float64 `validate:"gte=-90,lte=90"`
	Lng  float64 `validate:"gte=-180,lte=180"`
	Zoom int     `validate:"gte=1,lte=18"`
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	c := &Config{
		BaseURL:         envOr("BASE_URL", "http://localhost:3000"),
		Port:            envOr("PORT", "3000"),
		UploadDir:       envOr("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:  envInt64("MAX_UPLOAD_BYTES", 5<<20),
		FallbackLat:     envFloat("FALLBACK_LAT", 51.505),
		FallbackLng:     envFloat("FALLBACK_LNG", -0.09),
		LocateTimeout:   envDuration("LOCATE_TIMEOUT", 8*time.Second),
		RefreshSchedule: envOr("REFRESH_SCHEDULE", "@every 5m"),
		DefaultView: DefaultViewport{
			Lat:  envFloat("DEFAULT_CENTER_LAT", 28.6139),
			Lng:  envFloat("DEFAULT_CENTER_LNG", 77.2090),
			Zoom: int(envInt64("DEFAULT_ZOOM", 6)),
		},
		TokenSecret: envOr("TOKEN_SECRET", "local-dev-secret"),
	}

	if err := validator.New().Struct(c); err != nil {
		zap.S().With(err).Error("config validation failed")
	}
	return c
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		zap.S().Warnf("invalid %v=%q, using default %v", key, v, fallback)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		zap.S().Warnf("invalid %v=%q, using default %v", key, v, fallback)
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		zap.S().Warnf("invalid %v=%q, using default %v", key, v, fallback)
		return fallback
	}
	return d
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
