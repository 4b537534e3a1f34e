package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

var newBucketServiceWithConfig = gcp.NewBucketServiceWithConfig

type StorageBootstrapErrorCode string

const (
	StorageBootstrapInvalidMode          StorageBootstrapErrorCode = "invalid_mode"
	StorageBootstrapMissingEmulatorHost  StorageBootstrapErrorCode = "missing_emulator_host"
	StorageBootstrapInvalidEmulatorHost  StorageBootstrapErrorCode = "invalid_emulator_host"
	StorageBootstrapInvalidPublicBaseURL StorageBootstrapErrorCode = "invalid_public_base_url"
	StorageBootstrapMissingBucket        StorageBootstrapErrorCode = "missing_bucket"
	StorageBootstrapConnectFailed        StorageBootstrapErrorCode = "connect_failed"
)

// StorageBootstrapError reports why the bucket service could not start.
type StorageBootstrapError struct {
	Code         StorageBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf("object storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code, e.Mode, e.EmulatorHost, e.Cause)
}

func (e *StorageBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// objectStorageConfig resolves the configured mode. A blank mode selects the
// emulator when an emulator host is set, gcs otherwise.
func objectStorageConfig(cfg StorageConfig) gcp.ObjectStorageConfig {
	out := gcp.ObjectStorageConfig{
		Mode:          gcp.ObjectStorageMode(strings.ToLower(strings.TrimSpace(cfg.Mode))),
		EmulatorHost:  strings.TrimSpace(cfg.EmulatorHost),
		PublicBaseURL: strings.TrimSpace(cfg.PublicBaseURL),
		Buckets:       gcp.BucketsFromEnv(),
	}
	if out.Mode == "" {
		if out.EmulatorHost != "" {
			out.Mode = gcp.ObjectStorageModeGCSEmulator
			out.CompatibilityFallback = true
		} else {
			out.Mode = gcp.ObjectStorageModeGCS
		}
	}
	return out
}

func resolveBucketService(log *logger.Logger, cfg StorageConfig) (gcp.BucketService, error) {
	storageCfg := objectStorageConfig(cfg)
	fields := []interface{}{
		"mode", storageCfg.Mode,
		"mode_source", storageCfg.ModeSource(),
		"emulator_host", storageCfg.EmulatorHost,
	}

	if !gcp.IsSupportedObjectStorageMode(storageCfg.Mode) {
		err := &StorageBootstrapError{
			Code:         StorageBootstrapInvalidMode,
			Mode:         string(storageCfg.Mode),
			EmulatorHost: storageCfg.EmulatorHost,
			Cause:        fmt.Errorf("unsupported object storage mode %q", storageCfg.Mode),
		}
		log.Error("Object storage provider selection failed", append(fields, "error_code", err.Code, "error", err)...)
		return nil, err
	}
	log.Info("Selecting object storage provider", fields...)

	bucket, err := newBucketServiceWithConfig(log, storageCfg)
	if err != nil {
		classified := classifyStorageBootstrapError(storageCfg, err)
		log.Error("Object storage provider bootstrap failed", append(fields, "error_code", classified.Code, "error", classified)...)
		return nil, classified
	}
	return bucket, nil
}

var configErrorCodes = map[gcp.ObjectStorageConfigErrorCode]StorageBootstrapErrorCode{
	gcp.ObjectStorageConfigErrorInvalidMode:          StorageBootstrapInvalidMode,
	gcp.ObjectStorageConfigErrorMissingEmulatorHost:  StorageBootstrapMissingEmulatorHost,
	gcp.ObjectStorageConfigErrorInvalidEmulatorHost:  StorageBootstrapInvalidEmulatorHost,
	gcp.ObjectStorageConfigErrorInvalidPublicBaseURL: StorageBootstrapInvalidPublicBaseURL,
	gcp.ObjectStorageConfigErrorMissingBucket:        StorageBootstrapMissingBucket,
}

func classifyStorageBootstrapError(storageCfg gcp.ObjectStorageConfig, err error) *StorageBootstrapError {
	out := &StorageBootstrapError{
		Code:         StorageBootstrapConnectFailed,
		Mode:         string(storageCfg.Mode),
		EmulatorHost: storageCfg.EmulatorHost,
		Cause:        err,
	}
	var cfgErr *gcp.ObjectStorageConfigError
	if errors.As(err, &cfgErr) {
		if code, ok := configErrorCodes[cfgErr.Code]; ok {
			out.Code = code
		}
	}
	return out
}
