package config

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the accumulator CLI
const (
	EnvStoreType     = "ACC_STORE_TYPE"
	EnvBadgerPath    = "ACC_BADGER_PATH"
	EnvRedisAddress  = "ACC_REDIS_ADDRESS"
	EnvRedisPassword = "ACC_REDIS_PASSWORD"
	EnvRedisDB       = "ACC_REDIS_DB"
	EnvHasher        = "ACC_HASHER"
	EnvVerbose       = "ACC_VERBOSE"
)

// StoreType selects the commitment store backend.
type StoreType string

func (s StoreType) String() string {
	return string(s)
}

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeBadger StoreType = "badger"
	StoreTypeRedis  StoreType = "redis"
)

// SupportedStoreTypes returns the store backends the CLI can open.
func SupportedStoreTypes() []string {
	return []string{
		StoreTypeMemory.String(),
		StoreTypeBadger.String(),
		StoreTypeRedis.String(),
	}
}

// StoreConfig selects and configures the commitment store backend.
type StoreConfig struct {
	Type          StoreType `json:"type" yaml:"type"`
	BadgerPath    string    `json:"badgerPath" yaml:"badgerPath"`
	RedisAddress  string    `json:"redisAddress" yaml:"redisAddress"`
	RedisPassword string    `json:"redisPassword" yaml:"redisPassword"`
	RedisDB       int       `json:"redisDB" yaml:"redisDB"`
}

func (sc *StoreConfig) Validate() error {
	var allErrors field.ErrorList
	switch sc.Type {
	case StoreTypeMemory:
		// No further configuration needed
	case StoreTypeBadger:
		if sc.BadgerPath == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("badgerPath"), "badgerPath is required for the badger store"))
		}
	case StoreTypeRedis:
		if sc.RedisAddress == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("redisAddress"), "redisAddress is required for the redis store"))
		}
		if sc.RedisDB < 0 || sc.RedisDB > 15 {
			allErrors = append(allErrors, field.Invalid(field.NewPath("redisDB"), sc.RedisDB, "must be between 0 and 15"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(field.NewPath("type"), string(sc.Type), SupportedStoreTypes()))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// HasherName selects the hash primitive by name.
type HasherName string

const (
	HasherKeccak256 HasherName = "keccak256"
	HasherSHA3256   HasherName = "sha3-256"
)

// SupportedHashersString returns supported hasher names for CLI help
func SupportedHashersString() string {
	return fmt.Sprintf("%s (default), %s", HasherKeccak256, HasherSHA3256)
}
