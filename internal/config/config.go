// internal/config/config.go
package config

import (
	"fmt"
	"math"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Events   EventsConfig
	Storage  StorageConfig
	Slotting SlottingConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	AnalysisTTLSeconds int
}

type EventsConfig struct {
	Enabled       bool
	ChannelPrefix string
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// SlottingConfig groups the tunable parameters of the slotting core so that
// weights and the cost model can be adjusted per deployment instead of living
// as package-level constants.
type SlottingConfig struct {
	Weights SlottingWeights
	Costs   SlottingCosts
	Workers int
}

// SlottingWeights are the scoring weights for a (product, location) pair.
// Validate requires them to sum to 1.0.
type SlottingWeights struct {
	Velocity        float64
	ABCClass        float64
	PickFrequency   float64
	SpaceEfficiency float64
	Ergonomics      float64

	// UseParetoABC switches ABC classification from the demand thresholds to a
	// cumulative-value Pareto split (80%/95% bands).
	UseParetoABC bool
}

// Validate checks that the five weights sum to 1.0 within a small epsilon.
func (w SlottingWeights) Validate() error {
	sum := w.Velocity + w.ABCClass + w.PickFrequency + w.SpaceEfficiency + w.Ergonomics
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("slotting weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}

// SlottingCosts is the economic model behind move ROI estimates.
type SlottingCosts struct {
	PickerHourlyRate        float64 // labor cost of picking, per hour
	ForkliftHourlyRate      float64 // cost of forklift + operator, per hour
	FixedMoveCostPerPallet  float64 // handling overhead per pallet moved
	PickTimePerMeterMin     float64 // minutes of pick travel saved per meter
	MoveMinutesPerMeter     float64 // minutes of forklift travel per meter moved
	MoveFixedMinutes        float64 // setup/teardown minutes per move
	PriorityNetBenefitFloor float64 // net benefit above which priority gets a bump
	AnnualPickVolume        float64 // estimated picks per year, simulation only
}

// DefaultWeights returns the production scoring weights.
func DefaultWeights() SlottingWeights {
	return SlottingWeights{
		Velocity:        0.40,
		ABCClass:        0.25,
		PickFrequency:   0.20,
		SpaceEfficiency: 0.10,
		Ergonomics:      0.05,
	}
}

// DefaultCosts returns the default economic model.
func DefaultCosts() SlottingCosts {
	return SlottingCosts{
		PickerHourlyRate:        25,
		ForkliftHourlyRate:      45,
		FixedMoveCostPerPallet:  12.5,
		PickTimePerMeterMin:     0.02,
		MoveMinutesPerMeter:     0.5,
		MoveFixedMinutes:        15,
		PriorityNetBenefitFloor: 1000,
		AnnualPickVolume:        500000,
	}
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "slotting")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_ANALYSIS_TTL_SECONDS", 300)
		viper.SetDefault("EVENTS_ENABLED", false)
		viper.SetDefault("EVENTS_CHANNEL_PREFIX", "slotting")
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("SLOTTING_WORKERS", 8)
		viper.SetDefault("SLOTTING_WEIGHT_VELOCITY", 0.40)
		viper.SetDefault("SLOTTING_WEIGHT_ABC", 0.25)
		viper.SetDefault("SLOTTING_WEIGHT_PICK_FREQUENCY", 0.20)
		viper.SetDefault("SLOTTING_WEIGHT_SPACE", 0.10)
		viper.SetDefault("SLOTTING_WEIGHT_ERGONOMICS", 0.05)
		viper.SetDefault("SLOTTING_USE_PARETO_ABC", false)
		viper.SetDefault("SLOTTING_PICKER_HOURLY_RATE", 25.0)
		viper.SetDefault("SLOTTING_FORKLIFT_HOURLY_RATE", 45.0)
		viper.SetDefault("SLOTTING_FIXED_MOVE_COST", 12.5)
		viper.SetDefault("SLOTTING_PICK_TIME_PER_METER_MIN", 0.02)
		viper.SetDefault("SLOTTING_MOVE_MINUTES_PER_METER", 0.5)
		viper.SetDefault("SLOTTING_MOVE_FIXED_MINUTES", 15.0)
		viper.SetDefault("SLOTTING_PRIORITY_NET_BENEFIT_FLOOR", 1000.0)
		viper.SetDefault("SLOTTING_ANNUAL_PICK_VOLUME", 500000.0)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				AnalysisTTLSeconds: viper.GetInt("CACHE_ANALYSIS_TTL_SECONDS"),
			},
			Events: EventsConfig{
				Enabled:       viper.GetBool("EVENTS_ENABLED"),
				ChannelPrefix: viper.GetString("EVENTS_CHANNEL_PREFIX"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Slotting: SlottingConfig{
				Workers: viper.GetInt("SLOTTING_WORKERS"),
				Weights: SlottingWeights{
					Velocity:        viper.GetFloat64("SLOTTING_WEIGHT_VELOCITY"),
					ABCClass:        viper.GetFloat64("SLOTTING_WEIGHT_ABC"),
					PickFrequency:   viper.GetFloat64("SLOTTING_WEIGHT_PICK_FREQUENCY"),
					SpaceEfficiency: viper.GetFloat64("SLOTTING_WEIGHT_SPACE"),
					Ergonomics:      viper.GetFloat64("SLOTTING_WEIGHT_ERGONOMICS"),
					UseParetoABC:    viper.GetBool("SLOTTING_USE_PARETO_ABC"),
				},
				Costs: SlottingCosts{
					PickerHourlyRate:        viper.GetFloat64("SLOTTING_PICKER_HOURLY_RATE"),
					ForkliftHourlyRate:      viper.GetFloat64("SLOTTING_FORKLIFT_HOURLY_RATE"),
					FixedMoveCostPerPallet:  viper.GetFloat64("SLOTTING_FIXED_MOVE_COST"),
					PickTimePerMeterMin:     viper.GetFloat64("SLOTTING_PICK_TIME_PER_METER_MIN"),
					MoveMinutesPerMeter:     viper.GetFloat64("SLOTTING_MOVE_MINUTES_PER_METER"),
					MoveFixedMinutes:        viper.GetFloat64("SLOTTING_MOVE_FIXED_MINUTES"),
					PriorityNetBenefitFloor: viper.GetFloat64("SLOTTING_PRIORITY_NET_BENEFIT_FLOOR"),
					AnnualPickVolume:        viper.GetFloat64("SLOTTING_ANNUAL_PICK_VOLUME"),
				},
			},
		}
	})

	return instance
}
