package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Media  MediaConfig
	FFmpeg FFmpegConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type MediaConfig struct {
	Root              string
	UploadMaxBytes    int64
	AllowedAudioTypes []string
}

type FFmpegConfig struct {
	Bin          string
	Convert      bool
	TargetFormat string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	mediaRoot := viper.GetString("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "media"
	}

	uploadMax := viper.GetInt64("UPLOAD_MAX_BYTES")
	if uploadMax <= 0 {
		uploadMax = 10 << 20 // 10MB
	}

	allowedTypes := viper.GetString("ALLOWED_AUDIO_TYPES")
	if allowedTypes == "" {
		allowedTypes = "audio/mpeg,audio/mp4,audio/x-m4a,audio/wav,audio/x-wav,audio/webm,audio/ogg"
	}

	ffmpegBin := viper.GetString("FFMPEG_BIN")
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}

	targetFormat := viper.GetString("FFMPEG_TARGET_FORMAT")
	if targetFormat == "" {
		targetFormat = "mp3"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Media: MediaConfig{
			Root:              mediaRoot,
			UploadMaxBytes:    uploadMax,
			AllowedAudioTypes: strings.Split(allowedTypes, ","),
		},
		FFmpeg: FFmpegConfig{
			Bin:          ffmpegBin,
			Convert:      viper.GetBool("FFMPEG_CONVERT"),
			TargetFormat: targetFormat,
		},
	}

	return config, nil
}
