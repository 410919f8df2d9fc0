package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"clinic-backend/config"

	"github.com/sirupsen/logrus"
)

// ErrConversionFailed is returned when the external encoder exits non-zero or
// produces an empty output file.
var ErrConversionFailed = errors.New("audio conversion failed")

// AudioConverter converts an uploaded audio file to the canonical encoding.
// Convert writes its output to dstPath and must leave no other artifacts
// behind on either the success or the failure path.
type AudioConverter interface {
	Convert(ctx context.Context, srcPath, dstPath string) error
	TargetFormat() string
	ContentType() string
}

type ffmpegConverter struct {
	cfg config.FFmpegConfig
	log *logrus.Logger
}

func NewFFmpegConverter(cfg config.FFmpegConfig, log *logrus.Logger) AudioConverter {
	return &ffmpegConverter{cfg: cfg, log: log}
}

// Convert shells out to ffmpeg. Output goes to dstPath only; a partial file
// left by a failed run is removed before returning.
func (c *ffmpegConverter) Convert(ctx context.Context, srcPath, dstPath string) error {
	cmd := exec.CommandContext(ctx, c.cfg.Bin,
		"-y",
		"-i", srcPath,
		"-vn",
		"-f", c.cfg.TargetFormat,
		dstPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(dstPath)
		c.log.Warnf("ffmpeg failed for %s: %v: %s", srcPath, err, output)
		return fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	info, err := os.Stat(dstPath)
	if err != nil || info.Size() == 0 {
		os.Remove(dstPath)
		return ErrConversionFailed
	}

	return nil
}

func (c *ffmpegConverter) TargetFormat() string {
	return c.cfg.TargetFormat
}

func (c *ffmpegConverter) ContentType() string {
	switch c.cfg.TargetFormat {
	case "mp3":
		return "audio/mpeg"
	case "ogg":
		return "audio/ogg"
	case "wav":
		return "audio/wav"
	default:
		return "audio/" + c.cfg.TargetFormat
	}
}
