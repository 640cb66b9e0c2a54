package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
)

const (
	imageSubdir     = "hotels"
	uploadURLPrefix = "/uploads"
)

// ImageService turns inline data-URL images into files under the upload
// directory. Plain URLs pass through untouched.
type ImageService struct {
	Dir string
}

func NewImageService(dir string) *ImageService {
	return &ImageService{Dir: dir}
}

// Materialize returns images with every data URL replaced by its public
// /uploads path, plus the paths it wrote. On error the files written so far
// are already removed.
func (s *ImageService) Materialize(images []string) ([]string, []string, error) {
	if images == nil {
		return nil, nil, nil
	}
	out := make([]string, len(images))
	var written []string
	for i, img := range images {
		if !strings.HasPrefix(img, "data:") {
			out[i] = img
			continue
		}
		url, err := s.saveDataURL(img)
		if err != nil {
			s.Discard(written)
			return nil, nil, err
		}
		written = append(written, url)
		out[i] = url
	}
	return out, written, nil
}

// MaterializeHotel rewrites the hotel and room image lists in place and
// returns the paths of the files it wrote, for Discard if the hotel is
// never stored.
func (s *ImageService) MaterializeHotel(h *models.Hotel) ([]string, error) {
	images, written, err := s.Materialize(h.Images)
	if err != nil {
		return nil, err
	}
	h.Images = images
	for i := range h.Rooms {
		images, more, err := s.Materialize(h.Rooms[i].Images)
		if err != nil {
			s.Discard(written)
			return nil, err
		}
		written = append(written, more...)
		h.Rooms[i].Images = images
	}
	return written, nil
}

// Discard removes files previously written by Materialize. Paths outside
// the hotels upload directory are ignored.
func (s *ImageService) Discard(urls []string) {
	prefix := path.Join(uploadURLPrefix, imageSubdir) + "/"
	for _, url := range urls {
		if !strings.HasPrefix(url, prefix) {
			continue
		}
		file := filepath.Join(s.Dir, imageSubdir, path.Base(url))
		if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			logrus.WithError(err).WithField("file", file).Warn("failed to remove unused image")
		}
	}
}

func (s *ImageService) saveDataURL(raw string) (string, error) {
	// data:<mime>;base64,<payload>
	meta, payload, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ";base64,")
	if !ok {
		return "", NewValidationError("图片格式错误")
	}
	ext := imageExt(meta)
	if ext == "" {
		return "", NewValidationError("不支持的图片类型")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if data, err = base64.URLEncoding.DecodeString(payload); err != nil {
			return "", &AppError{Kind: KindValidation, Message: "图片格式错误", Err: err}
		}
	}

	dir := filepath.Join(s.Dir, imageSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", NewInternalError("保存图片失败", fmt.Errorf("mkdir uploads dir: %w", err))
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", NewInternalError("保存图片失败", fmt.Errorf("write image: %w", err))
	}
	return path.Join(uploadURLPrefix, imageSubdir, name), nil
}

func imageExt(mime string) string {
	switch strings.ToLower(mime) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}
