package infrastructure

import "github.com/sage-media/video-compare-backend/pkg/e"

// GetExtensionFromMIME возвращает расширение файла по MIME-типу видео.
// Поддерживает mp4, quicktime, webm, matroska. Возвращает ошибку e.ErrUnsupportedMediaType для неподдерживаемых типов.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "video/mp4":
		return "mp4", nil
	case "video/quicktime":
		return "mov", nil
	case "video/webm":
		return "webm", nil
	case "video/x-matroska":
		return "mkv", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}
