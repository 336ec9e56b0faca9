package avatar

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// PlaceholderName - имя файла заглушки, хранящееся в БД у пользователей без фото
const PlaceholderName = "placeholder.png"

// PlaceholderPath - путь заглушки относительно корня статики
const PlaceholderPath = "/static/avatars/" + PlaceholderName

const baseDir = "/static/avatars"

// URL возвращает путь к аватару пользователя. Для NULL, пустого имени
// или самой заглушки всегда возвращается путь заглушки.
func URL(filename *string) string {
	if filename == nil {
		return PlaceholderPath
	}
	name := strings.TrimSpace(*filename)
	if name == "" || name == PlaceholderName {
		return PlaceholderPath
	}
	return path.Join(baseDir, name)
}

// NewFilename генерирует имя файла для загружаемого аватара,
// сохраняя расширение исходного файла.
func NewFilename(original string) string {
	ext := strings.ToLower(path.Ext(original))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("avatar_%s%s", uuid.NewString(), ext)
}
