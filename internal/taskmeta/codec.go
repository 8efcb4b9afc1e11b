package taskmeta

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/wedlux/planner-service/internal/entity"
)

// Маркеры блока метаданных внутри description
const (
	MetadataPrefix = "<!--meta:"
	MetadataSuffix = "-->"
)

// Decode - извлекает из description чистый текст и сырой объект метаданных.
// Ищем последнее вхождение префикса, чтобы маркер в обычном тексте не ломал
// разбор. Никогда не возвращает ошибку: битый JSON логируем и отдаем пустые
// метаданные.
func Decode(description string) (string, map[string]any) {
	if description == "" {
		return "", map[string]any{}
	}

	prefixIndex := strings.LastIndex(description, MetadataPrefix)
	if prefixIndex == -1 {
		return description, map[string]any{}
	}

	start := prefixIndex + len(MetadataPrefix)
	end := strings.Index(description[start:], MetadataSuffix)
	if end == -1 {
		// оборванный блок не парсим частично
		return description, map[string]any{}
	}
	end += start

	metaString := strings.TrimSpace(description[start:end])
	raw := map[string]any{}
	if err := json.Unmarshal([]byte(metaString), &raw); err != nil {
		log.Printf("⚠️ Не удалось распарсить метаданные задачи: %v", err)
		raw = map[string]any{}
	}

	before := strings.TrimSpace(description[:prefixIndex])
	after := strings.TrimSpace(description[end+len(MetadataSuffix):])
	clean := strings.TrimSpace(before + " " + after)

	return clean, raw
}

// Encode - дописывает блок метаданных после чистого текста через пустую
// строку. Обратная операция к Decode для любых метаданных, переживающих JSON.
func Encode(clean string, meta entity.TaskMetadata) string {
	body, err := json.Marshal(meta)
	if err != nil {
		// структура сериализуема всегда, сюда не попадаем
		body = []byte("{}")
	}
	return strings.TrimSpace(clean) + "\n\n" + MetadataPrefix + string(body) + MetadataSuffix
}
