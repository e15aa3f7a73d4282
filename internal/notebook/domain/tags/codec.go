// Package tags кодирует списки тегов и изображений заметки в текстовый JSON-формат колонок notes.
package tags

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MaxTags - максимальное количество тегов у заметки.
const MaxTags = 20

// Decode разбирает JSON-массив тегов.
// Некорректный JSON или не-массив дают пустой список. Строки обрезаются,
// числа и логические значения переводятся в строку, null и вложенные значения пропускаются.
// Пустые значения и повторы отбрасываются, результат ограничен MaxTags элементами.
func Decode(raw string) []string {
	return decode(raw, MaxTags)
}

// Encode сериализует теги в JSON-массив. nil кодируется как [].
func Encode(values []string) string {
	return encode(values)
}

// DecodeImages разбирает JSON-массив URL изображений по тем же правилам, что Decode, без ограничения длины.
func DecodeImages(raw string) []string {
	return decode(raw, 0)
}

// EncodeImages сериализует список URL изображений.
func EncodeImages(urls []string) string {
	return encode(urls)
}

// Normalize применяет к готовому списку те же правила, что Decode.
func Normalize(values []string) []string {
	return collect(values, MaxTags)
}

// Without возвращает теги без точного совпадения с tag.
func Without(values []string, tag string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value != tag {
			result = append(result, value)
		}
	}
	return result
}

func decode(raw string, limit int) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		if value, ok := scalar(item); ok {
			values = append(values, value)
		}
	}
	return collect(values, limit)
}

func scalar(item json.RawMessage) (string, bool) {
	var value any
	if err := json.Unmarshal(item, &value); err != nil {
		return "", false
	}

	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func collect(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

func encode(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}
