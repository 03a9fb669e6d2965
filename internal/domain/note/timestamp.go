package note

import (
	"encoding/json"
	"fmt"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp хранит время ровно в том виде, в каком его прислал сервер.
// Значения без зоны считаются UTC.
type Timestamp struct {
	raw string
}

// NewTimestamp форматирует t в RFC3339 с наносекундами
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{raw: t.UTC().Format(time.RFC3339Nano)}
}

// ParseTimestamp проверяет, что строка разбирается одним из известных форматов
func ParseTimestamp(raw string) (Timestamp, error) {
	ts := Timestamp{raw: raw}
	if _, err := ts.Parse(); err != nil {
		return Timestamp{}, err
	}
	return ts, nil
}

func (t Timestamp) String() string {
	return t.raw
}

func (t Timestamp) IsZero() bool {
	return t.raw == ""
}

func (t Timestamp) Parse() (time.Time, error) {
	if t.raw == "" {
		return time.Time{}, fmt.Errorf("пустая метка времени")
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, t.raw)
		if err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("неизвестный формат времени: %q", t.raw)
}

// Time возвращает нулевое время, если строку не удалось разобрать
func (t Timestamp) Time() time.Time {
	parsed, err := t.Parse()
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// Equal сравнивает сначала исходный текст, затем разобранное время
func (t Timestamp) Equal(other Timestamp) bool {
	if t.raw == other.raw {
		return true
	}

	a, errA := t.Parse()
	b, errB := other.Parse()
	if errA != nil || errB != nil {
		return false
	}
	return a.Equal(b)
}

func (t Timestamp) After(other Timestamp) bool {
	return t.Time().After(other.Time())
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(t.raw)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.raw = ""
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ошибка чтения метки времени: %w", err)
	}

	t.raw = raw
	return nil
}
