package taskmeta

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wedlux/planner-service/internal/entity"
)

func TestSanitizeNil(t *testing.T) {
	meta := Sanitize(nil)

	assert.True(t, meta.IsZero())
}

func TestSanitizeValidFields(t *testing.T) {
	meta := Sanitize(map[string]any{
		"priority":  "high",
		"category":  "Logistics",
		"effort":    float64(8),
		"impact":    float64(6),
		"tags":      []any{"Logistics", "Momentum"},
		"statusLux": "review",
	})

	assert.Equal(t, entity.PriorityHigh, meta.Priority)
	assert.Equal(t, "Logistics", meta.Category)
	assert.Equal(t, 8.0, *meta.Effort)
	assert.Equal(t, 6.0, *meta.Impact)
	assert.Equal(t, []string{"Logistics", "Momentum"}, meta.Tags)
	assert.Equal(t, entity.LuxReview, meta.StatusLux)
}

func TestSanitizeRejectsUnknownEnums(t *testing.T) {
	meta := Sanitize(map[string]any{
		"priority":  "urgent",
		"statusLux": "archived",
	})

	assert.Empty(t, meta.Priority)
	assert.Empty(t, meta.StatusLux)
}

func TestSanitizeRejectsNonFiniteNumbers(t *testing.T) {
	meta := Sanitize(map[string]any{
		"effort": math.NaN(),
		"impact": math.Inf(1),
	})

	assert.Nil(t, meta.Effort)
	assert.Nil(t, meta.Impact)
}

func TestSanitizeRejectsWrongTypes(t *testing.T) {
	meta := Sanitize(map[string]any{
		"priority": 3,
		"category": []any{"Design"},
		"effort":   "five",
	})

	assert.True(t, meta.IsZero())
}

func TestSanitizeFiltersTagItems(t *testing.T) {
	meta := Sanitize(map[string]any{
		"tags": []any{"Design", 42, nil, "Momentum"},
	})

	assert.Equal(t, []string{"Design", "Momentum"}, meta.Tags)
}

func TestSanitizeDropsNonArrayTags(t *testing.T) {
	// не массив - отбрасываем поле целиком, без подмены пустым списком
	meta := Sanitize(map[string]any{"tags": "Design"})

	assert.Nil(t, meta.Tags)
}

func TestSanitizeIdempotent(t *testing.T) {
	raw := map[string]any{
		"priority":  "critical",
		"category":  "Production",
		"effort":    float64(13),
		"tags":      []any{"Production"},
		"statusLux": "in_progress",
		"junk":      "dropped",
	}

	once := Sanitize(raw)
	twice := Sanitize(ToRaw(once))

	assert.Equal(t, once, twice)
}

func TestMergeOverwritesAndPreserves(t *testing.T) {
	existing := map[string]any{"priority": "low", "category": "Design"}
	incoming := map[string]any{"priority": "critical"}

	merged := Merge(existing, incoming)

	assert.Equal(t, "critical", merged["priority"])
	assert.Equal(t, "Design", merged["category"])
	// исходные карты не мутируются
	assert.Equal(t, "low", existing["priority"])
}
