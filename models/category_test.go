package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streetsight/streetsight/models"
)

func TestNormalizeCategoryLabel(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{"pot_hole_india", "Pot Hole"},
		{"BROKEN_streetlight", "Broken Streetlight"},
		{"fly-tipping", "Fly Tipping"},
		{"damaged_road_sign", "Damaged Road Sign"},
		{"graffiti", "Graffiti"},
		{"pot__hole", "Pot Hole"},
		{"pothole uk", "Pothole"},
		{"", "Unknown Issue"},
		{"india", "Unknown Issue"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, models.NormalizeCategoryLabel(c.raw), "raw label %q", c.raw)
	}
}

func TestCategoryFromRaw(t *testing.T) {
	cases := []struct {
		raw      string
		expected models.IssueCategory
	}{
		{"pot_hole_india", models.CategoryPothole},
		{"pothole", models.CategoryPothole},
		{"BROKEN_streetlight", models.CategoryBrokenStreetlight},
		{"fly_tipping", models.CategoryFlyTipping},
		{"damaged_road_sign", models.CategoryDamagedSign},
		{"graffiti", models.CategoryGraffiti},
		{"sinkhole", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, models.CategoryFromRaw(c.raw), "raw label %q", c.raw)
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Pothole", models.CategoryPothole.Label())
	assert.Equal(t, "Broken Streetlight", models.CategoryBrokenStreetlight.Label())
	assert.Equal(t, "Fly Tipping", models.CategoryFlyTipping.Label())
}
