package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayValue(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var day weekdayValue
	fs.Var(&day, "day", "")

	assert.Empty(t, day.String())
	require.NoError(t, fs.Parse([]string{"--day", "Fri"}))
	assert.True(t, day.set)
	assert.Equal(t, time.Friday, day.day)
	assert.Equal(t, "friday", day.String())

	require.NoError(t, fs.Parse([]string{"--day", "0"}))
	assert.Equal(t, time.Sunday, day.day)

	assert.Error(t, fs.Parse([]string{"--day", "7"}))
}

func TestCategoryValue(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	category := newCategoryValue(domain.CategoryCoding)
	fs.Var(category, "category", "")

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, domain.CategoryCoding, category.Category())

	require.NoError(t, fs.Parse([]string{"--category", "DSA"}))
	assert.Equal(t, domain.CategoryDSA, category.Category())

	err := fs.Parse([]string{"--category", "gaming"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}
