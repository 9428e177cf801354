package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/routine"
	"github.com/spf13/pflag"
)

// weekdayValue is a --day flag accepting 0-6 or a day name.
type weekdayValue struct {
	day time.Weekday
	set bool
}

var _ pflag.Value = (*weekdayValue)(nil)

func (w *weekdayValue) String() string {
	if !w.set {
		return ""
	}
	return strings.ToLower(w.day.String())
}

func (w *weekdayValue) Set(s string) error {
	d, err := routine.ParseWeekday(s)
	if err != nil {
		return err
	}
	w.day, w.set = d, true
	return nil
}

func (w *weekdayValue) Type() string { return "weekday" }

// categoryValue is a --category flag restricted to the known categories.
type categoryValue domain.Category

var _ pflag.Value = (*categoryValue)(nil)

func newCategoryValue(def domain.Category) *categoryValue {
	c := categoryValue(def)
	return &c
}

func (c *categoryValue) String() string { return string(*c) }

func (c *categoryValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidCategories[s] {
		return fmt.Errorf("unknown category %q", s)
	}
	*c = categoryValue(s)
	return nil
}

func (c *categoryValue) Type() string { return "category" }

func (c *categoryValue) Category() domain.Category { return domain.Category(*c) }
