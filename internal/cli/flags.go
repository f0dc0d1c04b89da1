package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// dateFlag is an optional YYYY-MM-DD flag. It stays nil until set.
type dateFlag struct {
	t *time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func (f *dateFlag) String() string {
	if f.t == nil {
		return ""
	}
	return f.t.Format(dateLayout)
}

func (f *dateFlag) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		f.t = nil
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	f.t = &t
	return nil
}

func (f *dateFlag) Type() string { return "date" }

// Time returns the parsed date, or nil when unset.
func (f *dateFlag) Time() *time.Time { return f.t }

// categoryFlag accepts any spelling domain.ParseAttendanceCategory knows.
type categoryFlag struct {
	c domain.AttendanceCategory
}

var _ pflag.Value = (*categoryFlag)(nil)

func (f *categoryFlag) String() string { return string(f.c) }

func (f *categoryFlag) Set(s string) error {
	c, ok := domain.ParseAttendanceCategory(s)
	if !ok {
		return fmt.Errorf("unknown category %q (training, event, reserve)", s)
	}
	f.c = c
	return nil
}

func (f *categoryFlag) Type() string { return "category" }
