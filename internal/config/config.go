// Package config reads the two environment variables the runtime is
// configured through, via envy rather than calling os.Getenv directly.
package config

import (
	"fmt"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/validate"
)

// Settings is the result of a successful Load.
type Settings struct {
	// HeapWords is the total heap size in machine words (H in the data
	// model); allocatable capacity is half of this.
	HeapWords int
	// LogGC is true iff CFLAT_GC_LOG is exactly the literal "1".
	LogGC bool
}

// heapWordsValidator checks that a parsed heap-size string is a positive
// even integer: a small validate.Validator with an IsValid method
// appending to validate.Errors, rather than ad hoc string checks scattered
// through Load.
type heapWordsValidator struct {
	Raw string
}

func (v *heapWordsValidator) IsValid(errs *validate.Errors) {
	n, err := strconv.Atoi(v.Raw)
	if err != nil {
		errs.Add("CFLAT_HEAP_WORDS", fmt.Sprintf("must be an integer, got %q", v.Raw))
		return
	}
	if n <= 0 {
		errs.Add("CFLAT_HEAP_WORDS", fmt.Sprintf("must be positive, got %d", n))
	}
	if n%2 != 0 {
		errs.Add("CFLAT_HEAP_WORDS", fmt.Sprintf("must be even, got %d", n))
	}
}

// Load reads CFLAT_HEAP_WORDS (required) and CFLAT_GC_LOG (optional) from
// the environment. A missing, malformed, non-positive, or odd heap size is
// reported as a plain error; Load never exits the process itself, leaving
// that to the caller's fatal sink.
func Load() (Settings, error) {
	raw, err := envy.MustGet("CFLAT_HEAP_WORDS")
	if err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}

	v := &heapWordsValidator{Raw: raw}
	errs := validate.Validate(v)
	if errs.HasAny() {
		return Settings{}, fmt.Errorf("config: invalid CFLAT_HEAP_WORDS: %s", errs.Error())
	}

	n, _ := strconv.Atoi(raw) // already validated above
	logFlag := envy.Get("CFLAT_GC_LOG", "") == "1"

	return Settings{HeapWords: n, LogGC: logFlag}, nil
}
