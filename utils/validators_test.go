package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestLayoutValidators(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("isodate", layoutValidator("2006-01-02")); err != nil {
		t.Fatal(err)
	}
	if err := v.RegisterValidation("hhmm", layoutValidator("15:04")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		tag   string
		value string
		ok    bool
	}{
		{tag: "isodate", value: "2025-03-10", ok: true},
		{tag: "isodate", value: "2025-3-10", ok: false},
		{tag: "isodate", value: "2025-02-30", ok: false},
		{tag: "isodate", value: "10/03/2025", ok: false},
		{tag: "hhmm", value: "09:30", ok: true},
		{tag: "hhmm", value: "23:59", ok: true},
		{tag: "hhmm", value: "9:30", ok: false},
		{tag: "hhmm", value: "24:00", ok: false},
	}

	for _, test := range tests {
		t.Run(test.tag+" "+test.value, func(t *testing.T) {
			err := v.Var(test.value, test.tag)
			if test.ok && err != nil {
				t.Errorf("expected %q to pass: %v", test.value, err)
			}
			if !test.ok && err == nil {
				t.Errorf("expected %q to fail", test.value)
			}
		})
	}
}
