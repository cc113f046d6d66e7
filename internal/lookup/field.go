package lookup

import "fmt"

// field is the value-or-absent result of one best-effort extraction. Keeping
// the miss reason attached (instead of swallowing errors) keeps failure
// causes inspectable in tests and debug logs.
type field struct {
	val    string
	ok     bool
	reason string
}

func value(v string) field {
	return field{val: v, ok: true}
}

func miss(format string, args ...any) field {
	return field{reason: fmt.Sprintf(format, args...)}
}

// ptr converts the field to the optional-string representation used by the
// domain records: nil when absent.
func (f field) ptr() *string {
	if !f.ok {
		return nil
	}
	v := f.val
	return &v
}
