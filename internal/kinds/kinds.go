// Package kinds holds the fixed registry of attachment classifications.
// The set is build-time only: the upload endpoint rejects anything not
// listed here, and every table header iterates it in this exact order.
package kinds

type Kind struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var registry = []Kind{
	{Key: "invoice", Label: "Invoice"},
	{Key: "workconfirm", Label: "Work Confirmation"},
	{Key: "inspect", Label: "Inspection Report"},
	{Key: "extra", Label: "Extra PDF"},
}

// All returns the registry in display order. Callers must not mutate
// the returned slice.
func All() []Kind {
	return registry
}

func Valid(key string) bool {
	_, ok := Lookup(key)
	return ok
}

func Lookup(key string) (Kind, bool) {
	for _, k := range registry {
		if k.Key == key {
			return k, true
		}
	}
	return Kind{}, false
}
