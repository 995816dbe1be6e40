package portfolio

import (
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	testCases := []struct {
		name  string
		write func(w *jsonObjectWriter)
		want  string
	}{
		{"empty object", func(w *jsonObjectWriter) {}, `{}`},
		{"ordered fields", func(w *jsonObjectWriter) {
			w.Append("b", "x").Append("a", 1)
		}, `{"b":"x","a":1}`},
		{"optional fields", func(w *jsonObjectWriter) {
			w.Append("a", 0) // a zero value is still written by Append.
			w.Optional("b", "")
			w.Optional("c", 0.0)
			w.Optional("d", EUR(1.5))
		}, `{"a":0,"d":{"currency":"EUR","amount":1.5}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var w jsonObjectWriter
			tc.write(&w)
			got, err := w.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestJsonObjectWriter_Error(t *testing.T) {
	var w jsonObjectWriter
	w.Append("f", func() {}).Append("a", 1)
	if _, err := w.MarshalJSON(); err == nil {
		t.Error("MarshalJSON() error = nil, want the marshal error of f")
	}
}
