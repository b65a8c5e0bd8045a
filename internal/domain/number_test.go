package domain

import (
	"encoding/json"
	"testing"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`70`, 70},
		{`72.5`, 72.5},
		{`"30"`, 30},
		{`"150g"`, 150},
		{`"1,75"`, 1.75},
		{`" 12 kcal"`, 12},
		{`"abc"`, 0},
		{`null`, 0},
	}
	for _, tc := range cases {
		var n Number
		if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
			t.Errorf("Unmarshal(%s): %v", tc.in, err)
			continue
		}
		if n.Float64() != tc.want {
			t.Errorf("Unmarshal(%s) = %v, want %v", tc.in, n, tc.want)
		}
	}
}

func TestNumber_RejectsObjects(t *testing.T) {
	var n Number
	if err := json.Unmarshal([]byte(`{"a":1}`), &n); err == nil {
		t.Error("expected error for object input")
	}
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`["halteres","barra"]`, []string{"halteres", "barra"}},
		{`"halteres, barra ,"`, []string{"halteres", "barra"}},
		{`""`, nil},
		{`null`, nil},
	}
	for _, tc := range cases {
		var l StringList
		if err := json.Unmarshal([]byte(tc.in), &l); err != nil {
			t.Errorf("Unmarshal(%s): %v", tc.in, err)
			continue
		}
		if len(l) != len(tc.want) {
			t.Errorf("Unmarshal(%s) = %v, want %v", tc.in, l, tc.want)
			continue
		}
		for i := range l {
			if l[i] != tc.want[i] {
				t.Errorf("Unmarshal(%s)[%d] = %q, want %q", tc.in, i, l[i], tc.want[i])
			}
		}
	}
}
