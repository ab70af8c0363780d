package cli

import (
	"reflect"
	"testing"
)

func TestDiffIDs(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want diffResult
	}{
		{
			name: "identical",
			a:    []string{"M1", "M2"},
			b:    []string{"M1", "M2"},
			want: diffResult{OnlyInA: []string{}, OnlyInB: []string{}, Shared: []string{"M1", "M2"}},
		},
		{
			name: "disjoint",
			a:    []string{"M1"},
			b:    []string{"M2"},
			want: diffResult{OnlyInA: []string{"M1"}, OnlyInB: []string{"M2"}, Shared: []string{}},
		},
		{
			name: "overlap keeps input order",
			a:    []string{"M3", "M1"},
			b:    []string{"M1", "M2"},
			want: diffResult{OnlyInA: []string{"M3"}, OnlyInB: []string{"M2"}, Shared: []string{"M1"}},
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: diffResult{OnlyInA: []string{}, OnlyInB: []string{}, Shared: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diffIDs(tt.a, tt.b)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("diffIDs(%v, %v) = %+v, want %+v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDiffIdentical(t *testing.T) {
	d := diffIDs([]string{"A"}, []string{"A"})
	if !d.identical() {
		t.Error("identical() = false, want true")
	}
	d = diffIDs([]string{"A"}, []string{"B"})
	if d.identical() {
		t.Error("identical() = true, want false")
	}
}

func TestDocumentIDHelpers(t *testing.T) {
	doc := testDocument()

	if got := modelIDs(doc); !reflect.DeepEqual(got, []string{"MODEL001"}) {
		t.Errorf("modelIDs() = %v, want [MODEL001]", got)
	}
	if got := materialIDs(doc); !reflect.DeepEqual(got, []string{"MAT001", "MAT002"}) {
		t.Errorf("materialIDs() = %v, want [MAT001 MAT002]", got)
	}
	if got := componentIDs(doc.Model("MODEL001")); !reflect.DeepEqual(got, []string{"C1"}) {
		t.Errorf("componentIDs() = %v, want [C1]", got)
	}
	if got := componentIDs(nil); got != nil {
		t.Errorf("componentIDs(nil) = %v, want nil", got)
	}
}
