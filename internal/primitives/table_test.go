package primitives

import "testing"

type handle struct{ name string }

func TestTableAdd(t *testing.T) {
	def := &handle{"default"}
	a, b, c := &handle{"a"}, &handle{"b"}, &handle{"c"}
	tab := NewTable(2, def)

	tests := []struct {
		name     string
		in       *handle
		wantSlot int
		wantOK   bool
	}{
		{"nil uses default", nil, 0, true},
		{"first", a, 1, true},
		{"duplicate", a, 1, true},
		{"second", b, 2, true},
		{"full", c, 0, false},
		{"known after full", b, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := tab.Add(tt.in)
			if slot != tt.wantSlot || ok != tt.wantOK {
				t.Errorf("Add = (%d, %v), want (%d, %v)", slot, ok, tt.wantSlot, tt.wantOK)
			}
		})
	}
	if tab.At(0) != def {
		t.Error("slot 0 must hold the default")
	}
	if tab.Registered() != 2 || tab.Capacity() != 2 {
		t.Errorf("Registered=%d Capacity=%d", tab.Registered(), tab.Capacity())
	}
}

func TestTableCloneAndReplace(t *testing.T) {
	a, b, x := &handle{"a"}, &handle{"b"}, &handle{"x"}
	base := NewTable(3, &handle{"default"})
	base.Add(a)
	base.Add(b)

	der := base.Clone()
	if !der.Replace(a, x) {
		t.Fatal("Replace of registered entry failed")
	}
	if der.At(1) != x || base.At(1) != a {
		t.Error("clone must not share storage with the base")
	}
	if der.Replace(a, x) {
		t.Error("Replace of absent entry should fail")
	}
	if der.Capacity() != base.Capacity() {
		t.Error("clone changed capacity")
	}

	dst := NewTable(3, &handle{"other"})
	if !dst.CopyFrom(&base) || dst.At(2) != b || dst.Registered() != 2 {
		t.Error("CopyFrom did not copy entries")
	}
	small := NewTable(1, &handle{})
	if small.CopyFrom(&base) {
		t.Error("CopyFrom across capacities should fail")
	}
}
