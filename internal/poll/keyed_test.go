package poll

import (
	"reflect"
	"testing"
)

func TestMoveKey(t *testing.T) {
	tests := []struct {
		name     string
		keys     []int64
		key      int64
		position int
		want     []int64
	}{
		{"move to end", []int64{3, 1, 2}, 1, 2, []int64{3, 2, 1}},
		{"move to front", []int64{3, 1, 2}, 2, 0, []int64{2, 3, 1}},
		{"same position", []int64{3, 1, 2}, 1, 1, []int64{3, 1, 2}},
		{"clamp high", []int64{3, 1, 2}, 3, 99, []int64{1, 2, 3}},
		{"clamp low", []int64{3, 1, 2}, 2, -4, []int64{2, 3, 1}},
		{"missing key", []int64{3, 1, 2}, 7, 0, []int64{3, 1, 2}},
		{"single", []int64{5}, 5, 3, []int64{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]int64(nil), tt.keys...)
			got := MoveKey(tt.keys, tt.key, tt.position)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("MoveKey(%v, %d, %d) = %v, want %v", tt.keys, tt.key, tt.position, got, tt.want)
			}
			if !reflect.DeepEqual(tt.keys, before) {
				t.Fatalf("MoveKey modified its input: %v", tt.keys)
			}
		})
	}
}

func TestReorderByKeys(t *testing.T) {
	items := []entry{{id: 1}, {id: 2}, {id: 3}, {id: 4}}

	got := Keys[int64](ReorderByKeys(items, []int64{3, 1, 99, 3}))
	want := []int64{3, 1, 2, 4}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReorderByKeys keys = %v, want %v", got, want)
	}
}

func TestRemoveAndIndexOf(t *testing.T) {
	items := []entry{{id: 1}, {id: 2}, {id: 3}}

	if got := IndexOf(items, int64(3)); got != 2 {
		t.Fatalf("IndexOf = %d, want 2", got)
	}
	if got := IndexOf(items, int64(8)); got != -1 {
		t.Fatalf("IndexOf missing = %d, want -1", got)
	}

	out := Remove(items, int64(2))
	if got := Keys[int64](out); !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Fatalf("Remove = %v, want [1 3]", got)
	}
	if len(items) != 3 {
		t.Fatalf("Remove modified input: %v", items)
	}
}

func TestReplaceAndAppend(t *testing.T) {
	items := []entry{{id: 1, title: "a"}, {id: 2, title: "b"}}

	replaced := Replace[int64](items, entry{id: 2, title: "B"})
	if replaced[1].title != "B" || items[1].title != "b" {
		t.Fatalf("Replace = %+v, input %+v", replaced, items)
	}
	if got := Replace[int64](items, entry{id: 9, title: "z"}); len(got) != 2 {
		t.Fatalf("Replace unknown key changed length: %+v", got)
	}

	appended := Append[int64](items, entry{id: 3, title: "c"})
	if len(appended) != 3 || appended[2].id != 3 {
		t.Fatalf("Append = %+v", appended)
	}
	if got := Append[int64](items, entry{id: 1, title: "dup"}); len(got) != 2 {
		t.Fatalf("Append duplicate = %+v", got)
	}
}
