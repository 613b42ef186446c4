package store

import (
	"reflect"
	"testing"
)

func Test_deepMerge(t *testing.T) {
	tests := []struct {
		name   string
		base   map[string]any
		update map[string]any
		want   map[string]any
	}{
		{
			name:   "leaf overwrite wins",
			base:   map[string]any{"prefix": "!", "language": "es"},
			update: map[string]any{"prefix": "?"},
			want:   map[string]any{"prefix": "?", "language": "es"},
		},
		{
			name: "nested merge preserves siblings",
			base: map[string]any{
				"economy": map[string]any{"wallet": 100, "bank": 50},
			},
			update: map[string]any{
				"economy": map[string]any{"wallet": 250},
			},
			want: map[string]any{
				"economy": map[string]any{"wallet": 250, "bank": 50},
			},
		},
		{
			name:   "map replaces scalar",
			base:   map[string]any{"modules": true},
			update: map[string]any{"modules": map[string]any{"levels": true}},
			want:   map[string]any{"modules": map[string]any{"levels": true}},
		},
		{
			name:   "scalar replaces map",
			base:   map[string]any{"modules": map[string]any{"levels": true}},
			update: map[string]any{"modules": false},
			want:   map[string]any{"modules": false},
		},
		{
			name:   "new keys are added",
			base:   map[string]any{"a": 1},
			update: map[string]any{"b": 2},
			want:   map[string]any{"a": 1, "b": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deepMerge(tt.base, tt.update); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("deepMerge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_deepMerge_disjointOrderIndependent(t *testing.T) {
	left := map[string]any{"leveling": map[string]any{"xp": 10}}
	right := map[string]any{"economy": map[string]any{"wallet": 5}}

	a := deepMerge(deepMerge(map[string]any{}, copyDoc(left)), copyDoc(right))
	b := deepMerge(deepMerge(map[string]any{}, copyDoc(right)), copyDoc(left))

	if !reflect.DeepEqual(a, b) {
		t.Errorf("disjoint merges differ by order: %v vs %v", a, b)
	}
}

func Test_mergeDefaults(t *testing.T) {
	doc := map[string]any{
		"prefix": "?",
		"leveling": map[string]any{
			"xp_per_message": 25,
		},
	}

	got := mergeDefaults(DefaultGuildConfig(), doc)

	if got["prefix"] != "?" {
		t.Errorf("stored prefix lost: got %v", got["prefix"])
	}
	leveling := got["leveling"].(map[string]any)
	if leveling["xp_per_message"] != 25 {
		t.Errorf("stored xp_per_message lost: got %v", leveling["xp_per_message"])
	}
	if leveling["xp_cooldown"] != 60 {
		t.Errorf("default xp_cooldown not filled in: got %v", leveling["xp_cooldown"])
	}
	if _, ok := got["economy"]; !ok {
		t.Error("default economy block not filled in")
	}
}

func Test_mergeDefaults_doesNotMutateDefaults(t *testing.T) {
	defaults := DefaultGuildConfig()
	mergeDefaults(defaults, map[string]any{
		"modules": map[string]any{"levels": false},
	})

	if defaults["modules"].(map[string]any)["levels"] != true {
		t.Error("mergeDefaults mutated the defaults document")
	}
}

func Test_deepMerge_depthBound(t *testing.T) {
	base := map[string]any{}
	update := map[string]any{}
	leaf := update
	for i := 0; i < maxMergeDepth+5; i++ {
		next := map[string]any{}
		leaf["nested"] = next
		leaf = next
	}
	leaf["value"] = 1

	// Must terminate and still carry the update over.
	got := deepMerge(base, update)
	if _, ok := got["nested"]; !ok {
		t.Error("deep update dropped")
	}
}
