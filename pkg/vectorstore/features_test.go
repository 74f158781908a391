package vectorstore

import (
	"strings"
	"testing"
)

func TestComputeFeatures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    ContentFeatures
	}{
		{
			name:    "example marker",
			content: "For instance, a binary tree stores ordered data.",
			want:    ContentFeatures{HasExamples: true, IsConcise: true},
		},
		{
			name:    "theory marker",
			content: "The underlying principle is locality of reference.",
			want:    ContentFeatures{HasTheory: true, IsConcise: true},
		},
		{
			name:    "steps marker",
			content: "First, install the compiler. Then run the build.",
			want:    ContentFeatures{HasSteps: true, IsConcise: true},
		},
		{
			name:    "overview marker",
			content: "This chapter gives an overview of memory management.",
			want:    ContentFeatures{HasOverview: true, IsConcise: true},
		},
		{
			name:    "case insensitive",
			content: "EXAMPLE: sorting with quicksort.",
			want:    ContentFeatures{HasExamples: true, IsConcise: true},
		},
		{
			name:    "no markers",
			content: "Plain text without any markers at all.",
			want:    ContentFeatures{IsConcise: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFeatures(tt.content)
			if got != tt.want {
				t.Errorf("ComputeFeatures() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeFeaturesLength(t *testing.T) {
	long := strings.Repeat("word ", 250)
	got := ComputeFeatures(long)
	if !got.IsDetailed || got.IsConcise {
		t.Errorf("250-word content: IsDetailed=%v IsConcise=%v, want true/false", got.IsDetailed, got.IsConcise)
	}

	medium := strings.Repeat("word ", 150)
	got = ComputeFeatures(medium)
	if got.IsDetailed || got.IsConcise {
		t.Errorf("150-word content: IsDetailed=%v IsConcise=%v, want false/false", got.IsDetailed, got.IsConcise)
	}
}
