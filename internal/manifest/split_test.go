package manifest

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func TestSplitDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty",
			input: "",
			want:  []string{""},
		},
		{
			name:  "single document",
			input: "kind: Application\nmetadata:\n  name: a\n",
			want:  []string{"kind: Application\nmetadata:\n  name: a\n"},
		},
		{
			name:  "no trailing newline",
			input: "kind: Application",
			want:  []string{"kind: Application\n"},
		},
		{
			name:  "two documents",
			input: "a: 1\n---\nb: 2\n",
			want:  []string{"a: 1\n", "b: 2\n"},
		},
		{
			name:  "leading separator",
			input: "---\na: 1\n",
			want:  []string{"", "a: 1\n"},
		},
		{
			name:  "consecutive separators",
			input: "a: 1\n---\n---\nb: 2\n---\n",
			want:  []string{"a: 1\n", "", "b: 2\n", ""},
		},
		{
			name:  "separator must be exact",
			input: "a: 1\n--- \n---x\n  ---\nb: 2\n",
			want:  []string{"a: 1\n--- \n---x\n  ---\nb: 2\n"},
		},
		{
			name:  "blank lines are kept",
			input: "a: 1\n\n---\n\nb: 2\n\n",
			want:  []string{"a: 1\n\n", "\nb: 2\n\n"},
		},
		{
			name:  "windows line endings",
			input: "a: 1\r\n---\r\nb: 2\r\n",
			want:  []string{"a: 1\n", "b: 2\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitDocuments(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected chunks, -want +got:\n%s", diff)
			}
		})
	}
}

func TestSplitDocumentsLongLines(t *testing.T) {
	long := strings.Repeat("a", 4*1024*1024)
	input := "data: " + long + "\n---\nname: b\n"

	got, err := SplitDocuments(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"data: " + long + "\n", "name: b\n"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected chunks, -want +got:\n%s", diff)
	}
}

func TestSplitDocumentsReadError(t *testing.T) {
	readErr := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("a: 1\n---\n"), iotest.ErrReader(readErr))

	if _, err := SplitDocuments(r); !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
}
