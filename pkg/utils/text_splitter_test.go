package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("SplitText = %v, want the input unchanged", chunks)
	}
}

func TestSplitTextCoversAllContent(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 100)
	chunks := SplitText(text, 200, 50)

	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want multiple", len(chunks))
	}
	// The last chunk must end where the text ends
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Error("final chunk does not reach the end of the input")
	}
	for i, c := range chunks {
		if len([]rune(c)) > 200 {
			t.Errorf("chunk %d has %d runes, want <= 200", i, len([]rune(c)))
		}
	}
}

func TestSplitTextBreaksOnWhitespace(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 50)
	chunks := SplitText(text, 100, 20)

	for i, c := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(c, " ") {
			t.Errorf("chunk %d ends mid-word: %q", i, c[len(c)-10:])
		}
	}
}

func TestSplitTextOverlapAtLeastChunkSize(t *testing.T) {
	text := strings.Repeat("x", 500)
	// overlap >= chunkSize must not loop forever
	chunks := SplitText(text, 100, 100)
	if len(chunks) == 0 {
		t.Fatal("no chunks returned")
	}
}

func TestSplitTextMultibyte(t *testing.T) {
	text := strings.Repeat("日本語のテキスト ", 100)
	chunks := SplitText(text, 50, 10)
	if !strings.HasPrefix(text, chunks[0]) {
		t.Error("first chunk is not a prefix of the input")
	}
	for i, c := range chunks {
		if strings.Contains(c, "�") {
			t.Errorf("chunk %d contains a broken rune", i)
		}
	}
}
