package paint

import "testing"

func TestWithBackgroundReplaces(t *testing.T) {
	s := Style{"bg-red-400", "w-8", "bg-blue", "h-8", "border"}
	got := s.WithBackground(MustColor("green-200"))

	bgCount := 0
	for _, tag := range got {
		if len(tag) > 3 && tag[:3] == "bg-" {
			bgCount++
		}
	}
	if bgCount != 1 {
		t.Fatalf("WithBackground left %d bg tags in %v, want 1", bgCount, got)
	}
	for _, tag := range []string{"w-8", "h-8", "border", "bg-green-200"} {
		if !got.Has(tag) {
			t.Errorf("WithBackground result %v missing %q", got, tag)
		}
	}
	if !s.Has("bg-red-400") || len(s) != 5 {
		t.Fatalf("WithBackground mutated its receiver: %v", s)
	}
}

func TestWithBackgroundRepeated(t *testing.T) {
	s := NewStyle(MustColor("black"), "w-8")
	for _, name := range []string{"red-100", "red-200", "white", "pink-700"} {
		s = s.WithBackground(MustColor(name))
	}
	if got := s.String(); got != "w-8 bg-pink-700" {
		t.Fatalf("style = %q, want %q", got, "w-8 bg-pink-700")
	}
	c, ok := s.Background()
	if !ok || c != MustColor("pink-700") {
		t.Fatalf("Background() = %v, %v", c, ok)
	}
}

func TestBackgroundMissing(t *testing.T) {
	if _, ok := (Style{"w-8"}).Background(); ok {
		t.Fatal("Background() ok for style without bg tag")
	}
	if _, ok := (Style{"bg-purple"}).Background(); ok {
		t.Fatal("Background() ok for unknown colour")
	}
}
