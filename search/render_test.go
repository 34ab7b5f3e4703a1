package search

import "testing"

func TestRenderTextExact(t *testing.T) {
	out := RenderText("machine learning", Result{
		URLs:       []string{"https://a/", "https://b/"},
		ShownQuery: "machine learning",
		Exact:      true,
		ElapsedMs:  12,
	})
	want := "Showing results for \"machine learning\"\n" +
		"1. https://a/\n" +
		"2. https://b/\n" +
		"Search time: 12 ms\n"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestRenderTextInexact(t *testing.T) {
	out := RenderText("zzz apple", Result{
		URLs:       []string{"https://a/"},
		ShownQuery: "apple",
		Exact:      false,
		ElapsedMs:  3,
	})
	want := "No results for \"zzz apple\". Showing results for \"apple\"\n" +
		"1. https://a/\n" +
		"Search time: 3 ms\n"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestRenderTextEmpty(t *testing.T) {
	out := RenderText("asdfgh", Result{ElapsedMs: 1})
	want := "No results for \"asdfgh\"\n" +
		"Search time: 1 ms\n"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}
