package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/articles/123":          "/articles/:id",
		"/articles/456/":         "/articles/:id",
		"/articles/7?x=1":        "/articles/:id",
		"/articles":              "/articles",
		"/products/search":       "/products/search",
		"/shopping-list/recent":  "/shopping-list/recent",
		"/health":                "/health",
		"/":                      "/",
		"/articles/12abc":        "/articles/12abc",
		"/v1/articles/5/related": "/v1/articles/:id/related",
	}
	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
