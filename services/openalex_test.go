package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchArticlesParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/works" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{
					"id": "https://openalex.org/W1",
					"title": "Spaced repetition and retention",
					"abstract_inverted_index": {"Estudo": [0], "sobre": [1], "memória": [2]},
					"publication_year": 2021,
					"cited_by_count": 42,
					"doi": "https://doi.org/10.1000/xyz"
				}
			]
		}`))
	}))
	defer srv.Close()

	svc := NewOpenAlexServiceWithBase(srv.URL, srv.Client())
	articles := svc.SearchArticles("memória", 5)

	if len(articles) != 1 {
		t.Fatalf("esperava 1 artigo, veio %d", len(articles))
	}
	a := articles[0]
	if a.Title != "Spaced repetition and retention" || a.Year != 2021 || a.Citados != 42 {
		t.Fatalf("campos errados: %+v", a)
	}
	if a.Abstract != "Estudo sobre memória" {
		t.Fatalf("abstract mal reconstruído: %q", a.Abstract)
	}
}

func TestSearchArticlesNon200ReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewOpenAlexServiceWithBase(srv.URL, srv.Client())
	if got := svc.SearchArticles("x", 5); len(got) != 0 {
		t.Fatalf("resposta não-200 deveria degradar para lista vazia, veio %d", len(got))
	}
}

func TestSearchArticlesMalformedJSONReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("isto não é JSON"))
	}))
	defer srv.Close()

	svc := NewOpenAlexServiceWithBase(srv.URL, srv.Client())
	if got := svc.SearchArticles("x", 5); len(got) != 0 {
		t.Fatalf("JSON malformado deveria degradar para lista vazia, veio %d", len(got))
	}
}

func TestSearchArticlesServerDownReturnsEmpty(t *testing.T) {
	svc := NewOpenAlexServiceWithBase("http://127.0.0.1:1", nil)
	if got := svc.SearchArticles("x", 5); len(got) != 0 {
		t.Fatalf("falha de conexão deveria degradar para lista vazia")
	}
}

func TestRebuildAbstractOrdersByPosition(t *testing.T) {
	idx := map[string][]int{"c": {2}, "a": {0}, "b": {1}, "a2": {3}}
	if got := rebuildAbstract(idx); got != "a b c a2" {
		t.Fatalf("ordem errada: %q", got)
	}
	if got := rebuildAbstract(nil); got != "" {
		t.Fatalf("índice vazio deveria dar string vazia")
	}
}
