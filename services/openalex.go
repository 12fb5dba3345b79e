package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Article é o que o dashboard renderiza para cada recomendação.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	Year     int    `json:"year"`
	Citados  int    `json:"cited_by_count"`
	DOI      string `json:"doi,omitempty"`
}

type OpenAlexService struct {
	baseURL string
	client  *http.Client
}

// NewOpenAlexService monta o cliente com timeout limitado; a busca no
// dashboard é oportunista e nunca pode travar a requisição.
func NewOpenAlexService() *OpenAlexService {
	return &OpenAlexService{
		baseURL: "https://api.openalex.org",
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// NewOpenAlexServiceWithBase é usado nos testes para apontar a um servidor fake.
func NewOpenAlexServiceWithBase(baseURL string, client *http.Client) *OpenAlexService {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenAlexService{baseURL: baseURL, client: client}
}

type worksResponse struct {
	Results []struct {
		ID                    string           `json:"id"`
		Title                 string           `json:"title"`
		AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
		PublicationYear       int              `json:"publication_year"`
		CitedByCount          int              `json:"cited_by_count"`
		DOI                   string           `json:"doi"`
	} `json:"results"`
}

// SearchArticles busca trabalhos acadêmicos sobre o termo.
// Resposta não-200 ou JSON malformado degradam para lista vazia.
func (s *OpenAlexService) SearchArticles(query string, limit int) []Article {
	if limit <= 0 {
		limit = 5
	}
	u := fmt.Sprintf("%s/works?search=%s&per_page=%d&sort=cited_by_count:desc",
		s.baseURL, url.QueryEscape(query), limit)

	resp, err := s.client.Get(u)
	if err != nil {
		return []Article{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []Article{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return []Article{}
	}

	var wr worksResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return []Article{}
	}

	articles := make([]Article, 0, len(wr.Results))
	for _, r := range wr.Results {
		articles = append(articles, Article{
			ID:       r.ID,
			Title:    r.Title,
			Abstract: rebuildAbstract(r.AbstractInvertedIndex),
			Year:     r.PublicationYear,
			Citados:  r.CitedByCount,
			DOI:      r.DOI,
		})
	}
	return articles
}

// rebuildAbstract reconstrói o texto a partir do índice invertido
// que o OpenAlex retorna no lugar do abstract.
func rebuildAbstract(idx map[string][]int) string {
	if len(idx) == 0 {
		return ""
	}
	type posWord struct {
		pos  int
		word string
	}
	var words []posWord
	for w, positions := range idx {
		for _, p := range positions {
			words = append(words, posWord{pos: p, word: w})
		}
	}
	sort.Slice(words, func(i, j int) bool { return words[i].pos < words[j].pos })

	parts := make([]string, 0, len(words))
	for _, pw := range words {
		parts = append(parts, pw.word)
	}
	return strings.Join(parts, " ")
}
