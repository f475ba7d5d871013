package search

import "strings"

// searchIndicators flag messages that likely need fresh web data. Product
// language is pt-BR, matching the chat personas.
var searchIndicators = []string{
	// tempo/atual
	"hoje", "agora", "atual", "recente", "último", "última", "ontem",
	// notícias
	"notícia", "noticias", "jornal", "falando sobre", "saiu sobre",
	// preços/mercado
	"preço", "valor", "cotação", "mercado", "ação", "ações", "bolsa",
	// eventos
	"quando", "onde", "quem ganhou", "resultado", "placar",
	// comparação temporal
	"este ano", "este mês", "esta semana", "em 2024", "em 2025",
	// internet
	"pesquise", "busque", "procure", "encontre na web", "na internet",
	// verificação de fatos
	"é verdade", "confirme", "verifique", "fake news",
	// eventos específicos
	"jogos olímpicos", "copa do mundo", "eleição", "eleições",
}

var newsKeywords = []string{"notícia", "news", "jornal", "última hora", "breaking"}

var stopWords = []string{
	"pesquise", "procure", "busque", "encontre", "me diga",
	"qual é", "quais são", "sobre", "na web", "na internet",
}

// NeedsSearch reports whether a chat message should trigger a web search
// before the completion call.
func NeedsSearch(message string) bool {
	lower := strings.ToLower(message)
	for _, indicator := range searchIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// IsNewsQuery reports whether the query should use the news topic with
// advanced depth.
func IsNewsQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range newsKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractQuery strips command-like filler from a message, leaving the search
// terms.
func ExtractQuery(message string) string {
	query := strings.ToLower(message)
	for _, word := range stopWords {
		query = strings.ReplaceAll(query, word, "")
	}
	return strings.TrimSpace(query)
}
