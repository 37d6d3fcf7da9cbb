package client

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

// ArticleSummary is the structured interpretation the model produces for
// one article. JSON tags match the contract in the prompt.
type ArticleSummary struct {
	SimplifiedTitle   string   `json:"titulo_simplificado"`
	SimpleExplanation string   `json:"explicacao_simples"`
	BusinessImpact    string   `json:"impacto_empresas"`
	PracticalExamples string   `json:"exemplos_praticos"`
	AttentionPoints   []string `json:"pontos_atencao"`
	Category          string   `json:"categoria"`
	Tags              []string `json:"tags"`
	Relevance         int      `json:"relevancia"`
}

// Summarizer interprets a raw search result into an ArticleSummary.
type Summarizer interface {
	Summarize(ctx context.Context, article SearchResult) (*ArticleSummary, error)
}

// GeminiSummarizer calls the Gemini API to rewrite tax-reform news into
// plain-language guidance for business owners and accountants.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

func NewGeminiSummarizer(ctx context.Context, apiKey string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSummarizer{
		client: client,
		model:  "gemini-1.5-flash",
	}, nil
}

// Model responses sometimes wrap the JSON in prose or code fences; take
// the outermost object.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

func (g *GeminiSummarizer) Summarize(ctx context.Context, article SearchResult) (*ArticleSummary, error) {
	prompt := buildSummaryPrompt(article)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.3),
		MaxOutputTokens: 2000,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	raw := jsonObjectRe.FindString(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in Gemini response")
	}

	var summary ArticleSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if summary.Category == "" {
		summary.Category = "orientacao"
	}
	if summary.Relevance == 0 {
		summary.Relevance = 5
	}

	return &summary, nil
}

func buildSummaryPrompt(article SearchResult) string {
	var b strings.Builder
	b.WriteString("Você é um especialista em tributação brasileira. Analise esta notícia sobre a Reforma Tributária e explique de forma CLARA e SIMPLES para empresários e contadores.\n\n")
	b.WriteString("NOTÍCIA:\n")
	fmt.Fprintf(&b, "Título: %s\n", article.Title)
	fmt.Fprintf(&b, "Resumo: %s\n", article.Snippet)
	fmt.Fprintf(&b, "Fonte: %s\n\n", article.Link)
	b.WriteString(`RESPONDA EM JSON com esta estrutura EXATA:
{
  "titulo_simplificado": "Título curto e claro (máx 100 caracteres)",
  "explicacao_simples": "Explicação em 2-3 parágrafos usando linguagem simples, sem jargões técnicos. Explique O QUE mudou e POR QUE isso importa.",
  "impacto_empresas": "Como isso afeta empresas na prática? Seja específico.",
  "exemplos_praticos": "Dê 1-2 exemplos concretos com números se possível. Ex: 'Uma empresa que vende R$ 100 mil/mês vai...'",
  "pontos_atencao": ["Ponto 1 importante", "Ponto 2 importante", "Ponto 3 se houver"],
  "categoria": "legislacao|regulamentacao|cronograma|aliquotas|setorial|tecnologia|orientacao|opiniao",
  "tags": ["tag1", "tag2", "tag3"],
  "relevancia": 7
}

REGRAS:
- Use português brasileiro simples
- Evite termos como "outrossim", "destarte", "com fulcro"
- Seja direto e prático
- Relevância de 1 a 10 (10 = muito importante para empresas)`)
	return b.String()
}
