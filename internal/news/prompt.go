package news

import "fmt"

// systemPrompt fixes the analyst policy for the search provider: reputable
// sources, factual content, investor-relevant impact.
const systemPrompt = `Eres un especialista en análisis de noticias financieras con acceso a información de mercado en tiempo real. Tu rol es extraer y validar noticias relevantes sobre acciones específicas, priorizando:
1. Fuentes verificadas y reconocidas (Reuters, Bloomberg, Financial Times, AP, etc.)
2. Información factual y contrastada, no especulaciones
3. Impacto en el mercado (relevancia para inversores)
4. Estructura de datos consistente y parseable

Siempre valida que:
- Las URLs sean accesibles y contengan el artículo completo
- Las fechas sean recientes (últimas 72 horas preferentemente)
- Los resúmenes capturen información material, no trivial`

// userPromptTemplate is rendered per ticker. It pins the output contract the
// parser depends on: a bare JSON array, fixed field names, the impact_level
// enum, the tag vocabulary, and the empty-array rule.
const userPromptTemplate = `Busca y extrae las últimas 5 noticias financieras MÁS RELEVANTES sobre la acción %s.

CRITERIOS DE BÚSQUEDA:
- Período: último mes
- Relevancia: solo noticias con impacto en precio o decisiones de inversión
- Fuentes: medios financieros reconocidos (Reuters, Bloomberg, CNBC, Financial Times, WSJ, etc.)
- Excluir noticias duplicadas o repetidas

IDIOMA: TODO el contenido debe estar en ESPAÑOL. Traduce los títulos y resúmenes al español.

RESPONDE ÚNICAMENTE CON UN ARRAY JSON VÁLIDO con este formato exacto:
[
  {
    "title": "Título de la noticia EN ESPAÑOL",
    "summary": "Resumen EN ESPAÑOL de máximo 120 palabras explicando QUÉ pasó, POR QUÉ es relevante e IMPACTO esperado",
    "date": "2024-12-14",
    "source": "Nombre del medio",
    "url": "https://ejemplo.com/noticia",
    "impact_level": "HIGH",
    "tags": ["earnings", "acquisition"]
  }
]

REGLAS:
- IMPORTANTE: Títulos y resúmenes SIEMPRE en español
- impact_level debe ser: "HIGH", "MEDIUM" o "LOW"
- tags pueden incluir: earnings, acquisition, regulatory, partnership, product, analyst, lawsuit, ceo, dividend, guidance
- Si no encuentras noticias relevantes, devuelve un array vacío: []
- NO incluyas texto adicional antes o después del JSON
- Solo devuelve el array JSON, nada más`

// Prompt is the rendered two-message instruction pair for one search.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the system and user instructions for a normalized
// ticker. Pure and deterministic; no I/O.
func BuildPrompt(ticker string) Prompt {
	return Prompt{
		System: systemPrompt,
		User:   fmt.Sprintf(userPromptTemplate, ticker),
	}
}
