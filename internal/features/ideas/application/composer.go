package application

import (
	"strings"

	catalog "github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

// IdeaSchema is the response shape the model is asked to produce.
const IdeaSchema = `{
  "language": "es" | "en",
  "ideas": [
    {
      "title": "...",
      "oneLiner": "...",
      "inputs": { "<category_key>": "..." },
      "solution": "...",
      "differentiator": "...",
      "mvp": ["...", "...", "..."],
      "score": { "value": 1-10, "reasons": ["...", "...", "..."] },
      "pros": ["...", "...", "..."],
      "cons": ["...", "...", "..."],
      "painFrequency": "...",
      "willingnessToPay": "...",
      "alternatives": "...",
      "roiImpact": "...",
      "adoptionFriction": "...",
      "acquisition": "...",
      "retention": "...",
      "risks": "..."
    }
  ],
  "prompt": { "intro": "...", "technical": "..." }
}`

var jsonOnlySystemPrompt = map[domain.Language]string{
	domain.LanguageEN: "Return ONLY valid JSON. No markdown, no code fences, no commentary.",
	domain.LanguageES: "Devuelve SOLO JSON valido. Sin markdown, sin bloques de codigo, sin comentarios.",
}

var defaultIdeaTemplate = map[domain.Language]string{
	domain.LanguageEN: strings.Join([]string{
		"TASK:",
		"Generate 3 app ideas AND a technical prompt ready to paste into a coding agent (Codex).",
		"",
		"RULES:",
		"- Output JSON only, matching the schema exactly.",
		"- Use input.language for all text.",
		"- Consider constraints (time/effort/budget) if provided.",
		"- Goal: make prompt.technical drive simple, Clean Code with minimal dependencies, no over-engineering, and easy-to-read code.",
		"- Selections: input.selections may omit keys.",
		"  - If a selection is present with mode=manual: use selection.value as is.",
		"  - If a selection is present with mode=decide: choose the best value yourself (do not ask the user).",
		"  - If a selection is missing: treat it as unconstrained and choose the best value.",
		"- For each idea, include an inputs object with the chosen values for the provided selection keys.",
		"- Elements: if input.elements is provided, use its categories/options.",
		"  - For each selection key, if input.elements has options for that key, choose one of those option keys.",
		"- Architecture:",
		"  - If input.architecture is missing/empty: do NOT mention architecture.",
		`  - If input.architecture == "__llm_best__": choose the best architecture and justify briefly.`,
		"    Put the chosen architecture + rationale at the top of prompt.technical (1-3 lines).",
		"  - Otherwise: follow input.architecture (treat it as a key/name) and align the prompt.technical accordingly.",
		"- Generate exactly 3 ideas.",
		"- Each idea must include the validation fields: painFrequency, willingnessToPay, alternatives, roiImpact, adoptionFriction, acquisition, retention, risks.",
		"- If you use selection values in output text, convert underscores/hyphens to spaces for readability.",
		"- The prompt.technical must include: recommended stack (language/framework), Clean Code guidance, practical folder structure, endpoints, data models, validations, minimal tests, and a short README outline.",
		"",
		"SCHEMA:",
		"%schema%",
		"",
		"INPUT:",
		"%input%",
	}, "\n"),
	domain.LanguageES: strings.Join([]string{
		"TAREA:",
		"Genera 3 ideas de apps Y un prompt tecnico listo para pegar en un agente de codigo (Codex).",
		"",
		"REGLAS:",
		"- Devuelve SOLO JSON, siguiendo el schema exactamente.",
		"- Usa input.language para TODO el texto.",
		"- Considera restricciones (time/effort/budget) si existen.",
		"- Objetivo: que prompt.technical empuje a codigo simple con Clean Code, minimas dependencias, sin sobreingenieria y facil de leer.",
		"- Selecciones: input.selections puede omitir keys.",
		"  - Si hay una seleccion con mode=manual: usa selection.value tal cual.",
		"  - Si hay una seleccion con mode=decide: elige tu el mejor valor (no preguntes al usuario).",
		"  - Si falta una seleccion: sin restriccion; elige el mejor valor.",
		"- Para cada idea, incluye un objeto inputs con los valores elegidos para las keys de selecciones.",
		"- Elementos: si input.elements existe, usa sus categorias/opciones.",
		"  - Para cada key de seleccion, si hay opciones en input.elements, elige una de esas opciones.",
		"- Arquitectura:",
		"  - Si input.architecture no existe/vacio: NO menciones arquitectura.",
		`  - Si input.architecture == "__llm_best__": elige la mejor y justificala brevemente.`,
		"    Pon la arquitectura elegida + razon al inicio de prompt.technical (1-3 lineas).",
		"  - Si no: sigue input.architecture (tratalo como key/nombre) y alinea prompt.technical.",
		"- Genera exactamente 3 ideas.",
		"- Cada idea debe incluir los campos de validacion: painFrequency, willingnessToPay, alternatives, roiImpact, adoptionFriction, acquisition, retention, risks.",
		"- Si usas valores con underscores/guiones en el texto, conviertelos a espacios para legibilidad.",
		"- El prompt.technical debe incluir: stack recomendado (lenguaje/framework), guia de Clean Code, estructura practica (carpetas), endpoints, modelos de datos, validaciones, tests minimos y un esquema corto de README.",
		"",
		"SCHEMA:",
		"%schema%",
		"",
		"INPUT:",
		"%input%",
	}, "\n"),
}

var defaultProductionTemplate = map[domain.Language]string{
	domain.LanguageEN: strings.Join([]string{
		"You are a senior assistant. Using the INPUT JSON below, create an execution prompt to deliver the idea.",
		"If the idea implies software, include: architecture, stack, folder structure, endpoints, data models, validations, minimal tests, and a short README outline.",
		"If it is non-software, provide a step-by-step plan with deliverables, risks/mitigations, and success metrics.",
		"If INPUT JSON has architecture, pattern or stack with mode=manual, follow that label exactly. With mode=llm_best, choose the best option, justify it briefly and state it at the top.",
		"INPUT JSON:",
		"%response%",
	}, "\n"),
	domain.LanguageES: strings.Join([]string{
		"Eres un asistente senior. Con el INPUT JSON debajo, crea un prompt operativo para ejecutar la idea.",
		"Si la idea implica software, incluye: arquitectura, stack, estructura de carpetas, endpoints, modelos de datos, validaciones, tests minimos y un esquema corto de README.",
		"Si no implica software, entrega un plan paso a paso con entregables, riesgos/mitigaciones y metricas.",
		"Si INPUT JSON trae architecture, pattern o stack con mode=manual, sigue esa etiqueta tal cual. Con mode=llm_best, elige la mejor opcion, justificala brevemente e indicala al inicio.",
		"INPUT JSON:",
		"%respuesta%",
	}, "\n"),
}

var productionRules = map[domain.Language][]string{
	domain.LanguageEN: {
		"TASK:",
		"You are a prompt engineer. Produce the final production prompt for another LLM to execute the idea.",
		"Use the TEMPLATE as the base. Replace %response% or %respuesta% with the INPUT JSON.",
		"If the template lacks the placeholder, append the INPUT JSON at the end.",
		"Do NOT execute the idea. Output only the prompt.",
		"Return ONLY JSON with this schema:",
		`{"prompt":"..."}`,
	},
	domain.LanguageES: {
		"TAREA:",
		"Eres un prompt engineer. Genera el prompt de produccion final para que otro LLM ejecute la idea.",
		"Usa el TEMPLATE como base. Sustituye %respuesta% o %response% por el INPUT JSON.",
		"Si el template no incluye el placeholder, agrega el INPUT JSON al final.",
		"No ejecutes la idea. Devuelve solo el prompt.",
		"Devuelve SOLO JSON con este schema:",
		`{"prompt":"..."}`,
	},
}

var (
	inputPlaceholders      = []string{"%input%", "%input_json%"}
	productionPlaceholders = []string{"%response%", "%respuesta%"}
)

// resolveTemplate prefers a non-blank localized override over the built-in
// default.
func resolveTemplate(override catalog.LocalizedText, language domain.Language, defaults map[domain.Language]string) string {
	if text, ok := override.Resolve(string(language)); ok {
		return text
	}
	return defaults[language]
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// ApplyIdeaTemplate substitutes the schema and input placeholders in one
// pass. Whichever of the two the template lacks is appended as its own block.
func ApplyIdeaTemplate(template, schema, input string) string {
	out := strings.NewReplacer(
		"%schema%", schema,
		"%input%", input,
		"%input_json%", input,
	).Replace(template)
	if !strings.Contains(template, "%schema%") {
		out += "\n\nSCHEMA:\n" + schema
	}
	if !containsAny(template, inputPlaceholders) {
		out += "\n\nINPUT:\n" + input
	}
	return out
}

// ApplyProductionTemplate substitutes the response placeholders, or appends
// the input when the template has none.
func ApplyProductionTemplate(template, input string) string {
	if !containsAny(template, productionPlaceholders) {
		return template + "\n\n" + input
	}
	return strings.NewReplacer(
		"%response%", input,
		"%respuesta%", input,
	).Replace(template)
}

type selectionIntent struct {
	Mode  domain.SelectionMode `json:"mode"`
	Value string               `json:"value,omitempty"`
}

type optionInput struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

type categoryInput struct {
	Key     string        `json:"key"`
	Label   string        `json:"label,omitempty"`
	Hint    string        `json:"hint,omitempty"`
	Options []optionInput `json:"options,omitempty"`
}

type elementsInput struct {
	Categories []categoryInput `json:"categories"`
}

type ideaPromptInput struct {
	Language      string                     `json:"language"`
	TemplateLevel domain.TemplateLevel       `json:"templateLevel"`
	Architecture  string                     `json:"architecture,omitempty"`
	Selections    map[string]selectionIntent `json:"selections"`
	Elements      *elementsInput             `json:"elements,omitempty"`
	ExtraNotes    string                     `json:"extraNotes,omitempty"`
	Constraints   *domain.Constraints        `json:"constraints,omitempty"`
}

func localize(text catalog.LocalizedText, language domain.Language) string {
	v, _ := text.Resolve(string(language))
	return strings.TrimSpace(v)
}

func buildElementsInput(elements *catalog.ElementsConfig, language domain.Language) *elementsInput {
	if elements == nil || len(elements.Categories) == 0 {
		return nil
	}
	out := &elementsInput{Categories: make([]categoryInput, 0, len(elements.Categories))}
	for _, c := range elements.Categories {
		ci := categoryInput{
			Key:   c.Key,
			Label: localize(c.Label, language),
			Hint:  localize(c.Hint, language),
		}
		for _, key := range c.OptionKeys() {
			ci.Options = append(ci.Options, optionInput{
				Key:         key,
				Description: localize(c.Options[key], language),
			})
		}
		out.Categories = append(out.Categories, ci)
	}
	return out
}

// selectionIntents reports what the model should do per category. Random
// picks are already made, so they are sent as manual values. Ignored
// categories are left out.
func selectionIntents(selections map[string]domain.SelectionConfig, resolved domain.ResolvedSelections) map[string]selectionIntent {
	out := make(map[string]selectionIntent, len(selections))
	for key, cfg := range selections {
		key = strings.TrimSpace(key)
		switch cfg.Mode {
		case domain.ModeManual:
			out[key] = selectionIntent{Mode: domain.ModeManual, Value: cfg.TrimmedValue()}
		case domain.ModeRandom:
			out[key] = selectionIntent{Mode: domain.ModeManual, Value: resolved[key]}
		case domain.ModeDecide:
			out[key] = selectionIntent{Mode: domain.ModeDecide}
		}
	}
	return out
}

// BuildIdeaPrompt composes the system and user messages that ask a model for
// three ideas.
func BuildIdeaPrompt(req *domain.IdeaRequest, resolved domain.ResolvedSelections) (domain.ChatPrompt, error) {
	language := domain.ParseLanguage(req.Language)
	input := ideaPromptInput{
		Language:      req.Language,
		TemplateLevel: req.TemplateLevel,
		Architecture:  strings.TrimSpace(req.Architecture),
		Selections:    selectionIntents(req.Selections, resolved),
		Elements:      buildElementsInput(req.Elements, language),
		ExtraNotes:    strings.TrimSpace(req.ExtraNotes),
		Constraints:   req.Constraints.Trimmed(),
	}
	payload, err := marshalPayload(input)
	if err != nil {
		return domain.ChatPrompt{}, err
	}

	var overrides catalog.ElementsConfig
	if req.Elements != nil {
		overrides = *req.Elements
	}
	return domain.ChatPrompt{
		System: resolveTemplate(overrides.IdeaSystemPrompt, language, jsonOnlySystemPrompt),
		User:   ApplyIdeaTemplate(resolveTemplate(overrides.IdeaPrompt, language, defaultIdeaTemplate), IdeaSchema, payload),
	}, nil
}

type inputDetail struct {
	Value       string `json:"value"`
	Label       string `json:"label,omitempty"`
	Hint        string `json:"hint,omitempty"`
	Description string `json:"description,omitempty"`
}

type productionIdea struct {
	Title          string            `json:"title"`
	OneLiner       string            `json:"oneLiner"`
	Solution       string            `json:"solution"`
	Differentiator string            `json:"differentiator"`
	MVP            []string          `json:"mvp"`
	Score          *domain.Score     `json:"score,omitempty"`
	Pros           []string          `json:"pros"`
	Cons           []string          `json:"cons"`
	Validation     domain.Validation `json:"validation"`
	Inputs         map[string]string `json:"inputs"`
}

type productionInput struct {
	Language       string                 `json:"language"`
	TemplateLevel  domain.TemplateLevel   `json:"templateLevel"`
	Architecture   *hintPayload           `json:"architecture,omitempty"`
	Pattern        *hintPayload           `json:"pattern,omitempty"`
	Stack          *hintPayload           `json:"stack,omitempty"`
	Idea           productionIdea         `json:"idea"`
	InputsDetailed map[string]inputDetail `json:"inputsDetailed,omitempty"`
	Constraints    *domain.Constraints    `json:"constraints,omitempty"`
	ExtraNotes     string                 `json:"extraNotes,omitempty"`
}

// ideaInputs returns the idea's category values, folding in the legacy
// sector/audience/problem fields when inputs lacks them.
func ideaInputs(idea domain.Idea) map[string]string {
	out := make(map[string]string, len(idea.Inputs)+3)
	for k, v := range idea.Inputs {
		out[k] = v
	}
	legacy := map[string]string{
		catalog.ListSector:   idea.Sector,
		catalog.ListAudience: idea.Audience,
		catalog.ListProblem:  idea.Problem,
	}
	for k, v := range legacy {
		if _, ok := out[k]; !ok && strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

func buildInputsDetailed(inputs map[string]string, elements *catalog.ElementsConfig, language domain.Language) map[string]inputDetail {
	if elements == nil {
		return nil
	}
	out := make(map[string]inputDetail, len(inputs))
	for key, value := range inputs {
		detail := inputDetail{Value: value}
		if c, ok := elements.Category(key); ok {
			detail.Label = localize(c.Label, language)
			detail.Hint = localize(c.Hint, language)
			detail.Description = localize(c.Options[value], language)
		}
		out[key] = detail
	}
	return out
}

func productionPayload(req *domain.CodexPromptRequest, language domain.Language) (string, error) {
	idea := req.Idea
	inputs := ideaInputs(idea)
	var score *domain.Score
	if idea.Score.Value != 0 || len(idea.Score.Reasons) > 0 {
		score = &idea.Score
	}
	input := productionInput{
		Language:      req.Language,
		TemplateLevel: req.TemplateLevel,
		Architecture:  ParseHint(req.Architecture).payload(),
		Pattern:       ParseHint(req.Pattern).payload(),
		Stack:         ParseHint(req.Stack).payload(),
		Idea: productionIdea{
			Title:          idea.Title,
			OneLiner:       idea.OneLiner,
			Solution:       idea.Solution,
			Differentiator: idea.Differentiator,
			MVP:            idea.MVP,
			Score:          score,
			Pros:           idea.Pros,
			Cons:           idea.Cons,
			Validation:     idea.Validation,
			Inputs:         inputs,
		},
		InputsDetailed: buildInputsDetailed(inputs, req.Elements, language),
		Constraints:    req.Constraints.Trimmed(),
		ExtraNotes:     strings.TrimSpace(req.ExtraNotes),
	}
	return marshalPayload(input)
}

func productionTemplate(req *domain.CodexPromptRequest, language domain.Language) string {
	var override catalog.LocalizedText
	if req.Elements != nil {
		override = req.Elements.ProductionPrompt
	}
	return resolveTemplate(override, language, defaultProductionTemplate)
}

// BuildProductionPrompt renders the production prompt locally.
func BuildProductionPrompt(req *domain.CodexPromptRequest) (string, error) {
	language := domain.ParseLanguage(req.Language)
	payload, err := productionPayload(req, language)
	if err != nil {
		return "", err
	}
	return ApplyProductionTemplate(productionTemplate(req, language), payload), nil
}

// BuildProductionPromptMessages asks a model to fill the production template
// and answer with {"prompt": "..."}.
func BuildProductionPromptMessages(req *domain.CodexPromptRequest) (domain.ChatPrompt, error) {
	language := domain.ParseLanguage(req.Language)
	payload, err := productionPayload(req, language)
	if err != nil {
		return domain.ChatPrompt{}, err
	}
	lines := append([]string{}, productionRules[language]...)
	lines = append(lines, "", "TEMPLATE:", productionTemplate(req, language), "", "INPUT JSON:", payload)
	return domain.ChatPrompt{
		System: jsonOnlySystemPrompt[language],
		User:   strings.Join(lines, "\n"),
	}, nil
}
