package application

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf16"

	catalog "github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

const ideasPerResponse = 3

type phrasePools struct {
	angles       []string
	mvp          []string
	pros         []string
	cons         []string
	scoreReasons []string
	validation   validationPools
}

type validationPools struct {
	painFrequency    []string
	willingnessToPay []string
	alternatives     []string
	roiImpact        []string
	adoptionFriction []string
	acquisition      []string
	retention        []string
	risks            []string
}

var pools = map[domain.Language]phrasePools{
	domain.LanguageES: {
		angles: []string{
			"enfoque en automatizacion",
			"experiencia mobile-first",
			"analitica accionable",
			"workflow colaborativo",
			"onboarding ultra rapido",
		},
		mvp: []string{
			"panel principal con metricas clave",
			"configuracion guiada",
			"alertas inteligentes",
			"plantillas rapidas",
			"exportacion de reportes",
			"integracion basica",
		},
		pros: []string{
			"dolor claro y frecuente",
			"audiencia bien definida",
			"mvp viable en pocas semanas",
			"canal de adquisicion directo",
			"valor percibido alto",
		},
		cons: []string{
			"competencia activa en el mercado",
			"necesita validacion temprana",
			"posible friccion en onboarding",
			"riesgo de baja retencion",
			"dependencia de integraciones",
		},
		scoreReasons: []string{
			"problema recurrente",
			"impacto directo en productividad",
			"canal de entrada claro",
			"diferenciador simple",
		},
		validation: validationPools{
			painFrequency:    []string{"dolor alto y recurrente (semanal)", "dolor medio pero frecuente", "dolor alto y diario"},
			willingnessToPay: []string{"paga el responsable del area con presupuesto", "ticket medio mensual viable", "pago anual con descuento"},
			alternatives:     []string{"hoy lo hacen con Excel y correo", "usan herramientas generalistas", "no hay solucion clara"},
			roiImpact:        []string{"ahorra tiempo operativo semanal", "reduce costos directos", "mejora tasa de conversion"},
			adoptionFriction: []string{"onboarding guiado en 10 minutos", "requiere integracion basica", "cambio moderado de proceso"},
			acquisition:      []string{"canal directo via comunidades", "contenido + SEO en nicho", "partnerships con herramientas adyacentes"},
			retention:        []string{"uso recurrente por flujo semanal", "alertas y reportes generan regreso", "mvp con habitos de uso diario"},
			risks:            []string{"dependencia de integraciones externas", "riesgo de adopcion inicial baja", "competencia con players establecidos"},
		},
	},
	domain.LanguageEN: {
		angles: []string{
			"automation-first",
			"mobile-first experience",
			"actionable analytics",
			"collaborative workflow",
			"fast onboarding",
		},
		mvp: []string{
			"dashboard with key metrics",
			"guided setup",
			"smart alerts",
			"quick templates",
			"report export",
			"basic integration",
		},
		pros: []string{
			"clear and frequent pain",
			"well-defined audience",
			"mvp viable in a few weeks",
			"direct acquisition channel",
			"high perceived value",
		},
		cons: []string{
			"active competition in the market",
			"needs early validation",
			"possible onboarding friction",
			"risk of low retention",
			"dependency on integrations",
		},
		scoreReasons: []string{
			"recurring problem",
			"direct productivity impact",
			"clear acquisition channel",
			"simple differentiator",
		},
		validation: validationPools{
			painFrequency:    []string{"high and recurring pain (weekly)", "medium pain but frequent", "high and daily pain"},
			willingnessToPay: []string{"paid by team lead with budget", "viable mid monthly ticket", "annual payment with discount"},
			alternatives:     []string{"handled with spreadsheets and email", "using generic tools", "no clear solution today"},
			roiImpact:        []string{"saves weekly operational time", "reduces direct costs", "improves conversion rate"},
			adoptionFriction: []string{"guided onboarding in 10 minutes", "requires basic integration", "moderate process change"},
			acquisition:      []string{"direct channel via communities", "content + SEO in niche", "partnerships with adjacent tools"},
			retention:        []string{"recurring weekly workflow", "alerts and reports drive return", "daily habit loop"},
			risks:            []string{"dependency on external integrations", "risk of low early adoption", "competition with established players"},
		},
	},
}

// ideaFacts are the five category values the local templates talk about,
// despaced for prose. seed keeps the raw sector and audience for scoring.
type ideaFacts struct {
	sector, audience, problem, productType, channel string
	seed                                            string
}

func factsFrom(resolved domain.ResolvedSelections, language domain.Language) ideaFacts {
	raw := func(key string) string {
		if v := strings.TrimSpace(resolved[key]); v != "" {
			return v
		}
		return FallbackValue(language, key)
	}
	return ideaFacts{
		sector:      Despace(raw(catalog.ListSector)),
		audience:    Despace(raw(catalog.ListAudience)),
		problem:     Despace(raw(catalog.ListProblem)),
		productType: Despace(raw(catalog.ListProductType)),
		channel:     Despace(raw(catalog.ListChannel)),
		seed:        raw(catalog.ListSector) + "-" + raw(catalog.ListAudience),
	}
}

// localIdeaGenerator fabricates ideas from fixed phrase pools. It never
// calls out of process.
type localIdeaGenerator struct {
	rng Rand
}

// NewLocalIdeaGenerator creates the offline generator. A nil rng uses the
// process-wide source.
func NewLocalIdeaGenerator(rng Rand) IdeaGenerator {
	if rng == nil {
		rng = DefaultRand()
	}
	return &localIdeaGenerator{rng: rng}
}

// Generate always returns exactly three ideas.
func (g *localIdeaGenerator) Generate(_ context.Context, req *domain.IdeaRequest, resolved domain.ResolvedSelections, _ OptionLists) (*domain.IdeaResponse, error) {
	language := domain.ParseLanguage(req.Language)
	facts := factsFrom(resolved, language)

	ideas := make([]domain.Idea, 0, ideasPerResponse)
	for i := 0; i < ideasPerResponse; i++ {
		ideas = append(ideas, g.buildIdea(i, language, facts, resolved))
	}

	return &domain.IdeaResponse{
		Language: string(language),
		Ideas:    ideas,
		Prompt: domain.IdeaPrompt{
			Intro:     introText(language, facts),
			Technical: technicalText(language, req, resolved),
		},
	}, nil
}

func (g *localIdeaGenerator) buildIdea(index int, language domain.Language, f ideaFacts, resolved domain.ResolvedSelections) domain.Idea {
	p := pools[language]
	v := p.validation
	angle := p.angles[index%len(p.angles)]

	inputs := make(map[string]string, len(resolved))
	for k, val := range resolved {
		inputs[k] = val
	}

	idea := domain.Idea{
		Inputs:   inputs,
		Sector:   f.sector,
		Audience: f.audience,
		Problem:  f.problem,
		MVP:      pickUnique(p.mvp, 3, g.rng),
		Score: domain.Score{
			Value:   float64(ScoreFromSeed(fmt.Sprintf("%s-%d", f.seed, index))),
			Reasons: pickUnique(p.scoreReasons, 3, g.rng),
		},
		Pros: pickUnique(p.pros, 3, g.rng),
		Cons: pickUnique(p.cons, 3, g.rng),
		Validation: domain.Validation{
			PainFrequency:    pickFrom(v.painFrequency, g.rng),
			WillingnessToPay: pickFrom(v.willingnessToPay, g.rng),
			Alternatives:     pickFrom(v.alternatives, g.rng),
			ROIImpact:        pickFrom(v.roiImpact, g.rng),
			AdoptionFriction: pickFrom(v.adoptionFriction, g.rng),
			Acquisition:      pickFrom(v.acquisition, g.rng),
			Retention:        pickFrom(v.retention, g.rng),
			Risks:            pickFrom(v.risks, g.rng),
		},
	}

	product := capitalize(f.productType)
	if language == domain.LanguageEN {
		idea.Title = fmt.Sprintf("%s for %s in %s", product, f.audience, f.sector)
		idea.OneLiner = fmt.Sprintf("%s that helps %s improve %s with a %s go-to-market.", product, f.audience, f.problem, f.channel)
		idea.Solution = "Centralizes the workflow with automation and real-time tracking."
		idea.Differentiator = fmt.Sprintf("Differentiator: %s.", angle)
	} else {
		idea.Title = fmt.Sprintf("%s para %s en %s", product, f.audience, f.sector)
		idea.OneLiner = fmt.Sprintf("%s que ayuda a %s a mejorar %s con enfoque en %s.", product, f.audience, f.problem, f.channel)
		idea.Solution = fmt.Sprintf("Centraliza %s en un solo flujo con automatizaciones y seguimiento en tiempo real.", f.problem)
		idea.Differentiator = fmt.Sprintf("Diferenciador: %s.", angle)
	}
	return idea
}

func introText(language domain.Language, f ideaFacts) string {
	if language == domain.LanguageEN {
		return fmt.Sprintf("Application for %s in the %s space that solves %s. Distributed via %s with an MVP-first approach.",
			f.audience, f.sector, f.problem, f.channel)
	}
	return fmt.Sprintf("Aplicacion para %s en el sector %s que resuelve %s. Se distribuye via %s y prioriza un MVP rapido.",
		f.audience, f.sector, f.problem, f.channel)
}

// selectedHint reads a pattern or stack hint from the resolved selections.
// Categories the request ignores or omits yield an absent hint.
func selectedHint(req *domain.IdeaRequest, resolved domain.ResolvedSelections, key string) Hint {
	cfg, ok := req.Selections[key]
	if !ok || cfg.Mode == domain.ModeIgnore {
		return Hint{}
	}
	return ParseHint(resolved[key])
}

func technicalText(language domain.Language, req *domain.IdeaRequest, resolved domain.ResolvedSelections) string {
	en := language == domain.LanguageEN
	var lines []string
	add := func(line string) {
		if line != "" {
			lines = append(lines, line)
		}
	}

	if en {
		add("Technical prompt:")
		add("Goal: build a simple, maintainable web app with Clean Code (easy-to-read code).")
		add(fmt.Sprintf("Template level: %s.", req.TemplateLevel))
	} else {
		add("Prompt tecnico:")
		add("Objetivo: construir una app web simple y mantenible con Clean Code (codigo facil de leer).")
		add(fmt.Sprintf("Nivel de plantilla: %s.", req.TemplateLevel))
	}
	add(ParseHint(req.Architecture).Line(language, HintArchitecture))
	add(selectedHint(req, resolved, catalog.ListPattern).Line(language, HintPattern))
	add(selectedHint(req, resolved, catalog.ListStack).Line(language, HintStack))

	if en {
		add("If applicable, organize layers: domain, application, infrastructure, interface.")
		add("Define endpoints, data models, and validations.")
		add("Add minimal unit tests for use cases.")
		add("Deliver folder structure and a short README.")
	} else {
		add("Si aplica, organiza en capas: domain, application, infrastructure, interface.")
		add("Define endpoints, modelos de datos y validaciones.")
		add("Agrega tests unitarios minimos para casos de uso.")
		add("Entrega estructura de carpetas y README breve.")
	}

	if req.TemplateLevel == domain.TemplateAdvanced {
		if en {
			add("Add structured logging, centralized error handling and per-environment configuration.")
			add("Include integration tests for the main endpoints and a CI pipeline outline.")
		} else {
			add("Agrega logging estructurado, manejo de errores centralizado y configuracion por entorno.")
			add("Incluye tests de integracion de los endpoints principales y un esquema de pipeline CI.")
		}
	}

	if c := req.Constraints.Trimmed(); c != nil {
		if en {
			add(labeled("Available time", c.Time))
			add(labeled("Effort/capacity", c.Effort))
			add(labeled("Budget", c.Budget))
		} else {
			add(labeled("Tiempo disponible", c.Time))
			add(labeled("Esfuerzo/capacidad", c.Effort))
			add(labeled("Presupuesto", c.Budget))
		}
	}

	if extra := strings.TrimSpace(req.ExtraNotes); extra != "" {
		if en {
			add(labeled("Extra notes", extra))
		} else {
			add(labeled("Notas extra", extra))
		}
	}
	return strings.Join(lines, "\n")
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value + "."
}

// ScoreFromSeed maps a seed onto a score in [6,10]. The hash runs over
// UTF-16 code units so non-ASCII seeds score the same as in browser clients.
func ScoreFromSeed(seed string) int {
	hash := 0
	for i, unit := range utf16.Encode([]rune(seed)) {
		hash = (hash + int(unit)*(i+1)) % 997
	}
	return 6 + hash%5
}

// pickUnique draws up to count distinct entries without replacement.
func pickUnique(pool []string, count int, rng Rand) []string {
	remaining := append([]string(nil), pool...)
	picked := make([]string, 0, count)
	for len(remaining) > 0 && len(picked) < count {
		i := rng.IntN(len(remaining))
		picked = append(picked, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return picked
}

func pickFrom(pool []string, rng Rand) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.IntN(len(pool))]
}
