package container

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"poemnames/adapters/excel"
	"poemnames/adapters/llm"
	"poemnames/adapters/postgres"
	"poemnames/adapters/rng"
	"poemnames/app"
	"poemnames/domain/lexicon"
	"poemnames/internal"
	"poemnames/internal/cache"
	"poemnames/internal/config"
	"poemnames/internal/generator"
	"poemnames/internal/recommender"
	"poemnames/ports"
)

// Container holds all application dependencies and manages their lifecycle.
// The lexicon-derived services sit behind a lock so an admin reload can
// swap them without restarting.
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB    *sqlx.DB
	Cache *cache.Memory
	RNG   ports.RNGPort

	// Repositories (data access layer)
	Words     ports.WordRepository
	Surnames  ports.SurnameRepository
	Poetry    ports.PoetryRepository
	History   ports.HistoryRepository
	Writer    ports.HistoryWriter
	LexSource lexicon.Source

	// Collaborators
	LLM       ports.LLMClient
	Explainer recommender.Explainer
	Ranker    *recommender.Recommender

	mu       sync.RWMutex
	lex      *lexicon.Lexicon
	gen      *generator.Generator
	names    *app.NameService
	analysis *app.AnalysisService
	trending *app.TrendingService
}

// New creates a container from config. db may be nil when the lexicon
// comes from a workbook; history-backed features then degrade to no-ops.
func New(cfg *config.Config, db *sqlx.DB, log *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Cache:  cache.NewMemory(),
		RNG:    rng.New(),
	}

	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	c.initCollaborators()

	if err := c.ReloadLexicon(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

// Parts carries a preassembled data layer for NewFromParts.
type Parts struct {
	LexSource lexicon.Source
	Surnames  ports.SurnameRepository
	Poetry    ports.PoetryRepository
	History   ports.HistoryRepository
	Writer    ports.HistoryWriter
}

// NewFromParts wires a container around repositories the caller already
// built. Handler tests and embedded deployments use this instead of New.
func NewFromParts(cfg *config.Config, log *internal.Logger, parts Parts) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if parts.LexSource == nil {
		return nil, fmt.Errorf("lexicon source cannot be nil")
	}

	c := &Container{
		Config:    cfg,
		Logger:    log,
		Cache:     cache.NewMemory(),
		RNG:       rng.New(),
		Surnames:  parts.Surnames,
		Poetry:    parts.Poetry,
		History:   parts.History,
		Writer:    parts.Writer,
		LexSource: parts.LexSource,
	}
	if c.Poetry == nil {
		c.Poetry = emptyPoetry{}
	}
	if c.History == nil {
		c.History = noHistory{}
	}
	if c.Writer == nil {
		c.Writer = noHistory{}
	}

	c.initCollaborators()
	if err := c.ReloadLexicon(context.Background()); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() error {
	switch {
	case c.DB != nil:
		c.Words = postgres.NewWordRepository(c.DB)
		c.Surnames = postgres.NewSurnameRepository(c.DB)
		c.Poetry = postgres.NewPoetryRepository(c.DB)
		history := postgres.NewHistoryRepository(c.DB)
		c.History = history
		c.Writer = history
		c.LexSource = postgres.NewLexiconSource(c.Words)
	case c.Config.Lexicon.XLSXPath != "":
		c.LexSource = excel.NewLexiconSource(c.Config.Lexicon.XLSXPath)
		c.Surnames = excel.NewSurnameSource(c.Config.Lexicon.XLSXPath)
		c.Poetry = emptyPoetry{}
		history := noHistory{}
		c.History = history
		c.Writer = history
	default:
		return fmt.Errorf("no lexicon source configured")
	}
	return nil
}

func (c *Container) initCollaborators() {
	if c.Config.LLM.APIKey != "" {
		client, err := llm.NewClient(c.Config.LLM)
		if err != nil {
			c.Logger.Warn("LLM client unavailable, explanations use fallback: %v", err)
		} else {
			c.LLM = client
			c.Explainer = llm.NewExplainer(client, c.Config.LLM, c.Logger)
		}
	}
	c.Ranker = recommender.New(c.History, c.Cache, c.RNG, c.Logger)
}

// ReloadLexicon re-reads the word source and swaps in rebuilt services.
func (c *Container) ReloadLexicon(ctx context.Context) error {
	lex, err := lexicon.Load(ctx, c.LexSource)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}
	gen := generator.New(lex, c.Config.Generator, c.RNG, c.Logger)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lex = lex
	c.gen = gen
	c.names = app.NewNameService(gen, c.Surnames, c.Poetry, c.History, c.Writer, c.Ranker, c.Explainer, c.Cache, c.Logger)
	c.analysis = app.NewAnalysisService(gen.Elements(), gen.Phonology())
	c.trending = app.NewTrendingService(c.History, c.Cache, c.Logger)
	c.Cache.Delete("word_data", "lexicon")
	c.Logger.Info("lexicon loaded: %d characters", lex.Len())
	return nil
}

// NameService returns the current generation service.
func (c *Container) NameService() *app.NameService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names
}

// AnalysisService returns the current analysis service.
func (c *Container) AnalysisService() *app.AnalysisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.analysis
}

// TrendingService returns the trending service.
func (c *Container) TrendingService() *app.TrendingService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trending
}

// LexiconSize reports the loaded character count for health output.
func (c *Container) LexiconSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lex == nil {
		return 0
	}
	return c.lex.Len()
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
