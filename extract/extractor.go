// Package extract assembles feature-template sets from declarative
// configurations and runs them over parsed documents. It is the embedding
// layer around the features core: callers hand it a document tree and a
// mention pair, it hands back the flat feature-string sequence a downstream
// classifier consumes.
package extract

import (
	"text2phenotype.com/treefeat/features"
	"text2phenotype.com/treefeat/logger"
	"text2phenotype.com/treefeat/utils"
	"text2phenotype.com/treefeat/xmltree"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"io"
	"sync"
)

type Config struct {
	ConfigPath string `envconfig:"TREEFEAT_CONFIG_PATH" default:"configs"`
	PrintAttr  string `envconfig:"TREEFEAT_PRINT_ATTR" default:"word"`
}

// Extractor holds the loaded configurations and a cache of built template
// sets. Safe for concurrent Extract calls.
type Extractor struct {
	config    Config
	configs   map[string]Configuration
	mu        sync.Mutex
	cache     map[uint64][]features.Applier
	extLogger *zerolog.Logger
}

func New() (*Extractor, error) {
	extLogger := logger.NewLogger("Extractor")

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		extLogger.Error().Err(err).Msg("Could not read config")
		return nil, err
	}
	cfgs, err := LoadConfigurations(config.ConfigPath)
	if err != nil {
		extLogger.Error().Err(err).Msg("Could not load configurations")
		return nil, err
	}
	extLogger.Info().Msgf("Loaded %d configurations", len(cfgs))
	return newExtractor(config, cfgs), nil
}

func newExtractor(config Config, cfgs []Configuration) *Extractor {
	extLogger := logger.NewLogger("Extractor")
	configs := make(map[string]Configuration, len(cfgs))
	for _, cfg := range cfgs {
		configs[cfg.Name] = cfg
	}
	return &Extractor{
		config:    config,
		configs:   configs,
		cache:     make(map[uint64][]features.Applier),
		extLogger: &extLogger,
	}
}

// ParseDocument parses a document tree and applies the configured print
// attribute to it.
func (ex *Extractor) ParseDocument(r io.Reader) (*xmltree.Document, error) {
	doc, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}
	doc.PrintAttr = ex.config.PrintAttr
	return doc, nil
}

// Extract applies the named configuration's template set to the mention pair
// (cid1, cid2) in doc, returning the concatenated feature strings in
// template order. Errors from any template, including a Between over
// disconnected mentions, are surfaced, not swallowed.
func (ex *Extractor) Extract(configName string, doc *xmltree.Document, cid1, cid2 string) ([]string, error) {
	cfg, ok := ex.configs[configName]
	if !ok {
		return nil, fmt.Errorf("unknown configuration %q", configName)
	}

	var feats []string
	for _, tmpl := range ex.templatesFor(cfg, cid1, cid2) {
		out, err := tmpl.Apply(doc)
		if err != nil {
			return nil, err
		}
		feats = append(feats, out...)
	}
	return feats, nil
}

func (ex *Extractor) templatesFor(cfg Configuration, cid1, cid2 string) []features.Applier {
	key := utils.HashString(fmt.Sprintf("%d|%s|%s", cfg.GetHashCode(), cid1, cid2))

	ex.mu.Lock()
	defer ex.mu.Unlock()
	if templates, ok := ex.cache[key]; ok {
		return templates
	}
	templates := buildTemplates(cfg, cid1, cid2)
	ex.cache[key] = templates
	ex.extLogger.Debug().Msgf("Built %d templates for configuration %s", len(templates), cfg.Name)
	return templates
}

func buildTemplates(cfg Configuration, cid1, cid2 string) []features.Applier {
	m1 := features.Mention(cid1)
	m2 := features.Mention(cid2)

	var base []*features.Template
	if cfg.CheckFeature(FeatureMention) {
		base = append(base, m1, m2)
	}
	if cfg.CheckFeature(FeatureLeft) {
		base = append(base, features.Left(m1), features.Left(m2))
	}
	if cfg.CheckFeature(FeatureRight) {
		base = append(base, features.Right(m1), features.Right(m2))
	}

	templates := make([]features.Applier, 0, len(base)*(1+len(cfg.Attributes))+1)
	for _, tmpl := range base {
		templates = append(templates, tmpl)
		for _, attrib := range cfg.Attributes {
			templates = append(templates, features.Get(tmpl, attrib))
		}
	}
	if cfg.CheckFeature(FeatureBetween) {
		// The path feature renders raw nodes; attribute projection does not
		// compose with its apply-time path reconstruction.
		templates = append(templates, features.Between(m1, m2))
	}
	return templates
}
