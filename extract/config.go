package extract

import (
	"text2phenotype.com/treefeat/logger"
	"text2phenotype.com/treefeat/utils"
	"errors"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"
)

// template families a configuration may enable
const (
	FeatureMention = "mention"
	FeatureLeft    = "left"
	FeatureRight   = "right"
	FeatureBetween = "between"
)

// Configuration describes one extraction setup: which template families to
// apply to a mention pair and which node attributes to project them onto.
type Configuration struct {
	Name       string   `json:"name"`
	FilePath   string   `json:"file_path"`
	Features   []string `yaml:"features" json:"features"`
	Attributes []string `yaml:"attributes" json:"attributes"`
}

func (cfg Configuration) CheckFeature(featureName string) bool {
	for _, feat := range cfg.Features {
		if feat == featureName {
			return true
		}
	}

	return false
}

// GetHashCode identifies the template set a configuration produces; the
// extractor keys its template cache on it.
func (cfg Configuration) GetHashCode() uint64 {
	parts := make([][]byte, 0, 1+len(cfg.Features)+len(cfg.Attributes))
	parts = append(parts, []byte(strings.ToLower(cfg.Name)))
	for _, feat := range cfg.Features {
		parts = append(parts, []byte(strings.ToLower(feat)))
	}
	for _, attrib := range cfg.Attributes {
		parts = append(parts, []byte(strings.ToLower(attrib)))
	}
	return utils.HashBytes(parts...)
}

func validFeature(featureName string) bool {
	switch featureName {
	case FeatureMention, FeatureLeft, FeatureRight, FeatureBetween:
		return true
	}
	return false
}

// LoadConfigurations reads every *.yaml file in dirPath into a
// Configuration. Files that fail to parse or name an unknown template family
// are logged and skipped rather than failing the whole load.
func LoadConfigurations(dirPath string) (configs []Configuration, err error) {
	defer utils.RecoverWithError(&err)
	extLogger := logger.NewLogger("LoadConfigurations")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	configChan := make(chan Configuration, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.FileInfo) {
			defer wg.Done()
			cfg := Configuration{
				Name:     strings.Split(file.Name(), ".yaml")[0],
				FilePath: path.Join(dirPath, file.Name()),
			}
			buf, err := ioutil.ReadFile(cfg.FilePath)
			if err != nil {
				extLogger.Err(err)
				return
			}
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				extLogger.Err(err)
				return
			}

			for _, feat := range cfg.Features {
				if !validFeature(feat) {
					extLogger.Err(errors.New("unknown template family " + feat))
					return
				}
			}

			configChan <- cfg
		}(f)
	}

	go func() {
		wg.Wait()
		close(configChan)
	}()

	configs = make([]Configuration, 0, len(configChan))
	for cfg := range configChan {
		configs = append(configs, cfg)
	}
	return configs, nil
}
