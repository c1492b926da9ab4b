// Package config provides the engine's resource-bound settings: the constants spec.md fixes
// (token length gates, posting caps, vocabulary ceiling, cache sizes) expressed as an
// overridable struct for embedders, with a YAML loader for the optional --config flag.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EngineSettings holds the core's resource bounds. The zero value is not
// usable directly — call ApplyDefaults (or LoadEngineSettings, which calls it for you).
// Overrides take effect for MaxFileSizeBytes, MaxPostingFreq, MaxPostingPositions,
// MaxVocabulary, MinTrieWordLength, MaxTrieWordLength, ResultCacheSize and DefaultPageSize.
// MinTermLength, MaxTermLength, MaxTokenScanBytes, MaxTokensPerDoc and PrefixCacheSize are
// defaulted and validated but not read: the tokenizer and the trie's prefix cache use their
// own fixed constants, which equal these fields' defaults.
type EngineSettings struct {
	MinTermLength       int   `yaml:"min_term_length" json:"min_term_length"`
	MaxTermLength       int   `yaml:"max_term_length" json:"max_term_length"`
	MaxTokenScanBytes   int   `yaml:"max_token_scan_bytes" json:"max_token_scan_bytes"`
	MaxTokensPerDoc     int   `yaml:"max_tokens_per_doc" json:"max_tokens_per_doc"`
	MaxFileSizeBytes    int64 `yaml:"max_file_size_bytes" json:"max_file_size_bytes"`
	MaxPostingFreq      int   `yaml:"max_posting_freq" json:"max_posting_freq"`
	MaxPostingPositions int   `yaml:"max_posting_positions" json:"max_posting_positions"`
	MaxVocabulary       int   `yaml:"max_vocabulary" json:"max_vocabulary"`
	MaxTrieWordLength   int   `yaml:"max_trie_word_length" json:"max_trie_word_length"`
	MinTrieWordLength   int   `yaml:"min_trie_word_length" json:"min_trie_word_length"`
	ResultCacheSize     int   `yaml:"result_cache_size" json:"result_cache_size"`
	PrefixCacheSize     int   `yaml:"prefix_cache_size" json:"prefix_cache_size"`
	DefaultPageSize     int   `yaml:"default_page_size" json:"default_page_size"`
}

// ApplyDefaults fills every zero-valued field with the constant spec.md specifies. Embedders
// that only want to tune a handful of bounds can leave the rest unset.
func (s *EngineSettings) ApplyDefaults() {
	if s.MinTermLength == 0 {
		s.MinTermLength = 2
	}
	if s.MaxTermLength == 0 {
		s.MaxTermLength = 15
	}
	if s.MaxTokenScanBytes == 0 {
		s.MaxTokenScanBytes = 31
	}
	if s.MaxTokensPerDoc == 0 {
		s.MaxTokensPerDoc = 100_000
	}
	if s.MaxFileSizeBytes == 0 {
		s.MaxFileSizeBytes = 100 * 1024 * 1024
	}
	if s.MaxPostingFreq == 0 {
		s.MaxPostingFreq = 1000
	}
	if s.MaxPostingPositions == 0 {
		s.MaxPostingPositions = 50
	}
	if s.MaxVocabulary == 0 {
		s.MaxVocabulary = 200_000
	}
	if s.MaxTrieWordLength == 0 {
		s.MaxTrieWordLength = 20
	}
	if s.MinTrieWordLength == 0 {
		s.MinTrieWordLength = 2
	}
	if s.ResultCacheSize == 0 {
		s.ResultCacheSize = 1000
	}
	if s.PrefixCacheSize == 0 {
		s.PrefixCacheSize = 1000
	}
	if s.DefaultPageSize == 0 {
		s.DefaultPageSize = 10
	}
}

// Validate returns a list of human-readable problems with the settings, if any.
func (s *EngineSettings) Validate() []string {
	var problems []string
	if s.MinTermLength < 1 {
		problems = append(problems, "min_term_length must be >= 1")
	}
	if s.MaxTermLength < s.MinTermLength {
		problems = append(problems, "max_term_length must be >= min_term_length")
	}
	if s.MaxVocabulary < 1 {
		problems = append(problems, "max_vocabulary must be >= 1")
	}
	if s.ResultCacheSize < 1 {
		problems = append(problems, "result_cache_size must be >= 1")
	}
	if s.PrefixCacheSize < 1 {
		problems = append(problems, "prefix_cache_size must be >= 1")
	}
	if s.DefaultPageSize < 1 {
		problems = append(problems, "default_page_size must be >= 1")
	}
	return problems
}

// Default returns EngineSettings with every bound set to the spec.md constant.
func Default() EngineSettings {
	var s EngineSettings
	s.ApplyDefaults()
	return s
}

// LoadEngineSettings reads a YAML override file, applies defaults over any unset field, and
// validates the result. This backs the CLI's optional --config flag; the flag is additive —
// omitting it yields Default().
func LoadEngineSettings(path string) (EngineSettings, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is an operator-supplied CLI flag
	if err != nil {
		return EngineSettings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var s EngineSettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return EngineSettings{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	s.ApplyDefaults()

	if problems := s.Validate(); len(problems) > 0 {
		return EngineSettings{}, fmt.Errorf("invalid config file %s: %v", path, problems)
	}
	return s, nil
}
