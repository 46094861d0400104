/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Centralizes every tunable from §6's configuration table, the way the
 * C++ pdftotext++'s Config.h does, but loaded declaratively: a Config
 * literal of defaults, optionally overridden by a YAML file via
 * gopkg.in/yaml.v3 (promoted here from an indirect unipdf dependency).
 */

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the core pipeline consults. All fields have
// defaults (see Default()); units are point-typographic unless noted.
type Config struct {
	CoordinatePrecision  int `yaml:"coordinate_precision"`
	FontSizePrecision    int `yaml:"font_size_precision"`
	LineDistancePrecision int `yaml:"line_distance_precision"`

	CoordsEqualTolerance float64 `yaml:"coords_equal_tolerance"`
	FSEqualTolerance     float64 `yaml:"fs_equal_tolerance"`

	MinYOverlapRatioSameLine      float64 `yaml:"min_y_overlap_ratio_same_line"`
	MaxYOverlapRatioDifferentLine float64 `yaml:"max_y_overlap_ratio_different_line"`

	OverlappingMinNumElements        int     `yaml:"overlapping_min_num_elements"`
	OverlappingElementsMarginFactor  float64 `yaml:"overlapping_elements_margin_threshold_factor"`
	ContiguousWordsYOverlapThreshold float64 `yaml:"contiguous_words_y_overlap_ratio_threshold"`
	SlimGroupWidthThresholdFactor    float64 `yaml:"slim_group_width_threshold_factor"`
	MinGapWidthThresholdFactor       float64 `yaml:"min_gap_width_threshold_factor"`
	MinGapHeightThresholdFactor      float64 `yaml:"min_gap_height_threshold_factor"`

	MinWordBreakSpace float64 `yaml:"min_word_break_space"`

	TrimBoxCoordsPrec        int     `yaml:"trim_box_coords_prec"`
	MinPercLinesSameRightX   float64 `yaml:"min_perc_lines_same_right_x"`

	HangIndentMinLengthLongLines           int     `yaml:"hang_indent_min_length_long_lines"`
	HangIndentMinPercLinesSameLeftMargin    float64 `yaml:"hang_indent_min_perc_lines_same_left_margin"`
	HangIndentNumNonIndentedLinesThreshold  int     `yaml:"hang_indent_num_non_indented_lines_threshold"`
	HangIndentNumIndentedLinesThreshold     int     `yaml:"hang_indent_num_indented_lines_threshold"`
	HangIndentNumLowerNonIndentedLinesThreshold int `yaml:"hang_indent_num_lower_non_indented_lines_threshold"`
	HangIndentNumLowerIndentedLinesThreshold    int `yaml:"hang_indent_num_lower_indented_lines_threshold"`

	CenteringXOffsetThresholdFactor float64 `yaml:"centering_x_offset_threshold_factor"`
	CenteringMaxNumJustifiedLines   int     `yaml:"centering_max_num_justified_lines"`

	// LineDistanceFactor is how far a line gap may exceed the document's
	// most-frequent line distance before begins-new-block's lineDistanceRule
	// fires (§4.9).
	LineDistanceFactor float64 `yaml:"line_distance_factor"`
	// FontWeightThreshold is how far a line's font weight must exceed the
	// previous line's before begins-new-block's fontWeightRule fires (§4.9).
	FontWeightThreshold float64 `yaml:"font_weight_threshold"`

	// LastNamePrefixes exempts tokens such as "van", "von", "de" from the
	// "lowercase non-indented line vetoes hanging indent" rule (§4.9, §9
	// supplemented features).
	LastNamePrefixes []string `yaml:"last_name_prefixes"`

	// SuperItemLabelAlphabet and FootnoteLabelAlphabet are the two distinct
	// label sets §4.9 item/footnote detection consults; kept separate per
	// SPEC_FULL.md's "supplemented features".
	SuperItemLabelAlphabet []string `yaml:"super_item_label_alphabet"`
	FootnoteLabelAlphabet  []string `yaml:"footnote_label_alphabet"`
	// ItemLabelPatterns are regexes matched against a line's start, e.g.
	// `^\d+\.`, `^\(\d+\)`, `^[a-z]\)`, `^-\s` (§4.9).
	ItemLabelPatterns []string `yaml:"item_label_patterns"`

	// Ambient / CLI-facing.
	LogLevel      string `yaml:"log_level"`
	LogPageFilter int    `yaml:"log_page_filter"`

	SemanticRolesModelPath string `yaml:"semantic_roles_model_path"`
	BPEVocabPath           string `yaml:"bpe_vocab_path"`

	DisableSemanticRolesPrediction bool `yaml:"-"`
	DisableSubSuperScriptDetection bool `yaml:"-"`
	DisableWordsDehyphenation      bool `yaml:"-"`
	ControlCharacters              bool `yaml:"-"`
}

// Default returns the configuration the core pipeline uses unless overridden
// (§6). The numeric defaults follow the ones quoted inline there; where a
// factor is left unquantified ("proportional to...") a concrete value is
// chosen here.
func Default() *Config {
	return &Config{
		CoordinatePrecision:   1,
		FontSizePrecision:     1,
		LineDistancePrecision: 1,

		CoordsEqualTolerance: 0.5,
		FSEqualTolerance:     0.5,

		MinYOverlapRatioSameLine:      0.5,
		MaxYOverlapRatioDifferentLine: 0.0,

		OverlappingMinNumElements:        3,
		OverlappingElementsMarginFactor:  5.0,
		ContiguousWordsYOverlapThreshold: 0.5,
		SlimGroupWidthThresholdFactor:    5.0,
		MinGapWidthThresholdFactor:       3.0,
		MinGapHeightThresholdFactor:      3.0,

		MinWordBreakSpace: 0.15,

		TrimBoxCoordsPrec:      1,
		MinPercLinesSameRightX: 0.5,

		HangIndentMinLengthLongLines:          3,
		HangIndentMinPercLinesSameLeftMargin:  0.5,
		HangIndentNumNonIndentedLinesThreshold: 2,
		HangIndentNumIndentedLinesThreshold:    2,
		HangIndentNumLowerNonIndentedLinesThreshold: 0,
		HangIndentNumLowerIndentedLinesThreshold:    1,

		CenteringXOffsetThresholdFactor: 2.0,
		CenteringMaxNumJustifiedLines:   1,

		LineDistanceFactor:  1.1,
		FontWeightThreshold: 100,

		LastNamePrefixes: []string{"van", "von", "de", "der", "den", "la", "le"},

		SuperItemLabelAlphabet: []string{"*", "†", "‡", "§", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
		FootnoteLabelAlphabet:  []string{"*", "†", "‡", "§", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
		ItemLabelPatterns: []string{
			`^\d+\.`,
			`^\(\d+\)`,
			`^[a-z]\)`,
			`^-\s`,
			`^•\s`,
		},

		LogLevel:      "warning",
		LogPageFilter: 0,
	}
}

// Load reads a YAML file at `path` and overrides Default()'s fields with
// whatever it sets (§6 Configuration). A missing or unreadable file is an
// error; the CLI only calls Load when a --config flag was given.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
