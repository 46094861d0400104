/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Orchestrates every stage in the §2 data-flow order:
 *
 *   ingest → DiacriticMerger → Statistics(chars) → WordFormer →
 *   Statistics(words) → PageSegmenter → TextLineDetector →
 *   SubSuperscriptDetector → Statistics(lines) → TextBlockDetector →
 *   SemanticRoleClassifier → ReadingOrderDetector → Dehyphenator
 *
 * §2 nests the role classifier inside ReadingOrderDetector ("invokes
 * SemanticRoleClassifier"), but readingorder's own primary y-cut policy
 * reads TextBlock.Role (see readingorder.go's header comment), so role
 * classification is run as its own step immediately before
 * ReadingOrderDetector rather than from within it.
 */

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/xerrors"

	"github.com/ad-freiburg/pdftotextplus-go/blocks"
	"github.com/ad-freiburg/pdftotextplus-go/bpe"
	"github.com/ad-freiburg/pdftotextplus-go/common"
	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/dehyphen"
	"github.com/ad-freiburg/pdftotextplus-go/diacritics"
	"github.com/ad-freiburg/pdftotextplus-go/ingest"
	"github.com/ad-freiburg/pdftotextplus-go/interp"
	"github.com/ad-freiburg/pdftotextplus-go/lines"
	"github.com/ad-freiburg/pdftotextplus-go/model"
	"github.com/ad-freiburg/pdftotextplus-go/readingorder"
	"github.com/ad-freiburg/pdftotextplus-go/role"
	"github.com/ad-freiburg/pdftotextplus-go/segment"
	"github.com/ad-freiburg/pdftotextplus-go/stats"
	"github.com/ad-freiburg/pdftotextplus-go/subsuper"
	"github.com/ad-freiburg/pdftotextplus-go/words"
)

// Options configures one pipeline run beyond the tunables already carried by
// config.Config: the role classifier to inject (nil picks the deterministic
// fallback) and the PDF opener (nil picks interp.Run, the unipdf-backed
// bridge); tests substitute a fake of either.
type Options struct {
	Classifier role.Classifier
	Open       func(path string, it ingest.Interpreter) error
}

// Run ingests the PDF at `path`, drives every stage in §2 order and returns
// the populated Document ready for serialize.WriteText/WriteJSONL.
func Run(path string, cfg *config.Config, opts Options) (*model.Document, error) {
	open := opts.Open
	if open == nil {
		open = interp.Run
	}

	doc := model.NewDocument()
	resolver := ingest.NewFontResolver()
	ingestor := ingest.NewIngestor(doc, resolver)

	if err := open(path, ingestor); err != nil {
		return nil, xerrors.Errorf("ingest %s: %w", path, err)
	}

	diacritics.Merge(doc)
	stats.CharacterStats(doc, cfg)
	words.Form(doc, cfg)
	stats.WordStats(doc, cfg)
	segment.Detect(doc, cfg)
	lines.Detect(doc, cfg)
	if !cfg.DisableSubSuperScriptDetection {
		subsuper.Detect(doc, cfg)
	}
	stats.LineStats(doc, cfg)
	blocks.Detect(doc, cfg)

	classifier := opts.Classifier
	if classifier == nil {
		// The semantic-role model itself is an external collaborator (§1)
		// this module has no loader for, so every run short of an injected
		// Classifier falls back to the deterministic one, matching §7's
		// Model-load note that the pipeline continues with every block
		// assigned RoleParagraph.
		classifier = role.DefaultClassifier{}
	}
	role.Detect(doc, cfg, classifier, encoderFor(cfg))

	readingorder.Detect(doc, cfg)

	if !cfg.DisableWordsDehyphenation {
		dehyphen.Detect(doc)
	}

	return doc, nil
}

// encoderFor builds the BPE encoder role.Detect's words tensor needs. A
// missing or unreadable vocabulary file is a §7 Model-load condition: it is
// logged and role.Detect proceeds with an empty vocabulary (every token
// falls back to the unknown-id), rather than aborting the run.
func encoderFor(cfg *config.Config) *bpe.Encoder {
	vocab, err := loadVocab(cfg.BPEVocabPath)
	if err != nil {
		common.Log.Warning("bpe vocabulary %q: %v, continuing with an empty vocabulary", cfg.BPEVocabPath, err)
		vocab = map[string]int32{}
	}
	return bpe.NewEncoder(vocab)
}

// loadVocab reads a JSON object mapping token text to integer id (§4.12).
// An empty path is not an error: it simply yields an empty vocabulary.
func loadVocab(path string) (map[string]int32, error) {
	if path == "" {
		return map[string]int32{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vocab map[string]int32
	if err := json.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return vocab, nil
}
