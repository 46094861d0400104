/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.12's BytePairEncoder: the role classifier's only text input
 * preparation. No pack library offers byte-pair tokenization (the closest
 * analogue in `original_source/`, `WordsTokenizer.cpp`, tokenizes into words,
 * not sub-word units), so this is built on `strings` and rune slices alone.
 */

package bpe

import "strings"

// Encoder holds a flat token vocabulary plus the three reserved symbol ids
// appended right after it (§4.12): padding, unknown-char, word-delimiter.
type Encoder struct {
	vocab       map[string]int32
	paddingID   int32
	unknownID   int32
	delimiterID int32

	// cache memoizes encode_word by word text, as §4.12 specifies.
	cache map[string][]int32
}

// NewEncoder builds an Encoder from a token-to-id vocabulary, assigning the
// three reserved symbols the next three ids after the vocabulary's maximum.
func NewEncoder(vocab map[string]int32) *Encoder {
	maxID := int32(-1)
	for _, id := range vocab {
		if id > maxID {
			maxID = id
		}
	}
	return &Encoder{
		vocab:       vocab,
		paddingID:   maxID + 1,
		unknownID:   maxID + 2,
		delimiterID: maxID + 3,
		cache:       map[string][]int32{},
	}
}

// PaddingID, UnknownID and DelimiterID expose the reserved ids so callers
// building padded tensors elsewhere (the role package's words-tensor) don't
// have to recompute them.
func (e *Encoder) PaddingID() int32   { return e.paddingID }
func (e *Encoder) UnknownID() int32   { return e.unknownID }
func (e *Encoder) DelimiterID() int32 { return e.delimiterID }

// Encode splits `text` on whitespace, prefixes each word with the
// word-delimiter id and appends its encodeWord result, then pads or
// truncates to exactly targetLength ids (§4.12).
func (e *Encoder) Encode(text string, targetLength int) []int32 {
	out := make([]int32, 0, targetLength)
	for _, word := range strings.Fields(text) {
		if len(out) >= targetLength {
			break
		}
		out = append(out, e.delimiterID)
		out = append(out, e.encodeWord(word)...)
	}

	if len(out) >= targetLength {
		return out[:targetLength]
	}
	padded := make([]int32, targetLength)
	copy(padded, out)
	for i := len(out); i < targetLength; i++ {
		padded[i] = e.paddingID
	}
	return padded
}

// encodeWord runs §4.12's iterative adjacent-pair-merge algorithm: tokens
// start as single Unicode code points, and on each round the first pair (in
// left-to-right first-occurrence order) whose concatenation is itself a
// vocabulary entry gets every one of its occurrences merged, until a single
// token remains or no mergeable pair is left. Final tokens map to ids,
// falling back to the unknown-char id when a token isn't in the vocabulary.
func (e *Encoder) encodeWord(word string) []int32 {
	if cached, ok := e.cache[word]; ok {
		return cached
	}

	tokens := decompose(word)
	for len(tokens) > 1 {
		left, right, ok := firstMergeablePair(tokens, e.vocab)
		if !ok {
			break
		}
		tokens = mergeAll(tokens, left, right)
	}

	ids := make([]int32, len(tokens))
	for i, t := range tokens {
		if id, ok := e.vocab[t]; ok {
			ids[i] = id
		} else {
			ids[i] = e.unknownID
		}
	}
	e.cache[word] = ids
	return ids
}

// decompose splits `word` into single-rune string tokens.
func decompose(word string) []string {
	runes := []rune(word)
	tokens := make([]string, len(runes))
	for i, r := range runes {
		tokens[i] = string(r)
	}
	return tokens
}

// firstMergeablePair scans `tokens` left to right and returns the first
// adjacent pair whose concatenation exists in `vocab`.
func firstMergeablePair(tokens []string, vocab map[string]int32) (left, right string, ok bool) {
	for i := 0; i < len(tokens)-1; i++ {
		if _, exists := vocab[tokens[i]+tokens[i+1]]; exists {
			return tokens[i], tokens[i+1], true
		}
	}
	return "", "", false
}

// mergeAll replaces every occurrence of the exact adjacent pair (left,
// right) in `tokens` with their concatenation, scanning left to right.
func mergeAll(tokens []string, left, right string) []string {
	merged := left + right
	out := make([]string, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		if i < len(tokens)-1 && tokens[i] == left && tokens[i+1] == right {
			out = append(out, merged)
			i += 2
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}
