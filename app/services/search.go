package services

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"pressroom/app/models"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// SearchResult is a post matched by a search query together with its rank.
type SearchResult struct {
	Post *models.Post `json:"post"`
	Rank float64      `json:"rank"`
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "i": true, "if": true, "in": true, "into": true, "is": true,
	"it": true, "its": true, "not": true, "of": true, "on": true, "or": true,
	"so": true, "that": true, "the": true, "their": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "will": true, "with": true,
	"you": true, "your": true,
}

// Tokenize splits text into case-folded word tokens, dropping stop words.
func Tokenize(text string) []string {
	// A Caser is stateful, so each call gets its own.
	folded := cases.Fold().String(norm.NFKC.String(text))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if !stopWords[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Stems reduces the tokens of text to their English stems, so "Running tips"
// and "run tip" produce the same terms.
func Stems(text string) []string {
	tokens := Tokenize(text)
	for i, tok := range tokens {
		tokens[i] = english.Stem(tok, false)
	}
	return tokens
}

// queryTerms returns the distinct stemmed terms of a query in first-seen order.
func queryTerms(query string) []string {
	seen := map[string]bool{}
	var terms []string
	for _, tok := range Stems(query) {
		if !seen[tok] {
			seen[tok] = true
			terms = append(terms, tok)
		}
	}
	return terms
}

// rankPost scores post against terms over its combined title and body. A post
// matches only when every term occurs; the score is the summed term
// frequency damped by the log of the document length.
func rankPost(post *models.Post, terms []string) (float64, bool) {
	tokens := Stems(post.Title + " " + post.Body)
	if len(tokens) == 0 {
		return 0, false
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	var total int
	for _, term := range terms {
		n := freq[term]
		if n == 0 {
			return 0, false
		}
		total += n
	}
	return float64(total) / (1 + math.Log(float64(len(tokens)))), true
}

// rankPosts returns the posts matching every term, best first. Equal ranks
// are ordered by publish date, newest first.
func rankPosts(posts []*models.Post, terms []string) []SearchResult {
	results := make([]SearchResult, 0)
	if len(terms) == 0 {
		return results
	}
	for _, post := range posts {
		if rank, ok := rankPost(post, terms); ok {
			results = append(results, SearchResult{Post: post, Rank: rank})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Rank != results[j].Rank {
			return results[i].Rank > results[j].Rank
		}
		return newerFirst(results[i].Post, results[j].Post)
	})
	return results
}
