// Package parser reads flashcards written in markdown files.
//
// A card starts with a line beginning "Q:" and its answer with a line
// beginning "A:". Either side may continue over several lines. A line of
// "---" or the next "Q:" ends the card.
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/flashdeck/internal/domain"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	separator   = "---"
)

type state int

const (
	seeking state = iota
	readingFront
	readingBack
)

// ParseFile reads a file from the given path and extracts all cards.
func ParseFile(path string) ([]domain.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all cards. Cards without a front
// or without a back are skipped.
func Parse(r io.Reader) ([]domain.Card, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.Card
	var current domain.Card
	var block []string
	currentState := seeking

	flushBlock := func() {
		content := strings.TrimSpace(strings.Join(block, "\n"))
		switch currentState {
		case readingFront:
			current.Front = content
		case readingBack:
			current.Back = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Front != "" && current.Back != "" {
			cards = append(cards, current)
		}
		current = domain.Card{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == separator:
			finishCard()
		case strings.HasPrefix(line, frontPrefix):
			if currentState != seeking { // A new question always starts a new card
				finishCard()
			}
			currentState = readingFront
			block = append(block, trimPrefix(line, frontPrefix))
		case strings.HasPrefix(line, backPrefix) && currentState == readingFront:
			flushBlock()
			currentState = readingBack
			block = append(block, trimPrefix(line, backPrefix))
		case currentState != seeking:
			block = append(block, line)
		}
	}

	finishCard() // Finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

func trimPrefix(line, prefix string) string {
	content := line[len(prefix):]
	return strings.TrimPrefix(content, " ")
}
