package pdfcatalog

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Option is a single lettered answer choice.
type Option struct {
	Letter  string
	Text    string
	Correct bool
}

// ParsedQuestion is one numbered question extracted from a catalog PDF.
type ParsedQuestion struct {
	Number  int
	Text    string
	Options []Option
}

// Parser extracts questions from a question-catalog PDF. The expected
// layout is numbered questions ("12. Which of these ...?") followed by
// lettered options ("a) ..."), with the correct option prefixed by "X".
type Parser struct {
	pdfPath string
}

// NewParser creates a parser for the given PDF file.
func NewParser(pdfPath string) *Parser {
	return &Parser{pdfPath: pdfPath}
}

// Parse extracts the text with pdftotext and parses it into questions.
func (p *Parser) Parse() ([]ParsedQuestion, error) {
	text, err := p.extractText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from PDF: %w", err)
	}

	questions := ParseText(text)
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found in %s", p.pdfPath)
	}
	return questions, nil
}

// extractText shells out to pdftotext, which must be on PATH.
func (p *Parser) extractText() (string, error) {
	cmd := exec.Command("pdftotext", p.pdfPath, "-")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(output), nil
}

var (
	questionPattern      = regexp.MustCompile(`^\s*(\d+)\.\s+(.+)$`)
	optionPattern        = regexp.MustCompile(`^\s*([a-f])\)\s*(.*)$`)
	correctOptionPattern = regexp.MustCompile(`^\s*X\s+([a-f])\)\s*(.*)$`)
)

// ParseText parses already-extracted text. Split out from Parse so the
// parsing rules are testable without a PDF or pdftotext installed.
func ParseText(text string) []ParsedQuestion {
	var questions []ParsedQuestion
	var current *ParsedQuestion

	flush := func() {
		if current != nil && len(current.Options) >= 2 {
			questions = append(questions, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Correct option first: the question pattern would not match it,
		// but the plain option pattern never has the X prefix.
		if m := correctOptionPattern.FindStringSubmatch(line); m != nil {
			if current != nil {
				current.Options = append(current.Options, Option{Letter: m[1], Text: m[2], Correct: true})
			}
			continue
		}

		if m := optionPattern.FindStringSubmatch(line); m != nil {
			if current != nil {
				current.Options = append(current.Options, Option{Letter: m[1], Text: m[2]})
			}
			continue
		}

		if m := questionPattern.FindStringSubmatch(line); m != nil {
			num, err := strconv.Atoi(m[1])
			if err != nil || num < 1 {
				continue
			}
			flush()
			current = &ParsedQuestion{Number: num, Text: strings.TrimSpace(m[2])}
			continue
		}

		// Continuation of a multi-line question text. Once options have
		// started, stray lines are footer noise and get dropped.
		if current != nil && len(current.Options) == 0 {
			current.Text += " " + line
		}
	}
	flush()

	return questions
}

// CorrectIndex returns the index of the first option marked correct,
// or -1 if the marker was missing in the source PDF.
func (q ParsedQuestion) CorrectIndex() int {
	for i, o := range q.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}
