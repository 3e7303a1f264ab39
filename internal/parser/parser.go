package parser

import (
	"errors"
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser turns Python source into a tree-sitter syntax tree. The caller owns
// the returned tree and must Close it.
type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{loader: loader}
}

// ParseSource parses raw source text. This is the path taken when content
// arrives as a stream instead of a named file.
func (p *Parser) ParseSource(content []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.loader.Python()); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}
	return tree, nil
}

// ParseFile reads and parses a file from disk, returning the tree together
// with the source bytes the checker needs for identifier text.
func (p *Parser) ParseFile(path string) (*sitter.Tree, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	tree, err := p.ParseSource(content)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, content, nil
}
