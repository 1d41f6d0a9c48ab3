/*
Command semtrex is a small REPL/one-shot driver for the semtrex matcher:
chzyer/readline for the line editor, pterm for colored output and
pterm.DefaultTree to render matched capture trees. The core packages are a
pure library; this command is tooling around them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/synaptree/semtrex/matcher"
	"github.com/synaptree/semtrex/nfa"
	"github.com/synaptree/semtrex/pattern"
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// session holds the REPL's mutable state: a shared registry, the currently
// loaded target tree, and a reusable NFA builder.
type session struct {
	reg  *symbol.Registry
	tree *tree.Node
	b    *nfa.Builder
}

func newSession() *session {
	reg := symbol.NewRegistry()
	reg.RegisterBuiltins()
	tree.SetLabeler(func(id symbol.Id) (string, bool) { return reg.LabelOf(id) })
	return &session{reg: reg, b: nfa.NewBuilder()}
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	patternFlag := flag.String("pattern", "", "semtrex pattern to match, one-shot mode")
	treeFlag := flag.String("tree", "", "target tree literal, one-shot mode")
	flag.Parse()
	level := tracing.TraceLevelFromString(*tlevel)
	for _, key := range []string{
		"semtrex.symbol", "semtrex.tree", "semtrex.pattern", "semtrex.nfa", "semtrex.matcher",
	} {
		tracing.Select(key).SetTraceLevel(level)
	}

	s := newSession()

	if *patternFlag != "" || *treeFlag != "" {
		if *patternFlag == "" || *treeFlag == "" {
			pterm.Error.Println("-pattern and -tree must be given together")
			os.Exit(2)
		}
		if err := s.loadTree(*treeFlag); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		if err := s.runMatch(*patternFlag); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		return
	}

	pterm.Info.Println("semtrex REPL. Commands: def LABEL | tree LITERAL | match PATTERN | quit")
	repl, err := readline.New("semtrex> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	for {
		line, err := repl.Readline()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := s.dispatch(line); quit {
			break
		}
	}
	fmt.Println("bye")
}

// dispatch runs one REPL command line. It returns true when the user asked
// to quit.
func (s *session) dispatch(line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "quit", "exit":
		return true
	case "def":
		s.reg.DefineSymbol(0, symbol.NullStructure, rest)
		pterm.Info.Printf("defined %s\n", rest)
	case "tree":
		if err := s.loadTree(rest); err != nil {
			pterm.Error.Println(err.Error())
			break
		}
		pterm.Info.Println(tree.NewPrinter(s.reg).Print(s.tree))
	case "match":
		if err := s.runMatch(rest); err != nil {
			pterm.Error.Println(err.Error())
		}
	default:
		pterm.Error.Printf("unknown command %q\n", cmd)
	}
	return false
}

func (s *session) loadTree(literal string) error {
	n, err := tree.ParseText(s.reg, literal)
	if err != nil {
		return fmt.Errorf("tree: %w", err)
	}
	s.tree = n
	return nil
}

func (s *session) runMatch(src string) error {
	if s.tree == nil {
		return fmt.Errorf("no tree loaded; use 'tree LITERAL' first")
	}
	p := pattern.NewParser(s.reg)
	pat, err := p.Parse(src)
	if err != nil {
		return fmt.Errorf("pattern: %w", err)
	}
	a, err := s.b.Build(pat)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	ok, captures := matcher.Match(a, s.tree)
	if !ok {
		pterm.Info.Println("no match")
		return nil
	}
	pterm.Info.Println("match")
	root := pterm.TreeNode{Text: "captures"}
	for _, c := range captures {
		root.Children = append(root.Children, captureNode(s.reg, c))
	}
	return pterm.DefaultTree.WithRoot(root).Render()
}

func captureNode(reg *symbol.Registry, c matcher.Capture) pterm.TreeNode {
	label, ok := reg.LabelOf(c.Symbol)
	if !ok {
		label = c.Symbol.String()
	}
	node := pterm.TreeNode{
		Text: fmt.Sprintf("%s @%s (siblings=%d)", label, c.Path, c.SiblingsCount),
	}
	for _, nested := range c.Children {
		node.Children = append(node.Children, captureNode(reg, nested))
	}
	return node
}
