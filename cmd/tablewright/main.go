/*
Tablewright builds (or loads from cache) the LR(0) action table for one of
this module's demo grammars, prints a build summary, and optionally drops
into an interactive shell for feeding it input.

Usage:

	tablewright [flags]

The flags are:

	-c, --config FILE
		TOML configuration file naming the grammar to build, the table
		cache database, and other settings. Defaults to
		"tablewright.toml"; a missing file is not an error, since every
		field has a built-in default.

	-r, --repl
		After building, read lines from stdin (via a readline-style line
		editor) and parse each against the built table, printing the
		accepted value or the parse error.

	-f, --force-rebuild
		Ignore any cached table for this grammar and rebuild from
		scratch, refreshing the cache entry.

Once in the REPL, type a line of input for the configured grammar (e.g.
"1+2*3" for arithmetic-precedence, or a single-line JSON document for
json) and press enter to parse it. Exit with Ctrl+D.
*/
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/internal/artifact"
	"github.com/tablewright/tablewright/internal/demogrammar"
	"github.com/tablewright/tablewright/internal/tablecfg"
	"github.com/tablewright/tablewright/internal/tablestore"
	"github.com/tablewright/tablewright/lrtable"
	"github.com/tablewright/tablewright/parse"
	"github.com/tablewright/tablewright/scanner"
)

const (
	exitSuccess = iota
	exitConfigError
	exitBuildError
	exitREPLError
)

var (
	returnCode  = exitSuccess
	flagConfig  = pflag.StringP("config", "c", "tablewright.toml", "TOML file describing the grammar to build and where to cache it")
	flagREPL    = pflag.BoolP("repl", "r", false, "drop into an interactive shell after building")
	flagRebuild = pflag.BoolP("force-rebuild", "f", false, "ignore the cache and rebuild the table")
)

func main() {
	pflag.Parse()
	defer func() { os.Exit(returnCode) }()

	cfg, err := tablecfg.Load(*flagConfig)
	if err != nil {
		// a missing config file is not fatal; every field has a default.
		if errors.Is(err, os.ErrNotExist) {
			cfg = tablecfg.Config{}.FillDefaults()
		} else {
			pterm.Error.Println("load config: " + err.Error())
			returnCode = exitConfigError
			return
		}
	}

	fx, err := demogrammar.FixtureByName(cfg.GrammarFile)
	if err != nil {
		pterm.Error.Println(err.Error())
		returnCode = exitConfigError
		return
	}

	g, err := fx.Build()
	if err != nil {
		pterm.Error.Println("build grammar: " + err.Error())
		returnCode = exitBuildError
		return
	}

	table, _, fromCache, err := buildOrLoadTable(cfg, fx.Name, g)
	if err != nil {
		pterm.Error.Println("build table: " + err.Error())
		returnCode = exitBuildError
		return
	}

	printSummary(cfg.GrammarFile, table, fromCache)

	key := artifact.DefaultSigningKey
	if cfg.SigningKeyFile != "" {
		fileKey, err := os.ReadFile(cfg.SigningKeyFile)
		if err != nil {
			pterm.Error.Println("read signing key: " + err.Error())
			returnCode = exitBuildError
			return
		}
		key = fileKey
	}
	hash := artifact.HashGrammarSource([]byte(fx.Name))
	token, err := artifact.Sign(key, hash, table, time.Now())
	if err != nil {
		pterm.Error.Println("sign artifact: " + err.Error())
		returnCode = exitBuildError
		return
	}
	pterm.Info.Println("build artifact: " + token)

	if *flagREPL {
		if err := runREPL(fx, g, table); err != nil {
			pterm.Error.Println(err.Error())
			returnCode = exitREPLError
			return
		}
	}
}

// buildOrLoadTable consults the configured cache before falling back to a
// fresh build, so a repeat run against an unchanged grammar skips the
// canonical-collection sweep entirely.
func buildOrLoadTable(cfg tablecfg.Config, name string, g *grammar.Grammar) (*lrtable.Table, *automaton.Automaton, bool, error) {
	hash := artifact.HashGrammarSource([]byte(name))

	store, err := tablestore.Open(cfg.CacheDBPath)
	if err != nil {
		return nil, nil, false, err
	}
	defer store.Close()

	if !*flagRebuild {
		if table, aut, ok, err := store.Get(hash, g); err != nil {
			return nil, nil, false, err
		} else if ok {
			return table, aut, true, nil
		}
	}

	aut, err := automaton.Build(g)
	if err != nil {
		return nil, nil, false, err
	}
	table, err := lrtable.Build(aut, g)
	if err != nil {
		return nil, nil, false, err
	}
	if err := store.Put(hash, time.Now().Unix(), table, aut); err != nil {
		return nil, nil, false, err
	}
	return table, aut, false, nil
}

func printSummary(name string, table *lrtable.Table, fromCache bool) {
	p := message.NewPrinter(language.English)

	source := "built fresh"
	if fromCache {
		source = "loaded from cache"
	}
	pterm.DefaultSection.Println("tablewright: " + name)
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"grammar", "states", "source"},
		{name, p.Sprintf("%d", table.NumStates()), source},
	}).Render()
}

// runREPL reads lines from stdin and parses each against table/g, printing
// the accepted value or the parse error. Every session gets a trace id so
// concurrent terminals (or repeated invocations) are distinguishable in
// the trace output.
func runREPL(fx demogrammar.Fixture, g *grammar.Grammar, table *lrtable.Table) error {
	sessionID := uuid.New().String()[:8]

	rl, err := readline.New(fmt.Sprintf("%s(%s)> ", fx.Name, sessionID))
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()

	matchers, err := fx.Matchers()
	if err != nil {
		return fmt.Errorf("build matchers: %w", err)
	}

	pterm.Info.Printfln("session %s: type input for %q, Ctrl+D to quit", sessionID, fx.Name)

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil // io.EOF or interrupt: clean exit
		}
		if line == "" {
			continue
		}

		driver := parse.New(table, g)
		driver.RegisterTraceListener(func(step string) {
			pterm.Debug.Printfln("[%s] %s", sessionID, step)
		})
		s := scanner.New(driver, fx.End, fx.MakeLexeme, matchers...)

		val, err := s.Run(demogrammar.StripInputWhitespace([]byte(line)))
		if err != nil {
			pterm.Error.Printfln("[%s] %s", sessionID, err.Error())
			continue
		}
		pterm.Success.Printfln("[%s] %v", sessionID, val.Data)
	}
}
