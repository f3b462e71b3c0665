// Copyright (c) 2025 campus-tui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for campus-tui.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdHistory
	CmdReset
	CmdID
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	JSON    bool   // Output in JSON format
	APIBase string // Override the assistant service URL

	// Command-specific
	Query string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `campus-tui - assistant campus en ligne de commande

campus-tui parle au service d'assistant du campus (scolarité, emplois du
temps, certificats, ENT) depuis le terminal, avec la même conversation
et le même identifiant que le widget web.

Usage :
  campus-tui                     Lance l'interface TUI (défaut)
  campus-tui ask "question"      Pose une seule question
  campus-tui chat                Chat interactif dans le terminal
  campus-tui history             Affiche la conversation enregistrée
  campus-tui reset --confirm     Efface la conversation
  campus-tui id [valeur]         Affiche ou remplace l'identifiant
  campus-tui version             Affiche la version
  campus-tui help                Affiche cette aide

Drapeaux globaux :
  --api URL       URL du service (défaut : config, puis http://127.0.0.1:8000)
  --json          Sortie JSON (ask, history, id)
  -q, --quiet     Sortie minimale

Dans le chat interactif :
  /rate <1-5> [commentaire]   Évalue la dernière réponse
  /reset                      Efface la conversation
  /id [valeur]                Identifiant utilisateur
  /help                       Aide, /quit pour sortir

Exemples :
  campus-tui ask "Comment récupérer mon certificat de scolarité ?"
  campus-tui ask "Horaires de la BU ?" --json
  campus-tui chat --api http://assistant.campus.example:8000

Version : %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("campus-tui version %s\n", Version)
	fmt.Printf("  Commit : %s\n", GitCommit)
	fmt.Printf("  Build  : %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(args []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(args)

	// No command defaults to the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask", "a":
		// Everything that is not a flag is the question
		parser := NewArgParser(remaining)
		parsed.Query = strings.Join(parser.PositionalFrom(0), " ")
		return CmdAsk, parsed

	case "chat", "c":
		return CmdChat, parsed

	case "history", "log":
		return CmdHistory, parsed

	case "reset", "clear":
		return CmdReset, parsed

	case "id", "identity":
		parser := NewArgParser(remaining)
		parsed.Query = parser.Positional(0)
		return CmdID, parsed

	case "version", "-v", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "commande inconnue : %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags extracts global flags, returning the remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	i := 0
	for i < len(args) {
		switch arg := args[i]; arg {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "--json":
			parsed.JSON = true
		case "--api":
			if i+1 < len(args) {
				parsed.APIBase = args[i+1]
				i++
			}
		default:
			if strings.HasPrefix(arg, "--api=") {
				parsed.APIBase = strings.TrimPrefix(arg, "--api=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsed
}
