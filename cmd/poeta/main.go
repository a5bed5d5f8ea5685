// Poeta inflects words with declarative, per-language suffix rules.
//
// Usage:
//
//	# inflect a word
//	poeta inflect noun noga --tags A case=2 number=pl
//
//	# list every form a word gets
//	poeta paradigm adjective nowy --tags a
//
//	# join a preposition and its object
//	poeta join w wtorek
//
//	# validate a lexicon against the rules
//	poeta check --rules pl.aff --lexicon pl.dic
//
//	# list the loaded rules
//	poeta rules --part N
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
