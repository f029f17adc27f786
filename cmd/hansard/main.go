package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolbeans/hansard/pkg/grammar"
	"github.com/coolbeans/hansard/pkg/overrides"
	"github.com/coolbeans/hansard/pkg/resolver"
	"github.com/coolbeans/hansard/pkg/roster"
	"github.com/coolbeans/hansard/pkg/types"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hansard",
		Short: "Speaker resolution for legislative records",
		Long: `Hansard resolves free-text speaker labels from legislative
transcripts ("The Lord Bishop of Southwark", "Mr Hay", "Mr John
Swinney (North Tayside) (SNP)") to canonical, date-scoped person
identifiers backed by a roster of members, memberships, and offices.`,
		Version: version,
	}

	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commonFlags are shared by resolve and search.
type commonFlags struct {
	rosterPath    string
	overridesPath string
	legislature   string
	date          string
}

func addCommonFlags(cmd *cobra.Command, flags *commonFlags) {
	cmd.Flags().StringVar(&flags.rosterPath, "roster", "members.json", "roster JSON document")
	cmd.Flags().StringVar(&flags.overridesPath, "overrides", "", "override dataset (YAML)")
	cmd.Flags().StringVar(&flags.legislature, "legislature", types.LegislatureCommons,
		"legislature grammar: commons, lords, scotland, ni, senedd")
	cmd.Flags().StringVar(&flags.date, "date", "", "as-of date (YYYY-MM-DD)")
}

func buildResolver(flags *commonFlags) (*resolver.Resolver, types.Date, error) {
	date, err := types.ParseDate(flags.date)
	if err != nil {
		return nil, "", err
	}
	store, err := roster.Load(flags.rosterPath)
	if err != nil {
		return nil, "", err
	}
	var ovr *overrides.Set
	if flags.overridesPath != "" {
		ovr, err = overrides.Load(flags.overridesPath)
		if err != nil {
			return nil, "", err
		}
	}
	r := resolver.New(store, resolver.Config{
		Legislature: flags.legislature,
		Overrides:   ovr,
	})
	return r, date, nil
}

func resolveCmd() *cobra.Command {
	flags := &commonFlags{}
	cmd := &cobra.Command{
		Use:   "resolve [label]",
		Short: "Resolve one speaker label to a person ID",
		Example: `  hansard resolve --roster members.json --legislature lords --date 2005-08-01 "The Lord Bishop of Southwell"
  hansard resolve --roster members.json --legislature ni --date 2015-01-12 "Mr Hay"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, date, err := buildResolver(flags)
			if err != nil {
				return err
			}
			id, err := engine.Resolve(args[0], date)
			if err != nil {
				var ambiguous *resolver.AmbiguousSpeakerError
				if errors.As(err, &ambiguous) {
					fmt.Fprintf(os.Stderr, "ambiguous: %s\n", ambiguous)
					for _, candidate := range ambiguous.Candidates {
						fmt.Fprintf(os.Stderr, "  - %s (%s %s)\n",
							candidate.PersonID, candidate.Constituency, candidate.Party)
					}
				}
				return err
			}
			if id == "" {
				fmt.Println("(no speaker: generic crowd phrase)")
				return nil
			}
			fmt.Println(id)
			return nil
		},
	}
	addCommonFlags(cmd, flags)
	return cmd
}

func searchCmd() *cobra.Command {
	flags := &commonFlags{}
	cmd := &cobra.Command{
		Use:   "search [label]",
		Short: "List every candidate person ID for a label",
		Long: `Search runs the same tiered matching as resolve but never fails:
it prints all candidates from the loosest productive tier as JSON, for
downstream tooling that disambiguates against its own context.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, date, err := buildResolver(flags)
			if err != nil {
				return err
			}
			ids := engine.Search(args[0], date)
			if ids == nil {
				ids = []types.PersonID{}
			}
			encoded, err := json.MarshalIndent(ids, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
	addCommonFlags(cmd, flags)
	return cmd
}

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect and validate the roster document",
	}
	cmd.AddCommand(rosterValidateCmd())
	cmd.AddCommand(rosterStatsCmd())
	return cmd
}

func rosterValidateCmd() *cobra.Command {
	var rosterPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the roster for integrity defects",
		Long: `Validate loads the roster and runs every integrity check: dangling
person/post/organization references, duplicate IDs, inverted tenure
dates, and concurrent seats. Any defect is fatal for resolution, so
the command exits non-zero on the first one found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := roster.Load(rosterPath); err != nil {
				return err
			}
			fmt.Println("roster OK")
			return nil
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "members.json", "roster JSON document")
	return cmd
}

func rosterStatsCmd() *cobra.Command {
	var rosterPath string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print roster record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := roster.Load(rosterPath)
			if err != nil {
				return err
			}
			stats := store.Stats()
			if asJSON {
				encoded, err := json.MarshalIndent(stats, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(encoded))
				return nil
			}
			fmt.Printf("Persons:        %d\n", stats.Persons)
			fmt.Printf("Memberships:    %d\n", stats.Memberships)
			fmt.Printf("Organizations:  %d\n", stats.Organizations)
			fmt.Printf("Posts:          %d\n", stats.Posts)
			fmt.Printf("Name entries:   %d\n", stats.NameEntries)
			return nil
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "members.json", "roster JSON document")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON")
	return cmd
}

func watchCmd() *cobra.Command {
	var rosterPath string
	var debounceMs int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the roster whenever it changes on disk",
		Long: `Watch keeps the roster loaded and reloads it when the backing file
changes, printing the outcome of every reload. Useful while curating
roster or override data against a live transcript run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := roster.Load(rosterPath)
			if err != nil {
				return err
			}
			watcher, err := roster.Watch(store, time.Duration(debounceMs)*time.Millisecond)
			if err != nil {
				return err
			}
			defer watcher.Close()
			watcher.OnReload = func(reloadErr error) {
				if reloadErr != nil {
					fmt.Fprintf(os.Stderr, "reload failed: %v\n", reloadErr)
					return
				}
				stats := store.Stats()
				fmt.Printf("reloaded: %d persons, %d memberships\n", stats.Persons, stats.Memberships)
			}

			fmt.Printf("watching %s (parsers: %v)\n", rosterPath, grammar.DefaultRegistry().List())
			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			<-interrupt
			return nil
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "members.json", "roster JSON document")
	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "reload debounce in milliseconds")
	return cmd
}
