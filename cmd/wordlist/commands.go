package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/RubyShuey/Otter/assets"
	"github.com/RubyShuey/Otter/internal/app"
	"github.com/RubyShuey/Otter/internal/config"
	"github.com/RubyShuey/Otter/internal/words"
	"github.com/RubyShuey/Otter/internal/wordstore"
)

const defaultDB = "data/words.db"

// newRootCmd builds the wordlist command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wordlist",
		Short: "Manage the word lists of the Otter word ladder",
		Long: `wordlist imports word lists into the SQLite word store and reports
what the game would load from a list: word counts per length and the alphabet.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
	root.PersistentFlags().String("db", defaultDB, "path of the SQLite word store; WORDS_DB is used when unset")

	root.AddCommand(newImportCmd(), newStatsCmd(), newLangsCmd())
	return root
}

// loadConfig sets up logging and fills --db from WORDS_DB or the config file
// when the flag was not given.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Log.Format = "console"
	app.NewLogger(cfg.Log, cmd.ErrOrStderr())

	if !cmd.Flags().Changed("db") && cfg.Words.DB != "" {
		return cmd.Flags().Set("db", cfg.Words.DB)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace a language's word list in the word store with the words of file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	cmd.Flags().String("lang", "", "language code of the list (required)")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show word counts per length for a list file, an imported language or an embedded default",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	cmd.Flags().String("lang", "en", "language code")
	cmd.Flags().String("file", "", "word list file to inspect instead of the word store")
	return cmd
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List embedded and imported languages",
		Args:  cobra.NoArgs,
		RunE:  runLangs,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	dbPath, _ := cmd.Flags().GetString("db")

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := wordstore.Open(cmd.Context(), dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Import(cmd.Context(), lang, f)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s words into %s\n", n, lang, dbPath)
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	file, _ := cmd.Flags().GetString("file")
	dbPath, _ := cmd.Flags().GetString("db")

	src, closeFn, err := statsSource(cmd.Context(), lang, file, dbPath)
	if err != nil {
		return err
	}
	defer closeFn()

	b, err := words.LoadSource(cmd.Context(), src, lang)
	if err != nil {
		return fmt.Errorf("load %s: %w", src, err)
	}
	printStats(cmd.OutOrStdout(), src.String(), b)
	return nil
}

// statsSource picks the list stats reports on: the file when given, else the
// imported list, else the embedded default.
func statsSource(ctx context.Context, lang, file, dbPath string) (words.Source, func(), error) {
	nop := func() {}
	if file != "" {
		return words.FileSource(file), nop, nil
	}
	if _, err := os.Stat(dbPath); err == nil {
		st, err := wordstore.Open(ctx, dbPath)
		if err != nil {
			return nil, nop, err
		}
		langs, err := st.Languages(ctx)
		if err != nil {
			st.Close()
			return nil, nop, err
		}
		if slices.ContainsFunc(langs, func(l wordstore.LangStats) bool { return l.Lang == lang }) {
			return st.Source(lang), func() { st.Close() }, nil
		}
		st.Close()
	}
	if slices.Contains(assets.Languages(), lang) {
		return assets.Source(lang), nop, nil
	}
	return nil, nop, fmt.Errorf("%w: %q", words.ErrUnknownLanguage, lang)
}

func printStats(w io.Writer, name string, b *words.Bank) {
	fmt.Fprintf(w, "source:   %s\n", name)
	fmt.Fprintf(w, "language: %s\n", b.Language())
	fmt.Fprintf(w, "words:    %d\n", b.Count())
	fmt.Fprintf(w, "alphabet: %s\n", string(b.Alphabet()))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LENGTH\tWORDS")
	for _, n := range b.Lengths() {
		fmt.Fprintf(tw, "%d\t%d\n", n, len(b.WordsOf(n)))
	}
	tw.Flush()
}

func runLangs(cmd *cobra.Command, _ []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	out := cmd.OutOrStdout()

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LANG\tSOURCE\tWORDS\tIMPORTED")
	for _, lang := range assets.Languages() {
		b, err := words.LoadSource(cmd.Context(), assets.Source(lang), lang)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\tembedded\t%d\t-\n", lang, b.Count())
	}

	if _, err := os.Stat(dbPath); err == nil {
		st, err := wordstore.Open(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		langs, err := st.Languages(cmd.Context())
		if err != nil {
			return err
		}
		for _, l := range langs {
			fmt.Fprintf(tw, "%s\tsqlite\t%d\t%s\n", l.Lang, l.Words, l.ImportedAt.Format(time.DateTime))
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return tw.Flush()
}
