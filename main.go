package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version string = "dev"

var cfgFile string

// settings is the resolved configuration for one run:
// defaults < config file < ASCIIX_* env < flags.
type settings struct {
	Overwrite     bool
	Gitignore     bool
	Tokens        bool
	Tokenizer     string
	Model         string
	TokenizerFile string
	Tree          bool
	Quiet         bool
	Report        string
	Clipboard     bool
	Interactive   bool
	Verbose       int
	LogFile       string
}

var rootCmd = &cobra.Command{
	Use:   "asciix [SOURCE] [OUTPUT]",
	Short: "asciix extracts printable ASCII text from every file in a folder tree.",
	Long: `asciix scans SOURCE and all of its subfolders, keeps only printable ASCII
text from each file, and writes it to a mirrored folder tree under OUTPUT.
Each output file keeps its original name with .txt appended
(report.pdf -> report.pdf.txt). Source files are never modified.

SOURCE may also be a Git URL, which is cloned to a temporary folder first.
OUTPUT defaults to a sibling folder named <SOURCE>_ascii.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadSettings()
		SetupLogger(s.Verbose, s.LogFile)
		return run(s, args, cmd.OutOrStdout())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/asciix/config.toml)")

	flags := rootCmd.Flags()
	flags.Bool("overwrite", false, "Overwrite existing output files instead of skipping them")
	flags.Bool("gitignore", false, "Skip files matched by SOURCE/.gitignore")
	flags.Bool("tokens", false, "Count tokens of the extracted text")
	flags.String("tokenizer", "tiktoken", "Tokenizer backend for --tokens: tiktoken or huggingface")
	flags.String("model", "", "Model name for token counting (default gpt-4o, or gpt2 for huggingface)")
	flags.String("tokenizer-file", "", "Local tokenizer.json for the huggingface backend")
	flags.Bool("tree", false, "Print a tree of the produced output files")
	flags.BoolP("quiet", "q", false, "Do not print per-file progress")
	flags.String("report", "", "Write a YAML report of every file to this path")
	flags.BoolP("clipboard", "c", false, "Copy the final summary to the clipboard")
	flags.BoolP("interactive", "I", false, "Pick the source folder with an interactive finder")
	flags.CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	flags.String("log-file", "", "Also append logs to this file")

	for _, name := range []string{"overwrite", "gitignore", "tokens", "tokenizer", "model", "tree", "quiet", "report", "clipboard", "interactive", "verbose"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
	viper.BindPFlag("log_file", flags.Lookup("log-file")) // Use snake_case for viper key
	viper.BindPFlag("tokenizer_file", flags.Lookup("tokenizer-file"))

	viper.SetDefault("overwrite", false)
	viper.SetDefault("gitignore", false)
	viper.SetDefault("tokens", false)
	viper.SetDefault("tokenizer", "tiktoken")
	viper.SetDefault("tree", false)
	viper.SetDefault("quiet", false)
	viper.SetDefault("clipboard", false)
	viper.SetDefault("verbose", 0)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "asciix"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("ASCIIX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match ASCIIX_*

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

func loadSettings() settings {
	return settings{
		Overwrite:     viper.GetBool("overwrite"),
		Gitignore:     viper.GetBool("gitignore"),
		Tokens:        viper.GetBool("tokens"),
		Tokenizer:     viper.GetString("tokenizer"),
		Model:         viper.GetString("model"),
		TokenizerFile: viper.GetString("tokenizer_file"),
		Tree:          viper.GetBool("tree"),
		Quiet:         viper.GetBool("quiet"),
		Report:        viper.GetString("report"),
		Clipboard:     viper.GetBool("clipboard"),
		Interactive:   viper.GetBool("interactive"),
		Verbose:       viper.GetInt("verbose"),
		LogFile:       viper.GetString("log_file"),
	}
}

// run resolves the source and output folders, processes the tree and prints
// the summary to out.
func run(s settings, args []string, out io.Writer) error {
	logger := GetLogger("cli")

	var source string
	switch {
	case s.Interactive:
		picked, err := runInteractiveFinder(".", "Source folder")
		if err != nil {
			return fmt.Errorf("interactive mode error: %w", err)
		}
		if picked == "" {
			fmt.Fprintln(out, "No source folder selected.")
			return nil
		}
		source = picked
	case len(args) > 0:
		source = args[0]
	default:
		return errors.New("a source folder is required (pass SOURCE or use --interactive)")
	}

	var output string
	if len(args) > 1 {
		output = args[1]
	}

	sourceName := source
	if isGitURL(source) {
		fmt.Fprintf(out, "Cloning Git repository '%s'...\n", source)
		tempDir, err := cloneGitRepo(source, out)
		if err != nil {
			return err
		}
		defer func() {
			logger.Debug().Str("path", tempDir).Msg("Cleaning up temporary directory")
			_ = os.RemoveAll(tempDir)
		}()
		if output == "" {
			output = repoName(source) + "_ascii"
		}
		source = tempDir
	}
	if output == "" {
		output = defaultOutputDir(source)
	}

	policy := Policy{SkipExisting: !s.Overwrite}
	printer := newProgressPrinter(out)
	opts := []Option{WithProgress(printer.Print)}
	if s.Quiet {
		opts[0] = WithProgress(printer.Record)
	}

	if s.Gitignore {
		matcher, err := loadIgnore(source)
		if err != nil {
			logger.Warn().Err(err).Msg("Proceeding without .gitignore filtering")
		} else if matcher != nil {
			opts = append(opts, WithIgnore(matcher))
		}
	}

	if s.Tokens {
		tk, err := loadTokenizer(s.Tokenizer, s.Model, s.TokenizerFile)
		if err != nil {
			logger.Warn().Err(err).Msg("Token counting disabled")
		} else {
			opts = append(opts, WithTokenizer(tk))
		}
	}

	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "PROCESSING FILES")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "Source: %s\n", sourceName)
	fmt.Fprintf(out, "Output: %s\n", output)
	if policy.SkipExisting {
		fmt.Fprintln(out, "Skip existing: Yes")
	} else {
		fmt.Fprintln(out, "Skip existing: No (overwrite)")
	}
	fmt.Fprintln(out, strings.Repeat("-", 60))

	counters, err := Process(source, output, policy, opts...)
	if err != nil {
		return err
	}

	summary := formatSummary(counters, output)
	fmt.Fprintln(out)
	fmt.Fprint(out, summary)

	if s.Tree {
		fmt.Fprintln(out)
		fmt.Fprint(out, printTree(buildTree(printer.results, filepath.Base(output))))
	}

	if s.Report != "" {
		report := newReport(sourceName, output, policy, counters, printer.results)
		if err := writeReport(s.Report, report); err != nil {
			logger.Error().Err(err).Msg("Failed to write report")
		} else {
			fmt.Fprintf(out, "Report saved to %s\n", s.Report)
		}
	}

	if s.Clipboard {
		if err := clipboard.WriteAll(summary); err != nil {
			logger.Warn().Err(err).Msg("Error writing to clipboard")
		} else {
			fmt.Fprintln(out, "Summary copied to clipboard.")
		}
	}
	return nil
}

// defaultOutputDir returns the sibling folder <source>_ascii.
func defaultOutputDir(source string) string {
	clean := filepath.Clean(source)
	if abs, err := filepath.Abs(clean); err == nil {
		clean = abs
	}
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+"_ascii")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
