package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Sampling SamplingConfig `mapstructure:"sampling"`
	Training TrainingConfig `mapstructure:"training"`
	Eval     EvalConfig     `mapstructure:"eval"`
	LogLevel string         `mapstructure:"log_level"`
}

type PathsConfig struct {
	// WikiDir and WebDir hold one plain-text file per language
	// (<lang>.txt), one document per line, UTF-8.
	WikiDir     string `mapstructure:"wiki_dir"`
	WebDir      string `mapstructure:"web_dir"`
	DatasetDir  string `mapstructure:"dataset_dir"`
	ArtifactDir string `mapstructure:"artifact_dir"`
	ReportDir   string `mapstructure:"report_dir"`
	EvalDir     string `mapstructure:"eval_dir"`
}

type SamplingConfig struct {
	Languages []string `mapstructure:"languages"`
	// InterleaveChars is the chunk size used when mixing the wiki and web
	// streams of one language.
	InterleaveChars int   `mapstructure:"interleave_chars"`
	ShuffleSeed     int64 `mapstructure:"shuffle_seed"`
}

type TrainingConfig struct {
	Algorithms  []string `mapstructure:"algorithms"`
	VocabSizes  []int    `mapstructure:"vocab_sizes"`
	Scales      []string `mapstructure:"scales"`
	Seed        int64    `mapstructure:"seed"`
	Concurrency int      `mapstructure:"concurrency"`
}

type EvalConfig struct {
	// Reference selects the baseline segmentation NSL is computed against:
	// "whitespace", "chars", or "tiktoken" (cl100k_base).
	Reference string `mapstructure:"reference"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// Languages studied, in the order the original corpora were collected.
func DefaultLanguages() []string {
	return []string{"yo", "ar", "zh", "ru", "hi", "ja", "sw", "bn", "tr"}
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			WikiDir:     "corpora/wiki",
			WebDir:      "corpora/web",
			DatasetDir:  "datasets",
			ArtifactDir: "artifacts",
			ReportDir:   "reports",
			EvalDir:     "corpora/eval",
		},
		Sampling: SamplingConfig{
			Languages:       DefaultLanguages(),
			InterleaveChars: 1000,
			ShuffleSeed:     42,
		},
		Training: TrainingConfig{
			Algorithms:  []string{AlgorithmBPE, AlgorithmWordPiece, AlgorithmUnigram},
			VocabSizes:  []int{15000, 30000, 50000},
			Scales:      []string{"100M", "200M", "400M"},
			Seed:        42,
			Concurrency: 3,
		},
		Eval: EvalConfig{
			Reference: ReferenceWhitespace,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-wiki-dir", defaults.Paths.WikiDir, "Directory with per-language wiki corpus files")
	fs.String("paths-web-dir", defaults.Paths.WebDir, "Directory with per-language web corpus files")
	fs.String("paths-dataset-dir", defaults.Paths.DatasetDir, "Directory for assembled balanced datasets")
	fs.String("paths-artifact-dir", defaults.Paths.ArtifactDir, "Directory for trained tokenizer artifacts")
	fs.String("paths-report-dir", defaults.Paths.ReportDir, "Directory for metric reports")
	fs.String("paths-eval-dir", defaults.Paths.EvalDir, "Directory with held-out per-language evaluation texts")
	fs.StringSlice("sampling-languages", defaults.Sampling.Languages, "Language codes to sample")
	fs.Int("sampling-interleave-chars", defaults.Sampling.InterleaveChars, "Chunk size for interleaving wiki and web text")
	fs.Int64("sampling-shuffle-seed", defaults.Sampling.ShuffleSeed, "Seed for shuffling language sections during assembly")
	fs.StringSlice("training-algorithms", defaults.Training.Algorithms, "Tokenizer algorithms to train (bpe|wordpiece|unigram)")
	fs.IntSlice("training-vocab-sizes", defaults.Training.VocabSizes, "Vocabulary sizes to train")
	fs.StringSlice("training-scales", defaults.Training.Scales, "Dataset scales in total characters (e.g. 100M)")
	fs.Int64("training-seed", defaults.Training.Seed, "Seed for Unigram EM initialization")
	fs.Int("training-concurrency", defaults.Training.Concurrency, "Max concurrent tokenizer training runs")
	fs.String("eval-reference", defaults.Eval.Reference, "NSL reference segmentation (whitespace|chars|tiktoken)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("TOKEVAL")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tokeval")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.wiki_dir", c.Paths.WikiDir)
	v.SetDefault("paths.web_dir", c.Paths.WebDir)
	v.SetDefault("paths.dataset_dir", c.Paths.DatasetDir)
	v.SetDefault("paths.artifact_dir", c.Paths.ArtifactDir)
	v.SetDefault("paths.report_dir", c.Paths.ReportDir)
	v.SetDefault("paths.eval_dir", c.Paths.EvalDir)
	v.SetDefault("sampling.languages", c.Sampling.Languages)
	v.SetDefault("sampling.interleave_chars", c.Sampling.InterleaveChars)
	v.SetDefault("sampling.shuffle_seed", c.Sampling.ShuffleSeed)
	v.SetDefault("training.algorithms", c.Training.Algorithms)
	v.SetDefault("training.vocab_sizes", c.Training.VocabSizes)
	v.SetDefault("training.scales", c.Training.Scales)
	v.SetDefault("training.seed", c.Training.Seed)
	v.SetDefault("training.concurrency", c.Training.Concurrency)
	v.SetDefault("eval.reference", c.Eval.Reference)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.wiki_dir", "paths-wiki-dir")
	v.RegisterAlias("paths.web_dir", "paths-web-dir")
	v.RegisterAlias("paths.dataset_dir", "paths-dataset-dir")
	v.RegisterAlias("paths.artifact_dir", "paths-artifact-dir")
	v.RegisterAlias("paths.report_dir", "paths-report-dir")
	v.RegisterAlias("paths.eval_dir", "paths-eval-dir")
	v.RegisterAlias("sampling.languages", "sampling-languages")
	v.RegisterAlias("sampling.interleave_chars", "sampling-interleave-chars")
	v.RegisterAlias("sampling.shuffle_seed", "sampling-shuffle-seed")
	v.RegisterAlias("training.algorithms", "training-algorithms")
	v.RegisterAlias("training.vocab_sizes", "training-vocab-sizes")
	v.RegisterAlias("training.scales", "training-scales")
	v.RegisterAlias("training.seed", "training-seed")
	v.RegisterAlias("training.concurrency", "training-concurrency")
	v.RegisterAlias("eval.reference", "eval-reference")
	v.RegisterAlias("log_level", "log-level")
}
