package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/logdecode/internal/logger"
)

var (
	cfgFile   string
	configErr error
)

// rootCmd decodes one controller log per invocation.
var rootCmd = &cobra.Command{
	Use:   "logdecode -f <LOGFILE> -p <PROJECT>",
	Short: "Decode irrigation controller logs into readable text",
	Long: `logdecode turns the coded log lines written by an irrigation controller
into readable records, using the label tables of the given project.
Records are appended to <name>_TXT.<ext> in the current directory.

Examples:
  logdecode -f /mnt/sd/LOG.TXT -p AutoWater
  logdecode -f device.log -p AutoWater --follow --resume`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return usageError{fmt.Sprintf("unexpected arguments: %s", strings.Join(args, " "))}
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDecode,
}

// usageError marks a malformed invocation. Execute prints the usage text for it.
type usageError struct {
	reason string
}

func (e usageError) Error() string { return e.reason }

// Execute runs the root command and exits with its status.
func Execute() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command with args and returns the exit status:
// 0 on success, 2 after printing usage for a malformed invocation, 1 otherwise.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stdout, "Bad run: %s.\n", ue.reason)
		_ = rootCmd.Usage()
		return 2
	}
	fmt.Fprintln(stderr, "logdecode:", err)
	return 1
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.logdecode.yaml)")

	flags := rootCmd.Flags()
	flags.StringP("file", "f", "", "controller log file to decode")
	flags.StringP("project", "p", "", "project whose label tables apply (e.g. AutoWater)")
	flags.String("tokenizer", "compat", "field splitting: compat (controller-exact) or fields (split on whitespace)")
	flags.Bool("follow", false, "keep decoding lines appended to the log until interrupted")
	flags.Bool("resume", false, "continue from the position saved by the previous run")
	flags.String("state", ".logdecode-state.json", "checkpoint file used by --resume")
	flags.String("log-level", logger.WarnLevel, "diagnostic log level: debug, info, warn, error")
	flags.BoolP("quiet", "q", false, "do not print the run summary")

	for _, name := range []string{"file", "project", "tokenizer", "follow", "resume", "state", "log-level", "quiet"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".logdecode")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOGDECODE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = errors.Wrap(err, "load config")
		}
	}
}
