package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"mime-registry/internal/loader"
	"mime-registry/internal/logging"
	"mime-registry/internal/registry"
	"mime-registry/internal/startup"
)

// Viper keys shared by every command.
const (
	keyMap        = "map"
	keyStrict     = "strict"
	keyNoFallback = "no-fallback"
	keyLogLevel   = "log-level"
)

const rootCmdLong = `Inspect and convert mime map files.

The mime map is read from --map, the MIME_MAP_XML environment variable, or
MimeMap.xml next to the executable, in that order.

Examples:
  # Look up an extension
  mimectl lookup jpg

  # Check a mime map for malformed entries
  mimectl validate --map ./configs/MimeMap.xml

  # Export the registry, including built-in types, as YAML
  mimectl export --format yaml --output types.yaml`

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MIMECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keyMap, loader.EnvMapPath)

	cmd := &cobra.Command{
		Use:          "mimectl",
		Short:        "Inspect and convert mime map files",
		Long:         rootCmdLong,
		Version:      startup.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.SetOutput(cmd.ErrOrStderr())
			return logging.Setup(logging.Config{Level: v.GetString(keyLogLevel)})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(keyMap, "", "path to the mime map XML file")
	flags.Bool(keyStrict, false, "fail when the mime map cannot be read")
	flags.Bool(keyNoFallback, false, "do not add the built-in web types")
	flags.String(keyLogLevel, "warn", "log level (debug, info, warn, error)")

	for _, key := range []string{keyMap, keyStrict, keyNoFallback, keyLogLevel} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	cmd.AddCommand(
		newLookupCmd(v),
		newTypeCmd(v),
		newCategoryCmd(v),
		newListCmd(v),
		newExtensionsCmd(v),
		newValidateCmd(v),
		newExportCmd(v),
	)

	return cmd
}

// loadConfig builds the registry load configuration from flags and
// environment.
func loadConfig(v *viper.Viper) registry.LoadConfig {
	policy := registry.PolicyLenient
	if v.GetBool(keyStrict) {
		policy = registry.PolicyStrict
	}
	return registry.LoadConfig{
		Path:    loader.ResolvePath(v.GetString(keyMap)),
		Policy:  policy,
		Options: registry.Options{DisableFallback: v.GetBool(keyNoFallback)},
	}
}

func loadRegistry(v *viper.Viper) (*registry.Registry, error) {
	return registry.Load(loadConfig(v))
}

// terminalWidth returns the width of out when it is a terminal, or 0.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
