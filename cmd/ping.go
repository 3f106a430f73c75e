package cmd

import (
	"fmt"

	"github.com/mikaelmello/goicmp/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var pingCmd = &cobra.Command{
	Use:          "ping [flags] <host>",
	Short:        "Send ICMP echo requests to a host",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runPing,
}

func init() {
	defaults := core.DefaultSettings()

	f := pingCmd.Flags()
	f.String("config", "", "YAML settings file, overridden by flags")
	f.IntP("count", "c", defaults.Count, "stop after sending count echo requests, 0 pings until interrupted")
	f.DurationP("interval", "i", defaults.Interval, "time between the start of consecutive echo requests")
	f.DurationP("timeout", "W", defaults.Timeout, "time to wait for each reply")
	f.Duration("resolve-timeout", defaults.ResolveTimeout, "time to wait for the host to resolve")
	f.IntP("size", "s", defaults.PayloadSize, "number of data bytes sent after the echo header")
	f.Uint16("start-sequence", defaults.StartSequence, "sequence number of the first echo request")
	f.Uint16("id", defaults.Identifier, "echo identifier, replaced by the kernel on unprivileged sockets")
	f.Bool("privileged", defaults.IsPrivileged, "use raw sockets")
	f.Int("cache", defaults.CacheSize, "number of latest results shown by --dots")
	f.Uint32P("verbosity", "v", defaults.LoggingLevel, "logging level from 0 (panic) to 6 (trace)")
	f.String("metrics-addr", defaults.MetricsAddress, "serve prometheus metrics on this address")
	f.Bool("dots", false, "print the latest results as a line of ! and . instead of one line per reply")

	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	settings, err := settingsFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	var p printer = newStdPrinter(cmd.OutOrStdout())
	if dots, _ := cmd.Flags().GetBool("dots"); dots {
		p = newDotsPrinter(cmd.OutOrStdout())
	}

	r, err := newRunner(args[0], settings, core.NewNetPort(settings.IsPrivileged), p)
	if err != nil {
		return err
	}

	r.Start()
	return r.Wait()
}

// settingsFromFlags loads the settings file, if any, and applies the flags set on the
// command line over it.
func settingsFromFlags(f *pflag.FlagSet) (*core.Settings, error) {
	settings := core.DefaultSettings()
	if path, _ := f.GetString("config"); path != "" {
		loaded, err := core.LoadSettings(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}
	set("count", func() (e error) { settings.Count, e = f.GetInt("count"); return })
	set("interval", func() (e error) { settings.Interval, e = f.GetDuration("interval"); return })
	set("timeout", func() (e error) { settings.Timeout, e = f.GetDuration("timeout"); return })
	set("resolve-timeout", func() (e error) { settings.ResolveTimeout, e = f.GetDuration("resolve-timeout"); return })
	set("size", func() (e error) { settings.PayloadSize, e = f.GetInt("size"); return })
	set("start-sequence", func() (e error) { settings.StartSequence, e = f.GetUint16("start-sequence"); return })
	set("id", func() (e error) { settings.Identifier, e = f.GetUint16("id"); return })
	set("privileged", func() (e error) { settings.IsPrivileged, e = f.GetBool("privileged"); return })
	set("cache", func() (e error) { settings.CacheSize, e = f.GetInt("cache"); return })
	set("verbosity", func() (e error) { settings.LoggingLevel, e = f.GetUint32("verbosity"); return })
	set("metrics-addr", func() (e error) { settings.MetricsAddress, e = f.GetString("metrics-addr"); return })
	if err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
