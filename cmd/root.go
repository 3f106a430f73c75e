package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goicmp",
	Short: "goicmp speaks ICMP in Go",
	Long:  "goicmp is an ICMPv4/ICMPv6 toolkit with a Go implementation of the ping utility",
}

func Execute() error {
	return rootCmd.Execute()
}
