package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jukanntenn/crashfeishu/internal/config"
)

var flagInitForce bool

var cmdInit = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "crashfeishu.toml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteTemplate(path, flagInitForce); err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	cmdInit.Flags().BoolVarP(&flagInitForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(cmdInit)
}
