package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	rootCmd := &cobra.Command{
		Use:   "corridorsim",
		Short: "Arterial corridor traffic simulation engine",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(variantsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [variant]",
		Short: "Run a single simulation for a catalog variant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			variant := "DEFAULT"
			if len(args) > 0 {
				variant = args[0]
			}
			return runRun(variant, opts)
		},
	}
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "RNG seed for the run")
	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "override run duration in seconds")
	cmd.Flags().Float64Var(&opts.greenDuration, "green-duration", 0, "green duration in seconds; derives an optimal cycle")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "scenario YAML file with run parameters")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "export CSV tables into this directory")
	return cmd
}

func compareCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every catalog variant with shared parameters and compare",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCompare(opts)
		},
	}
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "RNG seed shared by all variant runs")
	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "override run duration in seconds")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "scenario YAML file with run parameters")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "export CSV tables for each variant into this directory")
	return cmd
}

func variantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the infrastructure variant catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runVariants()
		},
	}
}

func serveCmd() *cobra.Command {
	opts := &runOptions{}
	var port int
	var variant string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run one simulation and serve the results as JSON",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(variant, opts, port)
		},
	}
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "RNG seed for the run")
	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "override run duration in seconds")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "scenario YAML file with run parameters")
	cmd.Flags().StringVar(&variant, "variant", "DEFAULT", "catalog variant to simulate")
	cmd.Flags().IntVar(&port, "port", 8090, "HTTP port")
	return cmd
}
