// Command longfellow-circuitgen generates and identifies the composed
// mdoc policy circuit for a given zkspec entry, writing the serialized
// circuit bytes to the configured datadir.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/longfellow-zk/longfellow"
	"github.com/longfellow-zk/longfellow/config"
	"github.com/longfellow-zk/longfellow/log"
	"github.com/longfellow-zk/longfellow/zkspec"
)

var numAttributes int

func main() {
	root := &cobra.Command{
		Use:   "longfellow-circuitgen",
		Short: "Generate and identify longfellow mdoc policy circuits",
	}
	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().IntVar(&numAttributes, "attrs", 1, "number of policy attributes the circuit checks")

	root.AddCommand(generateCmd())
	root.AddCommand(idCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCfgAndInitLog(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), "LONGFELLOW")
	if err != nil {
		return nil, err
	}
	log.Init(cfg.Log.Level, cfg.Log.Output, nil)
	return cfg, nil
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a circuit and write it to datadir/<system>-<n>.circuit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfgAndInitLog(cmd)
			if err != nil {
				return err
			}

			spec, err := zkspec.Lookup(cfg.System, numAttributes)
			if err != nil {
				return err
			}

			circuitBytes, err := longfellow.GenerateCircuit(spec)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.Datadir, 0o755); err != nil {
				return fmt.Errorf("longfellow-circuitgen: creating datadir: %w", err)
			}
			outPath := filepath.Join(cfg.Datadir, fmt.Sprintf("%s-%d.circuit", cfg.System, numAttributes))
			if err := os.WriteFile(outPath, circuitBytes, 0o644); err != nil {
				return fmt.Errorf("longfellow-circuitgen: writing circuit: %w", err)
			}

			id, err := longfellow.CircuitID(circuitBytes, spec)
			if err != nil {
				return err
			}
			log.Logger().Info().Str("path", outPath).Str("circuit_id", hex.EncodeToString(id[:])).Msg("generated circuit")
			return nil
		},
	}
}

func idCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Print a generated circuit file's canonical ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfgAndInitLog(cmd)
			if err != nil {
				return err
			}
			spec, err := zkspec.Lookup(cfg.System, numAttributes)
			if err != nil {
				return err
			}
			circuitBytes, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("longfellow-circuitgen: reading circuit: %w", err)
			}
			id, err := longfellow.CircuitID(circuitBytes, spec)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(id[:]))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "circuit", "", "path to a generated circuit file")
	return cmd
}
