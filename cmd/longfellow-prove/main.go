// Command longfellow-prove drives RunMdocProver/RunMdocVerifier from the
// command line: given a generated circuit, a mdoc CBOR blob, and a list of
// attribute policy assertions, it either produces a proof or checks one.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/longfellow-zk/longfellow"
	"github.com/longfellow-zk/longfellow/config"
	"github.com/longfellow-zk/longfellow/log"
	"github.com/longfellow-zk/longfellow/zkspec"
)

var (
	circuitPath string
	mdocPath    string
	pubXHex     string
	pubYHex     string
	attrFlags   []string
	nowFlag     string
	docType     string
	proofPath   string
)

func main() {
	root := &cobra.Command{
		Use:   "longfellow-prove",
		Short: "Prove or verify an mdoc policy against a longfellow circuit",
	}
	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&circuitPath, "circuit", "", "path to a generated circuit file")
	root.PersistentFlags().StringVar(&pubXHex, "pubx", "", "issuer public key X coordinate, hex")
	root.PersistentFlags().StringVar(&pubYHex, "puby", "", "issuer public key Y coordinate, hex")
	root.PersistentFlags().StringArrayVar(&attrFlags, "attr", nil, "namespace:elementIdentifier:hexCBORvalue[:notRevoked], repeatable")
	root.PersistentFlags().StringVar(&nowFlag, "now", "", "RFC3339 timestamp to check the credential's validity window against (default: current time)")
	root.PersistentFlags().StringVar(&docType, "doctype", "org.iso.18013.5.1.mDL", "expected mdoc docType")

	root.AddCommand(proveCmd())
	root.AddCommand(verifyCmd())

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

// parseAttrs parses namespace:elementIdentifier:hexValue[:notRevoked] flags.
// notRevoked defaults to false (fail closed) when omitted: the caller must
// have independently checked the credential's status list and say so
// explicitly, rather than the circuit treating an unchecked credential as
// live.
func parseAttrs() ([]longfellow.AttributeRequest, error) {
	out := make([]longfellow.AttributeRequest, 0, len(attrFlags))
	for _, raw := range attrFlags {
		parts := strings.SplitN(raw, ":", 4)
		if len(parts) < 3 {
			return nil, fmt.Errorf("longfellow-prove: --attr must be namespace:elementIdentifier:hexValue[:notRevoked], got %q", raw)
		}
		val, err := hex.DecodeString(parts[2])
		if err != nil {
			return nil, fmt.Errorf("longfellow-prove: --attr value is not valid hex: %w", err)
		}
		notRevoked := false
		if len(parts) == 4 {
			notRevoked, err = strconv.ParseBool(parts[3])
			if err != nil {
				return nil, fmt.Errorf("longfellow-prove: --attr notRevoked must be a bool, got %q", parts[3])
			}
		}
		out = append(out, longfellow.AttributeRequest{
			NameSpace:         parts[0],
			ElementIdentifier: parts[1],
			ExpectedValueCBOR: val,
			NotRevoked:        notRevoked,
		})
	}
	return out, nil
}

func parseNow() (time.Time, error) {
	if nowFlag == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, nowFlag)
}

func parsePubKey() (*big.Int, *big.Int, error) {
	xb, err := hex.DecodeString(pubXHex)
	if err != nil {
		return nil, nil, fmt.Errorf("longfellow-prove: --pubx is not valid hex: %w", err)
	}
	yb, err := hex.DecodeString(pubYHex)
	if err != nil {
		return nil, nil, fmt.Errorf("longfellow-prove: --puby is not valid hex: %w", err)
	}
	return new(big.Int).SetBytes(xb), new(big.Int).SetBytes(yb), nil
}

// transcriptHashOf derives a stable binder for the proving session from the
// circuit and docType, standing in for whatever session nonce a caller
// (e.g. an mdoc reader's engagement handshake) supplies in a real
// presentation flow.
func transcriptHashOf(circuitBytes []byte) [32]byte {
	h := sha256.New()
	h.Write(circuitBytes)
	h.Write([]byte(docType))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func proveCmd() *cobra.Command {
	var outPath string
	var numAttributes int
	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Produce a proof for a mdoc against the listed attribute assertions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfgAndInitLog(cmd)
			if err != nil {
				return err
			}
			spec, err := zkspec.Lookup(cfg.System, numAttributes)
			if err != nil {
				return err
			}
			circuitBytes, err := os.ReadFile(circuitPath)
			if err != nil {
				return fmt.Errorf("longfellow-prove: reading circuit: %w", err)
			}
			mdocCBOR, err := os.ReadFile(mdocPath)
			if err != nil {
				return fmt.Errorf("longfellow-prove: reading mdoc: %w", err)
			}
			attrs, err := parseAttrs()
			if err != nil {
				return err
			}
			pkX, pkY, err := parsePubKey()
			if err != nil {
				return err
			}
			now, err := parseNow()
			if err != nil {
				return err
			}

			proof, err := longfellow.RunMdocProver(circuitBytes, mdocCBOR, pkX, pkY,
				transcriptHashOf(circuitBytes), attrs, now, spec)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, proof, 0o644); err != nil {
				return fmt.Errorf("longfellow-prove: writing proof: %w", err)
			}
			log.Logger().Info().Str("path", outPath).Int("bytes", len(proof)).Msg("wrote proof")
			return nil
		},
	}
	cmd.Flags().StringVar(&mdocPath, "mdoc", "", "path to an IssuerSigned mdoc CBOR blob")
	cmd.Flags().StringVar(&outPath, "out", "proof.bin", "output path for the proof")
	cmd.Flags().IntVar(&numAttributes, "attrs", 1, "number of policy attributes the circuit checks")
	return cmd
}

func verifyCmd() *cobra.Command {
	var numAttributes int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a proof against the listed attribute assertions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfgAndInitLog(cmd)
			if err != nil {
				return err
			}
			spec, err := zkspec.Lookup(cfg.System, numAttributes)
			if err != nil {
				return err
			}
			circuitBytes, err := os.ReadFile(circuitPath)
			if err != nil {
				return fmt.Errorf("longfellow-prove: reading circuit: %w", err)
			}
			proof, err := os.ReadFile(proofPath)
			if err != nil {
				return fmt.Errorf("longfellow-prove: reading proof: %w", err)
			}
			attrs, err := parseAttrs()
			if err != nil {
				return err
			}
			pkX, pkY, err := parsePubKey()
			if err != nil {
				return err
			}
			now, err := parseNow()
			if err != nil {
				return err
			}

			if err := longfellow.RunMdocVerifier(circuitBytes, pkX, pkY,
				transcriptHashOf(circuitBytes), attrs, now, proof, docType, spec); err != nil {
				return err
			}
			log.Logger().Info().Msg("proof verified")
			return nil
		},
	}
	cmd.Flags().StringVar(&proofPath, "proof", "", "path to the proof to verify")
	cmd.Flags().IntVar(&numAttributes, "attrs", 1, "number of policy attributes the circuit checks")
	return cmd
}
