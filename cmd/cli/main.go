package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/marcelsud/approval-bridge/approval/signature"
	"github.com/marcelsud/approval-bridge/config"
	"github.com/marcelsud/approval-bridge/secrets"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "approval-cli",
		Short:         "Operator tools for the approval bridge",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSignCmd(), newSecretCmd())
	return cmd
}

func newSignCmd() *cobra.Command {
	var (
		secret    string
		timestamp int64
	)
	cmd := &cobra.Command{
		Use:   "sign [body]",
		Short: "Print the signature headers for a callback body",
		Long:  "Print the signature headers for a callback body read from the argument or stdin.\nThe signing secret comes from --secret or the configured secrets backend.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if secret == "" {
				secret, err = resolveSecret(cmd.Context(), approval.SecretSigningKey)
				if err != nil {
					return err
				}
			}
			ts := time.Now()
			if timestamp > 0 {
				ts = time.Unix(timestamp, 0)
			}
			return runSign(cmd.OutOrStdout(), body, secret, ts)
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret, defaults to the configured slack-signing-secret")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "unix timestamp to sign with, defaults to now")
	return cmd
}

func runSign(w io.Writer, body []byte, secret string, ts time.Time) error {
	header := signature.Timestamp(ts)
	fmt.Fprintf(w, "%s: %s\n", signature.TimestampHeader, header)
	fmt.Fprintf(w, "%s: %s\n", signature.SignatureHeader, signature.Sign(body, header, []byte(secret)))
	return nil
}

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Inspect secrets through the configured backend",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <name>",
		Short: "Resolve a secret and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := resolveSecret(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})
	return cmd
}

func resolveSecret(ctx context.Context, name string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return "", err
	}
	provider, closeProvider, err := secrets.Open(ctx, secrets.Options{
		Backend:   cfg.SecretsBackend,
		File:      cfg.SecretsFile,
		EnvPrefix: cfg.SecretsEnvPrefix,
	})
	if err != nil {
		return "", err
	}
	defer closeProvider()
	return secrets.NewCache(provider, cfg.GCPProject).Get(ctx, name)
}

func readBody(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 1 {
		return []byte(args[0]), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading body from stdin: %w", err)
	}
	return []byte(strings.TrimRight(string(data), "\n")), nil
}
