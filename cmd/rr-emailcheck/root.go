package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-email/internal/email/common/log"
	"github.com/haukened/rr-email/internal/email/common/utils"
	"github.com/haukened/rr-email/internal/email/domain"
	"github.com/haukened/rr-email/internal/email/services/syntax"
)

const (
	flagExplain   = "explain"
	flagLowercase = "lowercase"
)

const rootDesc = "Offline email address syntax validation"
const rootDescLong = rootDesc + `

Validates each address given as an argument, or one address per line from
standard input when no arguments are given. Prints "valid" or "invalid" per
address and exits with status 2 if any address was rejected.

Rules, logging and the top-level domain table are configured through EMAIL_*
environment variables, for example:
  EMAIL_DOMAIN_LOCALHOST=true rr-emailcheck admin@mailserver1
  EMAIL_TLD_SOURCE=none rr-emailcheck user@example.internal

To import the IANA list into the local TLD database:
  rr-emailcheck tld import tlds-alpha-by-domain.txt
`

var errInvalidAddresses = errors.New("invalid addresses")

var rootCmd = newRootCmd()

func init() {
	rootCmd.AddCommand(newTLDCmd())
}

func Execute() error {
	return rootCmd.Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     appName + " [address...]",
		Version: version,
		Short:   rootDesc,
		Long:    rootDescLong,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkAddresses(cmd, args)
		},
	}
	cmd.Flags().Bool(flagExplain, false, "print the reason an address was rejected")
	cmd.Flags().Bool(flagLowercase, false, "lowercase addresses before validation (overrides EMAIL_SANITIZE_LOWERCASE)")
	return cmd
}

func checkAddresses(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	logger := log.GetLogger()

	lowercase := cfg.Sanitize.Lowercase
	if cmd.Flags().Changed(flagLowercase) {
		lowercase, _ = cmd.Flags().GetBool(flagLowercase)
	}
	explain, _ := cmd.Flags().GetBool(flagExplain)

	tlds, closeTLDs, err := buildTLDs(cfg, logger)
	if err != nil {
		return err
	}
	defer closeTLDs()

	addresses := args
	if len(addresses) == 0 {
		if addresses, err = readLines(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read email addresses from stdin: %w", err)
		}
	}

	v := syntax.NewValidator(syntax.ValidatorOptions{
		Options: cfg.RuleOptions(),
		TLDs:    tlds,
		Logger:  logger,
	})

	out := cmd.OutOrStdout()
	checked, rejected := 0, 0
	for _, raw := range addresses {
		addr := utils.NormalizeAddress(raw, lowercase)
		if addr == "" {
			continue
		}
		checked++
		verdict := v.Check(addr)
		if !verdict.Valid {
			rejected++
		}
		fmt.Fprintln(out, formatVerdict(addr, verdict, explain))
	}

	logger.Info(map[string]any{"checked": checked, "rejected": rejected, "tld_source": cfg.TLD.Source}, "check_complete")
	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidAddresses, rejected, checked)
	}
	return nil
}

func formatVerdict(addr string, verdict domain.Verdict, explain bool) string {
	if verdict.Valid {
		return addr + "\tvalid"
	}
	if explain {
		return addr + "\tinvalid\t" + verdict.Reason.String()
	}
	return addr + "\tinvalid"
}

func readLines(r io.Reader) (lines []string, err error) {
	lines = make([]string, 0, 100)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	return
}
