package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-email/internal/email/common/log"
	"github.com/haukened/rr-email/internal/email/common/utils"
	"github.com/haukened/rr-email/internal/email/config"
)

const (
	flagFormat = "format"
	flagDB     = "db"
)

const tldImportDesc = `Imports a top-level domain list into the local TLD database

Accepts the IANA root zone list (tlds-alpha-by-domain.txt, --format iana) or
the Public Suffix List (public_suffix_list.dat, --format psl). The database
is replaced atomically; validators read it when EMAIL_TLD_SOURCE=file.
`

func newTLDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tld",
		Short: "Manage the local top-level domain database",
	}
	cmd.PersistentFlags().String(flagDB, "", "TLD database path (overrides EMAIL_TLD_DB)")
	cmd.AddCommand(newTLDImportCmd(), newTLDStatsCmd(), newTLDLookupCmd())
	return cmd
}

func newTLDImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a TLD list file",
		Long:  tldImportDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importTLDs(cmd, args[0])
		},
	}
	cmd.Flags().String(flagFormat, "", "list format: iana or psl (overrides EMAIL_TLD_FORMAT)")
	return cmd
}

func newTLDStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show TLD database metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showTLDStats(cmd)
		},
	}
}

func newTLDLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <label>...",
		Short: "Show whether labels are in the TLD database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return lookupTLDs(cmd, args)
		},
	}
}

// tldSetup loads configuration and applies the shared --db override.
func tldSetup(cmd *cobra.Command) (*config.AppConfig, *tldRepo, error) {
	cmd.SilenceUsage = true
	cfg, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}
	if db, _ := cmd.Flags().GetString(flagDB); db != "" {
		cfg.TLD.DB = db
	}
	if cmd.Flags().Lookup(flagFormat) != nil {
		if f, _ := cmd.Flags().GetString(flagFormat); f != "" {
			cfg.TLD.Format = f
		}
	}
	repo, err := openRepository(cfg, log.GetLogger())
	if err != nil {
		return nil, nil, err
	}
	return cfg, repo, nil
}

func importTLDs(cmd *cobra.Command, path string) error {
	cfg, repo, err := tldSetup(cmd)
	if err != nil {
		return err
	}
	defer repo.Close()

	list, err := importFile(repo, path, cfg.TLD.Format, log.GetLogger())
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), importSuccessMessage(len(list.Entries), list.Version))
	return nil
}

func importSuccessMessage(count int, version uint64) string {
	if count == 1 {
		return fmt.Sprintf("Imported one top-level domain (version %d).", version)
	}
	return fmt.Sprintf("Imported %d top-level domains (version %d).", count, version)
}

func showTLDStats(cmd *cobra.Command) error {
	_, repo, err := tldSetup(cmd)
	if err != nil {
		return err
	}
	defer repo.Close()

	st := repo.store.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "labels:\t%d\n", st.Labels)
	fmt.Fprintf(out, "version:\t%d\n", st.Version)
	if st.UpdatedUnix > 0 {
		fmt.Fprintf(out, "updated:\t%s\n", time.Unix(st.UpdatedUnix, 0).UTC().Format(time.RFC3339))
	} else {
		fmt.Fprintln(out, "updated:\tnever")
	}
	return nil
}

func lookupTLDs(cmd *cobra.Command, labels []string) error {
	_, repo, err := tldSetup(cmd)
	if err != nil {
		return err
	}
	defer repo.Close()

	out := cmd.OutOrStdout()
	for _, raw := range labels {
		label := utils.CanonicalTLD(raw)
		e, found, err := repo.store.Get(label)
		if err != nil {
			return fmt.Errorf("lookup %s: %w", label, err)
		}
		if !found {
			fmt.Fprintf(out, "%s\tunknown\n", label)
			continue
		}
		fmt.Fprintf(out, "%s\tknown\t%s\t%s\n", label, e.Source, e.AddedAt.UTC().Format(time.RFC3339))
	}
	return nil
}
