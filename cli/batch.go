package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/dotqr/dsl"
	"github.com/ByLCY/dotqr/generator"
)

func batchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Generate every code listed in a batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, *configPath)
			if err != nil {
				return err
			}
			defer s.close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			b, err := dsl.Parse(args[0], f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			reqs, err := generator.BatchRequests(b, s.cfg.Style)
			if err != nil {
				return err
			}
			s.log.Infow("batch loaded", "batch", b.Name, "codes", len(reqs))

			outs, genErr := s.gen.GenerateBatch(cmd.Context(), reqs)
			written := 0
			for _, out := range outs {
				paths, err := s.gen.Save(out, s.out, s.cfg.Output.DumpLayout)
				if err != nil {
					return err
				}
				written += len(paths)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d codes, %d files written to %s\n",
				b.Name, len(outs), len(reqs), written, s.out.Root)
			if genErr != nil {
				s.log.Errorw("batch stopped", "batch", b.Name, "error", genErr)
			}
			return genErr
		},
	}
}
