package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ByLCY/dotqr/generator"
)

func generateCmd(configPath *string) *cobra.Command {
	var id, content, logo string

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate one code in every configured resolution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(cmd, *configPath)
			if err != nil {
				return err
			}
			defer s.close()

			if id == "" {
				id = uuid.NewString()
			}
			out, err := s.gen.Generate(cmd.Context(), generator.Request{
				QrID:     id,
				Content:  content,
				Style:    s.cfg.Style,
				LogoPath: logo,
			})
			if err != nil {
				s.log.Errorw("generation failed", "qrId", id, "error", err)
				return err
			}
			paths, err := s.gen.Save(out, s.out, s.cfg.Output.DumpLayout)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files written to %s\n", id, len(paths), s.out.Root)
			return nil
		},
	}

	c.Flags().StringVar(&id, "id", "", "code id used in file names (default a random UUID)")
	c.Flags().StringVarP(&content, "content", "c", "", "text or URL to encode (required)")
	c.Flags().StringVar(&logo, "logo", "", "logo file, or a file name under a Logos directory")

	_ = c.MarkFlagRequired("content")
	return c
}
