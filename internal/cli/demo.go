package cli

import (
	"github.com/spf13/cobra"

	"github.com/njchilds90/polynorm"
	"github.com/njchilds90/polynorm/internal/cli/output"
	"github.com/njchilds90/polynorm/internal/demo"
)

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Normalize and compare the built-in reference expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			return renderDemo(cc.renderer, demo.Samples())
		},
	}
}

func renderDemo(r *output.Renderer, samples []demo.Sample) error {
	comparisons := demo.Compare(samples)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		type sampleJSON struct {
			Name       string `json:"name"`
			Expression string `json:"expression"`
			Polynomial string `json:"polynomial"`
		}
		out := struct {
			Samples     []sampleJSON      `json:"samples"`
			Comparisons []demo.Comparison `json:"comparisons"`
		}{Comparisons: comparisons}
		for _, s := range samples {
			out.Samples = append(out.Samples, sampleJSON{s.Name, polynorm.Render(s.Expr), polynorm.Normalize(s.Expr).String()})
		}
		return r.JSON(out)
	case output.ModeTable:
		rows := make([][]any, len(samples))
		for i, s := range samples {
			rows[i] = []any{s.Name, polynorm.Render(s.Expr), polynorm.Normalize(s.Expr).String()}
		}
		r.Header("Reference expressions")
		r.Table([]string{"Name", "Expression", "Polynomial"}, rows)
	default:
		for _, s := range samples {
			r.Printf("%s - %s -> %s\n", s.Name, polynorm.Render(s.Expr), polynorm.Normalize(s.Expr))
		}
	}

	if r.EffectiveMode() != output.ModeJSON {
		r.Println()
		for _, c := range comparisons {
			r.Printf("%s == %s: %t\n", c.Left, c.Right, c.Equal)
		}
	}
	return nil
}
