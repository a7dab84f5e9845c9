package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polynorm"
	"github.com/njchilds90/polynorm/internal/cli/output"
	"github.com/njchilds90/polynorm/internal/document"
)

type normalizedJSON struct {
	Name       string                  `json:"name"`
	Expression string                  `json:"expression"`
	Polynomial polynorm.PolynomialJSON `json:"polynomial"`
}

func newNormalizeCommand() *cobra.Command {
	var latex bool

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Normalize every expression in a document",
		Long: `Normalize reads a YAML or JSON document and prints the canonical polynomial
of each expression, in document order. Expressions are normalized concurrently.`,
		Example: `  polynorm normalize exprs.yaml
  polynorm normalize exprs.yaml --latex
  polynorm normalize exprs.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			doc, err := document.Load(args[0], cc.cfg.Engine.MaxDepth)
			if err != nil {
				return err
			}

			start := time.Now()
			polys, err := polynorm.NormalizeAll(cmd.Context(), doc.Exprs())
			if err != nil {
				return err
			}
			cc.logger.Debug("normalized document",
				slog.String("file", args[0]),
				slog.Int("expressions", len(polys)),
				slog.Duration("elapsed", time.Since(start)))

			return renderNormalized(cc.renderer, doc, polys, latex)
		},
	}

	cmd.Flags().BoolVar(&latex, "latex", false, "Print polynomials as LaTeX")
	return cmd
}

func renderNormalized(r *output.Renderer, doc *document.Document, polys []*polynorm.Polynomial, latex bool) error {
	show := func(p *polynorm.Polynomial) string {
		if latex {
			return p.LaTeX()
		}
		return p.String()
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := make([]normalizedJSON, len(polys))
		for i, p := range polys {
			out[i] = normalizedJSON{
				Name:       doc.Entries[i].Name,
				Expression: polynorm.Render(doc.Entries[i].Expr),
				Polynomial: p.Wire(),
			}
		}
		return r.JSON(out)
	case output.ModeTable:
		rows := make([][]any, len(polys))
		for i, p := range polys {
			rows[i] = []any{doc.Entries[i].Name, polynorm.Render(doc.Entries[i].Expr), show(p), p.Len()}
		}
		r.Table([]string{"Name", "Expression", "Polynomial", "Terms"}, rows)
	default:
		for i, p := range polys {
			r.Printf("%s - %s -> %s\n", doc.Entries[i].Name, polynorm.Render(doc.Entries[i].Expr), show(p))
		}
	}
	return nil
}
