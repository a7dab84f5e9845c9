package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polynorm"
	"github.com/njchilds90/polynorm/internal/cli/output"
	"github.com/njchilds90/polynorm/internal/document"
)

func newTermsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "terms <file> <name>",
		Short: "List the monomials of one normalized expression",
		Long: `Terms normalizes a single expression and lists its monomials in insertion
order, including zero-coefficient terms left behind by cancellation.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			doc, err := document.Load(args[0], cc.cfg.Engine.MaxDepth)
			if err != nil {
				return err
			}
			e, err := doc.Lookup(args[1])
			if err != nil {
				return err
			}
			return renderTerms(cc.renderer, args[1], polynorm.Normalize(e))
		},
	}
}

func renderTerms(r *output.Renderer, name string, p *polynorm.Polynomial) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(p.Wire())
	case output.ModeTable:
		rows := make([][]any, 0, p.Len())
		for _, m := range p.Terms() {
			pp := m.PowerProduct()
			rows = append(rows, []any{m.Coefficient().String(), formatPowerProduct(pp), pp.Degree()})
		}
		r.Header(fmt.Sprintf("%s: %s", name, p))
		r.Table([]string{"Coefficient", "Power product", "Degree"}, rows)
	default:
		for _, m := range p.Terms() {
			r.Printf("%s\t%s\n", m.Coefficient(), formatPowerProduct(m.PowerProduct()))
		}
	}
	return nil
}

// formatPowerProduct renders "x^2y^1", or "1" for the empty product.
func formatPowerProduct(pp polynorm.PowerProduct) string {
	if pp.Len() == 0 {
		return "1"
	}
	var sb strings.Builder
	for _, v := range pp.Vars() {
		fmt.Fprintf(&sb, "%s^%d", v, pp.Exponent(v))
	}
	return sb.String()
}
