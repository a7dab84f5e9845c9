package cli

import (
	"github.com/spf13/cobra"

	"github.com/njchilds90/polynorm"
	"github.com/njchilds90/polynorm/internal/cli/output"
	"github.com/njchilds90/polynorm/internal/document"
)

type equalJSON struct {
	Left      string                  `json:"left"`
	Right     string                  `json:"right"`
	Algebraic bool                    `json:"algebraic"`
	Equal     bool                    `json:"equal"`
	LeftPoly  polynorm.PolynomialJSON `json:"left_polynomial"`
	RightPoly polynorm.PolynomialJSON `json:"right_polynomial"`
}

func newEqualCommand() *cobra.Command {
	var algebraic bool

	cmd := &cobra.Command{
		Use:   "equal <file> <a> <b>",
		Short: "Compare two expressions by their normalized polynomials",
		Long: `Equal normalizes two named expressions and compares their term sets.
Zero-coefficient terms count, so x and x+0 differ. --algebraic ignores them.`,
		Example: `  polynorm equal exprs.yaml e5 e6
  polynorm equal exprs.yaml lhs rhs --algebraic`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			doc, err := document.Load(args[0], cc.cfg.Engine.MaxDepth)
			if err != nil {
				return err
			}
			a, err := doc.Lookup(args[1])
			if err != nil {
				return err
			}
			b, err := doc.Lookup(args[2])
			if err != nil {
				return err
			}

			pa, pb := polynorm.Normalize(a), polynorm.Normalize(b)
			eq := polynorm.PolynomialsEqual(pa, pb)
			if algebraic {
				eq = polynorm.PolynomialsEquivalent(pa, pb)
			}

			r := cc.renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(equalJSON{
					Left: args[1], Right: args[2],
					Algebraic: algebraic, Equal: eq,
					LeftPoly: pa.Wire(), RightPoly: pb.Wire(),
				})
			}

			verdict := r.Styles().Success.Render("equal")
			if !eq {
				verdict = r.Styles().Error.Render("not equal")
			}
			r.Printf("%s: %s\n", args[1], pa)
			r.Printf("%s: %s\n", args[2], pb)
			r.Printf("%s and %s are %s\n", args[1], args[2], verdict)
			return nil
		},
	}

	cmd.Flags().BoolVar(&algebraic, "algebraic", false, "Ignore zero-coefficient terms")
	return cmd
}
