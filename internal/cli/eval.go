package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polynorm"
	"github.com/njchilds90/polynorm/internal/cli/output"
	"github.com/njchilds90/polynorm/internal/document"
)

type evalResult struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Direct     string `json:"direct,omitempty"`
	Polynomial string `json:"polynomial,omitempty"`
	Match      bool   `json:"match"`
	Error      string `json:"error,omitempty"`
}

func newEvalCommand() *cobra.Command {
	var set map[string]string

	cmd := &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate expressions directly and through their polynomials",
		Long: `Eval evaluates every expression in a document twice: once on the tree and
once on its normalized polynomial. Both values must agree. Bindings come from
the document's env section; --set overrides them.`,
		Example: `  polynorm eval exprs.yaml
  polynorm eval exprs.yaml --set x=2 --set y=1/3`,
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
			env, err := mergeEnv(doc.Env, set)
			if err != nil {
				return err
			}
			cc.logger.Debug("evaluating document",
				slog.String("file", args[0]),
				slog.Any("bound", sortedNames(env)))

			results := make([]evalResult, len(doc.Entries))
			failed := 0
			for i, entry := range doc.Entries {
				results[i] = evaluateEntry(entry, env)
				if !results[i].Match {
					failed++
					cc.logger.Warn("evaluation failed",
						slog.String("name", entry.Name),
						slog.String("error", results[i].Error))
				}
			}

			if err := renderEval(cc.renderer, results); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions did not evaluate consistently", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&set, "set", nil, "Bind a variable, e.g. --set x=2")
	return cmd
}

func mergeEnv(base polynorm.Env, set map[string]string) (polynorm.Env, error) {
	env := make(polynorm.Env, len(base)+len(set))
	for k, v := range base {
		env[k] = v
	}
	for k, v := range set {
		n, err := polynorm.ParseNum(v)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", k, err)
		}
		env[k] = n
	}
	return env, nil
}

func evaluateEntry(entry document.Entry, env polynorm.Env) evalResult {
	res := evalResult{Name: entry.Name, Expression: polynorm.Render(entry.Expr)}

	direct, err := polynorm.Evaluate(entry.Expr, env)
	if err != nil {
		res.Error = describeEvalError(err)
		return res
	}
	viaPoly, err := polynorm.Normalize(entry.Expr).Evaluate(env)
	if err != nil {
		res.Error = describeEvalError(err)
		return res
	}

	res.Direct, res.Polynomial = direct.String(), viaPoly.String()
	res.Match = polynorm.NumsEqual(direct, viaPoly)
	if !res.Match {
		res.Error = "values differ"
	}
	return res
}

func describeEvalError(err error) string {
	var ub *polynorm.UnboundVariableError
	if errors.As(err, &ub) {
		return "unbound variable " + ub.Name
	}
	return err.Error()
}

func renderEval(r *output.Renderer, results []evalResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(results)
	case output.ModeTable:
		rows := make([][]any, len(results))
		for i, res := range results {
			status := r.Styles().Success.Render("ok")
			if !res.Match {
				status = r.Styles().Error.Render(res.Error)
			}
			rows[i] = []any{res.Name, res.Expression, res.Direct, res.Polynomial, status}
		}
		r.Table([]string{"Name", "Expression", "Direct", "Polynomial", "Status"}, rows)
	default:
		for _, res := range results {
			if res.Match {
				r.Printf("%s = %s\n", res.Name, res.Direct)
			} else {
				r.Printf("%s: %s\n", res.Name, res.Error)
			}
		}
	}
	return nil
}

// sortedNames returns env's variable names in order.
func sortedNames(env polynorm.Env) []string {
	names := make([]string, 0, len(env))
	for k := range env {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
