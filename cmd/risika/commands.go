package main

import (
	"context"

	cli "github.com/jawher/mow.cli"

	"thde.io/risika"
)

func registerCommands(app *cli.Cli, r *runner) {
	app.Command("basics", "Show the basic company information", companyCmd(r,
		func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
			return c.BasicCompanyInfo(ctx, l, id)
		}))
	app.Command("status", "Show the registration status", companyCmd(r,
		func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
			return c.CompanyStatus(ctx, l, id)
		}))
	app.Command("powers", "Show who can sign for the company", companyCmd(r,
		func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
			return c.CompanyPowerToBind(ctx, l, id)
		}))
	app.Command("relations", "List all relations of the company", companyCmd(r,
		func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
			return c.CompanyRelations(ctx, l, id)
		}))
	app.Command("highlights", "Show the company highlights", companyCmd(r,
		func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
			return c.CompanyHighlight(ctx, l, id)
		}))
	app.Command("directors", "List the active management and CEOs", companyCmd(r,
		func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
			return c.Directors(ctx, l, id)
		}))
	app.Command("founders", "List the founders", companyCmd(r,
		func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
			return c.Founders(ctx, l, id)
		}))
	app.Command("owners", "List the current owners", ownersCmd(r))
	app.Command("ceo", "Show the CEO", ceoCmd(r))
	app.Command("financial", "Show financial data", financialCmd(r))
	app.Command("search", "Search companies or persons", searchCmd(r))
}

type companyCall func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error)

// companyCmd builds a command taking a single company ID argument.
func companyCmd(r *runner, call companyCall) cli.CmdInitializer {
	return func(cmd *cli.Cmd) {
		cmd.Spec = "ID"
		id := cmd.StringArg("ID", "", "Company ID, e.g. a CVR number")

		cmd.Action = func() {
			r.run(func(ctx context.Context) (any, error) {
				return call(ctx, r.client, r.locale, *id)
			})
		}
	}
}

func ownersCmd(r *runner) cli.CmdInitializer {
	return func(cmd *cli.Cmd) {
		cmd.Spec = "[--real [--over25]] ID"
		beneficial := cmd.BoolOpt("real", false, "List beneficial owners instead of legal owners")
		over25 := cmd.BoolOpt("over25", false, "Only beneficial owners holding at least 25% of the shares")
		id := cmd.StringArg("ID", "", "Company ID")

		cmd.Action = func() {
			r.run(func(ctx context.Context) (any, error) {
				switch {
				case *beneficial && *over25:
					return r.client.CurrentRealOwnersOver25Shares(ctx, r.locale, *id)
				case *beneficial:
					return r.client.CurrentRealOwners(ctx, r.locale, *id)
				default:
					return r.client.CurrentLegalOwners(ctx, r.locale, *id)
				}
			})
		}
	}
}

func ceoCmd(r *runner) cli.CmdInitializer {
	return func(cmd *cli.Cmd) {
		cmd.Spec = "[--or-director | --ids] ID"
		orDirector := cmd.BoolOpt("or-director", false, "Fall back to the first director without a CEO")
		ids := cmd.BoolOpt("ids", false, "Print personal IDs of the CEOs, or of the first director")
		id := cmd.StringArg("ID", "", "Company ID")

		cmd.Action = func() {
			r.run(func(ctx context.Context) (any, error) {
				switch {
				case *ids:
					return r.client.CEOOrDirectorInfo(ctx, r.locale, *id)
				case *orDirector:
					return r.client.CEOOrDirector(ctx, r.locale, *id)
				default:
					return r.client.CEO(ctx, r.locale, *id)
				}
			})
		}
	}
}

func financialCmd(r *runner) cli.CmdInitializer {
	return func(cmd *cli.Cmd) {
		cmd.Command("ratios", "Show key ratios", companyCmd(r,
			func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
				return c.FinancialRatios(ctx, l, id)
			}))
		cmd.Command("stats", "Show filed figures", companyCmd(r,
			func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
				return c.FinancialStats(ctx, l, id)
			}))
		cmd.Command("performance", "Show performance against the industry", companyCmd(r,
			func(ctx context.Context, c *risika.Client, l risika.Locale, id string) (any, error) {
				return c.FinancialPerformance(ctx, l, id)
			}))
	}
}

func searchCmd(r *runner) cli.CmdInitializer {
	return func(cmd *cli.Cmd) {
		cmd.Spec = "[--person | --mode] QUERY"
		person := cmd.BoolOpt("person", false, "Search persons instead of companies")
		mode := cmd.StringOpt("mode", string(risika.SearchModeFull), "Company search mode")
		query := cmd.StringArg("QUERY", "", "Free text query")

		cmd.Action = func() {
			r.run(func(ctx context.Context) (any, error) {
				if *person {
					return r.client.SearchPerson(ctx, r.locale, *query)
				}
				return r.client.Search(ctx, r.locale, *query, risika.SearchMode(*mode))
			})
		}
	}
}
