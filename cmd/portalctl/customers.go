package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jhoicas/customer-portal/internal/application/customer"
	"github.com/jhoicas/customer-portal/internal/application/dto"
	"github.com/jhoicas/customer-portal/internal/domain/entity"
	infrapdf "github.com/jhoicas/customer-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/customer-portal/internal/infrastructure/restapi"
	pkgjwt "github.com/jhoicas/customer-portal/pkg/jwt"
)

func cmdCustomers(verbose bool, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: portalctl customers <list|create|export> [flags]")
		os.Exit(1)
	}
	switch args[0] {
	case "list":
		cmdCustomersList(verbose)
	case "create":
		cmdCustomersCreate(verbose, args[1:])
	case "export":
		cmdCustomersExport(verbose, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown customers command: %s\n", args[0])
		os.Exit(1)
	}
}

func (a *cliApp) listController() *customer.ListController {
	return customer.NewListController(restapi.NewCustomerRepository(a.api), a.guard, a.log)
}

func cmdCustomersList(verbose bool) {
	a := newCLIApp(verbose)
	list := a.listController()
	err := list.Load(context.Background())
	a.exit(err)
	printCustomers(list.Snapshot().Records)
}

func cmdCustomersCreate(verbose bool, args []string) {
	fs := flag.NewFlagSet("customers create", flag.ExitOnError)
	var in dto.CustomerForm
	fs.StringVar(&in.Name, "name", "", "Customer name")
	fs.StringVar(&in.Branch, "branch", "", "Branch")
	fs.StringVar(&in.Period, "period", "", "Period")
	fs.StringVar(&in.ClientName, "client", "", "Client name")
	fs.StringVar(&in.Status, "status", string(entity.StatusPending), "Status: Pending, Active or Inactive")
	fs.Parse(args)

	in.Normalize()
	if err := dto.Validate(in); err != nil {
		fmt.Fprintln(os.Stderr, "Usage: portalctl customers create -name N -branch B -period P -client C [-status S]")
		fail(err)
	}

	a := newCLIApp(verbose)
	repo := restapi.NewCustomerRepository(a.api)
	list := customer.NewListController(repo, a.guard, a.log)
	create := customer.NewCreateController(repo, a.store, a.guard, list.NotifyChildSaved, a.log)

	create.Open()
	create.SetDraft(in.ToDraft())
	if err := create.Submit(context.Background()); err != nil {
		if a.nav.toLogin {
			os.Exit(exitAuth)
		}
		fail(fmt.Errorf("%s", create.Snapshot().Error))
	}
	fmt.Println("Customer created")
	st := list.Snapshot()
	if st.Error != "" {
		fmt.Fprintf(os.Stderr, "Warning: could not reload customers: %s\n", st.Error)
		return
	}
	printCustomers(st.Records)
}

func cmdCustomersExport(verbose bool, args []string) {
	fs := flag.NewFlagSet("customers export", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default: customers_<date>.pdf)")
	fs.Parse(args)

	a := newCLIApp(verbose)
	username := ""
	if tok, ok := a.store.Get(); ok {
		if info, err := pkgjwt.Inspect(tok); err == nil {
			username = info.Username
		}
	}
	uc := customer.NewExportUseCase(a.listController(), infrapdf.NewMarotoPDFGenerator(a.cfg.App.Name))
	b, filename, err := uc.Download(context.Background(), username)
	a.exit(err)

	if *out != "" {
		filename = *out
	}
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		fail(err)
	}
	fmt.Printf("Exported to %s\n", filename)
}

func printCustomers(list []entity.Customer) {
	if len(list) == 0 {
		fmt.Println("No customers yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBRANCH\tPERIOD\tCLIENT\tSTATUS\tCREATED")
	for _, c := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", c.Name, c.Branch, c.Period, c.ClientName, c.Status, c.CreatedAt)
	}
	w.Flush()
}
