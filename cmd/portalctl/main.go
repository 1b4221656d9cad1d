package main

import (
	"fmt"
	"os"
)

func main() {
	args := os.Args[1:]
	verbose := false
	if len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		verbose = true
		args = args[1:]
	}
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "login":
		cmdLogin(verbose, args[1:])
	case "logout":
		cmdLogout(verbose)
	case "status":
		cmdStatus(verbose)
	case "customers":
		cmdCustomers(verbose, args[1:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: portalctl [-v] <command> [flags]

Commands:
  login -u USER [-p PASS]      Sign in and store the session token
  logout                       Remove the stored session
  status                       Show the stored session
  customers list               List customers
  customers create -name N -branch B -period P -client C [-status S]
                               Create a customer (status defaults to Pending)
  customers export -o FILE     Export the customer list as PDF

Configuration comes from the environment (API_HOST, API_PORT, SESSION_FILE, ...).`)
}
