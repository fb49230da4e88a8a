// Command whoisparse interprets a saved WHOIS response without network
// access and prints the structured result as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/KincaidYang/whoisparser/server_lists"
	"github.com/KincaidYang/whoisparser/utils"
	"github.com/KincaidYang/whoisparser/whois_tools"
	"github.com/jessevdk/go-flags"
)

// Options are the command line options of whoisparse.
type Options struct {
	InputFile string   `short:"i" long:"input-file" description:"File holding the raw WHOIS response, - for stdin" default:"-"`
	Domain    string   `short:"d" long:"domain" description:"Domain the response belongs to"`
	Servers   []string `short:"s" long:"server" description:"WHOIS server template, {{domain}} is substituted (repeatable)"`
	Clean     bool     `long:"clean" description:"Print only the cleaned response text"`
	Verdict   bool     `long:"verdict" description:"Print only the registration verdict"`
}

func run(opts Options, stdin io.Reader, stdout io.Writer) error {
	var input io.Reader = stdin
	if opts.InputFile != "" && opts.InputFile != "-" {
		f, err := os.Open(opts.InputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	raw, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	domain := opts.Domain
	servers := opts.Servers
	if domain != "" {
		normalized, tld, err := utils.NormalizeDomain(domain)
		if err != nil {
			return fmt.Errorf("%q: %w", domain, err)
		}
		domain = normalized
		if len(servers) == 0 {
			servers, _ = server_lists.ServersFor(tld)
		}
	}

	result := whois_tools.NewWhoIsResult(string(raw), whois_tools.MatchPatterns(string(raw)), domain, servers)
	switch {
	case opts.Clean:
		_, err = fmt.Fprintln(stdout, result.CleanData())
	case opts.Verdict:
		_, err = fmt.Fprintln(stdout, result.Verdict())
	default:
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(result)
	}
	return err
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "whoisparse:", err)
		os.Exit(1)
	}
}
